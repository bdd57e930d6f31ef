package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expomadeinworld/directory-service/internal/db"
	"github.com/expomadeinworld/directory-service/internal/models"
	"github.com/expomadeinworld/directory-service/internal/validation"
)

// listUsers handles GET /{version}/users
func (h *Handler) ListUsers(c *gin.Context) {
	params, errs := validation.ParseListQuery(c.Request.URL.Query())
	if len(errs) > 0 {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errs)
		return
	}

	users, total, err := h.store.ListUsers(c.Request.Context(), params)
	if err != nil {
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserListResponse{Total: total, Data: userListItems(users)})
}

// createUser handles POST /{version}/users
func (h *Handler) CreateUser(c *gin.Context) {
	in := c.MustGet(keyBody).(models.UserCreate)

	user, err := h.store.CreateUser(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, db.ErrConflict) {
			abortError(c, http.StatusConflict, fmt.Sprintf("User email %s already exists", in.Email))
			return
		}
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.UserCreated{
		ID:    user.ID,
		Name:  user.FullName(),
		Email: user.Email,
	})
}

// getUser handles GET /{version}/users/{id}
func (h *Handler) GetUser(c *gin.Context) {
	user := c.MustGet(keyUser).(*models.User)
	orgName := c.GetString(keyUserOrganisation)

	c.JSON(http.StatusOK, models.UserDetail{
		ID:           user.ID,
		Name:         user.FullName(),
		Email:        user.Email,
		StateName:    user.State.Name(),
		Organisation: orgName,
	})
}

// patchUser handles PATCH /{version}/users/{id}
func (h *Handler) PatchUser(c *gin.Context) {
	id := c.GetInt(keyObjectID)
	updates := c.MustGet(keyBody).(models.UserUpdate)

	if err := h.store.UpdateUser(c.Request.Context(), id, updates); err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			abortError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, db.ErrConflict):
			abortError(c, http.StatusConflict, "User conflicts with an existing record")
		default:
			abortServerError(c, err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteUser handles DELETE /{version}/users/{id}
func (h *Handler) DeleteUser(c *gin.Context) {
	id := c.GetInt(keyObjectID)

	deleted, err := h.store.DeleteUser(c.Request.Context(), id)
	if err != nil {
		abortServerError(c, err)
		return
	}
	if !deleted {
		abortError(c, http.StatusNotFound, "User not found")
		return
	}
	c.Status(http.StatusNoContent)
}
