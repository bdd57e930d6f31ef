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

func userListItems(users []models.User) []models.UserListItem {
	items := make([]models.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, models.UserListItem{
			ID:        u.ID,
			Name:      u.FullName(),
			Email:     u.Email,
			StateName: u.State.Name(),
		})
	}
	return items
}

// listOrganisations handles GET /{version}/organisations
func (h *Handler) ListOrganisations(c *gin.Context) {
	params, errs := validation.ParseListQuery(c.Request.URL.Query())
	if len(errs) > 0 {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errs)
		return
	}

	orgs, total, err := h.store.ListOrganisations(c.Request.Context(), params)
	if err != nil {
		abortServerError(c, err)
		return
	}

	items := make([]models.OrganisationListItem, 0, len(orgs))
	for _, org := range orgs {
		items = append(items, models.OrganisationListItem{
			ID:         org.ID,
			Name:       org.Name,
			StatusName: org.Status.Name(),
		})
	}
	c.JSON(http.StatusOK, models.OrganisationListResponse{Total: total, Data: items})
}

// createOrganisation handles POST /{version}/organisations
func (h *Handler) CreateOrganisation(c *gin.Context) {
	in := c.MustGet(keyBody).(models.OrganisationCreate)

	org, err := h.store.CreateOrganisation(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, db.ErrConflict) {
			abortError(c, http.StatusConflict, fmt.Sprintf("Organisation name %s already exists", in.Name))
			return
		}
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OrganisationCreated{
		ID:         org.ID,
		Name:       org.Name,
		StatusName: org.Status.Name(),
	})
}

// getOrganisation handles GET /{version}/organisations/{id}
func (h *Handler) GetOrganisation(c *gin.Context) {
	org := c.MustGet(keyOrganisation).(*models.Organisation)

	users, err := h.store.ListOrganisationUsers(c.Request.Context(), org.ID)
	if err != nil {
		abortServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OrganisationDetail{
		ID:              org.ID,
		Name:            org.Name,
		StatusName:      org.Status.Name(),
		EnableUserLogin: org.EnableUserLogin,
		Users:           userListItems(users),
	})
}

// patchOrganisation handles PATCH /{version}/organisations/{id}
func (h *Handler) PatchOrganisation(c *gin.Context) {
	id := c.GetInt(keyObjectID)
	updates := c.MustGet(keyBody).(models.OrganisationUpdate)

	if err := h.store.UpdateOrganisation(c.Request.Context(), id, updates); err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			abortError(c, http.StatusNotFound, "Organisation not found")
		case errors.Is(err, db.ErrConflict):
			abortError(c, http.StatusConflict, "Organisation conflicts with an existing record")
		default:
			abortServerError(c, err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteOrganisation handles DELETE /{version}/organisations/{id}. An
// organisation that still owns users cannot be deleted.
func (h *Handler) DeleteOrganisation(c *gin.Context) {
	id := c.GetInt(keyObjectID)

	count, err := h.store.CountOrganisationUsers(c.Request.Context(), id)
	if err != nil {
		abortServerError(c, err)
		return
	}
	if count > 0 {
		abortError(c, http.StatusConflict,
			fmt.Sprintf("This Organisation is assigned to %d user(s). Remove users before delete!", count))
		return
	}

	deleted, err := h.store.DeleteOrganisation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrConflict) {
			abortError(c, http.StatusConflict, "This Organisation is assigned to users. Remove users before delete!")
			return
		}
		abortServerError(c, err)
		return
	}
	if !deleted {
		abortError(c, http.StatusNotFound, "Organisation not found")
		return
	}
	c.Status(http.StatusNoContent)
}
