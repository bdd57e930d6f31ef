package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/expomadeinworld/directory-service/internal/config"
	"github.com/expomadeinworld/directory-service/internal/db"
	"github.com/expomadeinworld/directory-service/internal/logging"
	"github.com/expomadeinworld/directory-service/internal/models"
	"github.com/expomadeinworld/directory-service/internal/validation"
)

// Context keys for values the middleware chain hands to handlers
const (
	keyBody             = "validated_body"
	keyObjectID         = "object_id"
	keyOrganisation     = "organisation"
	keyUser             = "user"
	keyUserOrganisation = "user_organisation"
)

func abortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func abortServerError(c *gin.Context, err error) {
	c.Error(err)
	abortError(c, http.StatusInternalServerError, "internal server error")
}

func acceptsJSON(accept string) bool {
	if accept == "" {
		return true
	}
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch mediaType {
		case "*/*", "application/*", "application/json":
			return true
		}
	}
	return false
}

// RequireJSON enforces JSON content negotiation: the client must accept
// JSON responses, and POST/PUT bodies must be declared as JSON.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsJSON(c.GetHeader("Accept")) {
			abortError(c, http.StatusNotAcceptable,
				"This API only supports responses encoded as JSON.")
			return
		}

		if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
			if c.ContentType() != "application/json" {
				abortError(c, http.StatusUnsupportedMediaType,
					"This API only supports requests encoded as JSON.")
				return
			}
		}

		c.Next()
	}
}

// VersionCheck rejects requests addressed to a version outside the
// configured allow-list.
func VersionCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		version := c.Param("version")
		if !cfg.VersionAvailable(version) {
			abortError(c, http.StatusNotFound, "Invalid API version: "+version)
			return
		}
		c.Next()
	}
}

// Transaction wraps the request in a store transaction. The transaction is
// committed when the handler produced a success response and rolled back on
// any error status, so handlers never manage the session themselves.
func Transaction(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, session, err := store.Begin(c.Request.Context())
		if err != nil {
			abortServerError(c, err)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := session.Rollback(c.Request.Context()); err != nil {
				logging.LogKV("error", "transaction rollback failed", map[string]interface{}{"error": err.Error()})
			}
			return
		}
		if err := session.Commit(c.Request.Context()); err != nil {
			// The response is already on the wire; all we can do is log.
			logging.LogKV("error", "transaction commit failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// RequireNumericID rejects instance paths whose id segment is not a plain
// positive integer literal, before any store access happens.
func RequireNumericID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("id")
		for _, r := range raw {
			if r < '0' || r > '9' {
				abortError(c, http.StatusBadRequest, "Invalid object ID: "+raw)
				return
			}
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			abortError(c, http.StatusBadRequest, "Invalid object ID: "+raw)
			return
		}
		c.Set(keyObjectID, id)
		c.Next()
	}
}

// LoadOrganisation resolves the id path parameter to an organisation before
// the method handler runs
func LoadOrganisation(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetInt(keyObjectID)
		org, err := store.GetOrganisation(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				abortError(c, http.StatusNotFound, "Organisation not found")
				return
			}
			abortServerError(c, err)
			return
		}
		c.Set(keyOrganisation, org)
		c.Next()
	}
}

// LoadUser resolves the id path parameter to a user, together with the
// owning organisation's name, before the method handler runs
func LoadUser(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetInt(keyObjectID)
		user, orgName, err := store.GetUser(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				abortError(c, http.StatusNotFound, "User not found")
				return
			}
			abortServerError(c, err)
			return
		}
		c.Set(keyUser, user)
		c.Set(keyUserOrganisation, orgName)
		c.Next()
	}
}

// ValidateBody parses the request body against the schema and attaches the
// typed result to the context. Validation failures come back as the raw
// field-to-messages mapping with an unprocessable-entity status.
func ValidateBody(schema validation.BodySchema) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortServerError(c, err)
			return
		}

		result, errs, err := schema(c.Request.Context(), body)
		if err != nil {
			abortServerError(c, err)
			return
		}
		if len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errs)
			return
		}

		c.Set(keyBody, result)
		c.Next()
	}
}
