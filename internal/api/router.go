package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/expomadeinworld/directory-service/internal/config"
	"github.com/expomadeinworld/directory-service/internal/logging"
	"github.com/expomadeinworld/directory-service/internal/models"
	"github.com/expomadeinworld/directory-service/internal/validation"
)

// Handler handles HTTP requests
type Handler struct {
	store Store
}

// NewHandler creates a new handler
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Health handles health check requests, including a store ping
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"service":   "directory-service",
			"timestamp": time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "directory-service",
		"timestamp": time.Now().UTC(),
	})
}

// NewRouter builds the Gin engine with the full middleware pipeline and all
// versioned routes.
func NewRouter(cfg *config.Config, store Store) *gin.Engine {
	handler := NewHandler(store)

	router := gin.New()
	router.Use(logging.JSONLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		abortError(c, http.StatusInternalServerError, "internal server error")
	}))

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "Accept"},
	}))

	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: http.StatusText(http.StatusNotFound)})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
	})

	// Health and readiness endpoints live outside the versioned pipeline
	router.GET("/live", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":  "directory-service",
			"versions": cfg.API.Versions,
			"current":  cfg.API.Current,
		})
	})

	versioned := router.Group("/:version")
	versioned.Use(RequireJSON())
	versioned.Use(VersionCheck(cfg))
	versioned.Use(Transaction(store))

	organisations := versioned.Group("/organisations")
	{
		organisations.GET("", handler.ListOrganisations)
		organisations.POST("", ValidateBody(validation.OrganisationPost(store)), handler.CreateOrganisation)

		organisation := organisations.Group("/:id")
		organisation.Use(RequireNumericID())
		{
			organisation.GET("", LoadOrganisation(store), handler.GetOrganisation)
			organisation.PATCH("", LoadOrganisation(store),
				ValidateBody(validation.OrganisationPatch(store)), handler.PatchOrganisation)
			organisation.DELETE("", LoadOrganisation(store), handler.DeleteOrganisation)
		}
	}

	users := versioned.Group("/users")
	{
		users.GET("", handler.ListUsers)
		users.POST("", ValidateBody(validation.UserPost(store)), handler.CreateUser)

		user := users.Group("/:id")
		user.Use(RequireNumericID())
		{
			user.GET("", LoadUser(store), handler.GetUser)
			user.PATCH("", LoadUser(store), ValidateBody(validation.UserPatch(store)), handler.PatchUser)
			user.DELETE("", LoadUser(store), handler.DeleteUser)
		}
	}

	return router
}
