package api

import (
	"context"

	"github.com/expomadeinworld/directory-service/internal/db"
	"github.com/expomadeinworld/directory-service/internal/models"
	"github.com/expomadeinworld/directory-service/internal/validation"
)

// Store is everything the HTTP layer needs from persistence. *db.Database
// implements it; tests substitute an in-memory double.
type Store interface {
	// Begin opens a request-scoped transaction; entity operations called
	// with the returned context run inside it.
	Begin(ctx context.Context) (context.Context, db.Session, error)
	Health(ctx context.Context) error

	ListOrganisations(ctx context.Context, params models.ListParams) ([]models.Organisation, int, error)
	GetOrganisation(ctx context.Context, id int) (*models.Organisation, error)
	CreateOrganisation(ctx context.Context, in models.OrganisationCreate) (*models.Organisation, error)
	UpdateOrganisation(ctx context.Context, id int, updates models.OrganisationUpdate) error
	DeleteOrganisation(ctx context.Context, id int) (bool, error)
	CountOrganisationUsers(ctx context.Context, orgID int) (int, error)
	ListOrganisationUsers(ctx context.Context, orgID int) ([]models.User, error)

	ListUsers(ctx context.Context, params models.ListParams) ([]models.User, int, error)
	GetUser(ctx context.Context, id int) (*models.User, string, error)
	CreateUser(ctx context.Context, in models.UserCreate) (*models.User, error)
	UpdateUser(ctx context.Context, id int, updates models.UserUpdate) error
	DeleteUser(ctx context.Context, id int) (bool, error)

	validation.Checks
}
