package models

import (
	"time"
)

// User represents a user record
type User struct {
	ID             int       `json:"id" db:"id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	OrganisationID int       `json:"organisation_id" db:"organisation_id"`
	State          UserState `json:"state" db:"state"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// FullName joins first and last name for serialization
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserCreate holds validated data for creating a user
type UserCreate struct {
	FirstName      string
	LastName       string
	Email          string
	OrganisationID int
	State          UserState
}

// UserUpdate holds validated data for a partial update.
// Nil fields are left untouched.
type UserUpdate struct {
	FirstName      *string
	LastName       *string
	OrganisationID *int
}

// UserListItem is the per-item projection for collection responses
type UserListItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	StateName string `json:"state_name"`
}

// UserListResponse represents the paginated user list response
type UserListResponse struct {
	Total int            `json:"total"`
	Data  []UserListItem `json:"data"`
}

// UserDetail is the full projection for instance responses, including the
// owning organisation's name
type UserDetail struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	StateName    string `json:"state_name"`
	Organisation string `json:"organisation"`
}

// UserCreated is the projection returned after a successful create
type UserCreated struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
