package models

import (
	"time"
)

// Organisation represents an organisation record
type Organisation struct {
	ID              int                `json:"id" db:"id"`
	Name            string             `json:"name" db:"name"`
	Status          OrganisationStatus `json:"status" db:"status"`
	EnableUserLogin bool               `json:"enable_user_login" db:"enable_user_login"`
	CreatedAt       time.Time          `json:"created_at" db:"created_at"`
}

// OrganisationCreate holds validated data for creating an organisation
type OrganisationCreate struct {
	Name   string
	Status OrganisationStatus
}

// OrganisationUpdate holds validated data for a partial update.
// Nil fields are left untouched.
type OrganisationUpdate struct {
	Name   *string
	Status *OrganisationStatus
}

// OrganisationListItem is the per-item projection for collection responses
type OrganisationListItem struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	StatusName string `json:"status_name"`
}

// OrganisationListResponse represents the paginated organisation list response
type OrganisationListResponse struct {
	Total int                    `json:"total"`
	Data  []OrganisationListItem `json:"data"`
}

// OrganisationDetail is the full projection for instance responses
type OrganisationDetail struct {
	ID              int            `json:"id"`
	Name            string         `json:"name"`
	StatusName      string         `json:"status_name"`
	EnableUserLogin bool           `json:"enable_user_login"`
	Users           []UserListItem `json:"users"`
}

// OrganisationCreated is the projection returned after a successful create
type OrganisationCreated struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	StatusName string `json:"status_name"`
}
