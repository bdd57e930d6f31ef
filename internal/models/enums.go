package models

// OrganisationStatus represents the organisation status enum
type OrganisationStatus int

const (
	OrganisationEnabled  OrganisationStatus = 0
	OrganisationDisabled OrganisationStatus = 1
)

// Name maps a status value to its serialized name
func (s OrganisationStatus) Name() string {
	switch s {
	case OrganisationEnabled:
		return "ENABLED"
	case OrganisationDisabled:
		return "DISABLED"
	}
	return "UNKNOWN"
}

// Valid reports whether the value is part of the closed status set
func (s OrganisationStatus) Valid() bool {
	return s == OrganisationEnabled || s == OrganisationDisabled
}

// OrganisationStatusValues returns all accepted status values
func OrganisationStatusValues() []int {
	return []int{int(OrganisationEnabled), int(OrganisationDisabled)}
}

// UserState represents the user state enum
type UserState int

const (
	UserEnabled  UserState = 0
	UserDisabled UserState = 1
	UserBlocked  UserState = 2
	UserDeleted  UserState = 3
)

// Name maps a state value to its serialized name
func (s UserState) Name() string {
	switch s {
	case UserEnabled:
		return "ENABLED"
	case UserDisabled:
		return "DISABLED"
	case UserBlocked:
		return "BLOCKED"
	case UserDeleted:
		return "DELETED"
	}
	return "UNKNOWN"
}

// Valid reports whether the value is part of the closed state set
func (s UserState) Valid() bool {
	return s >= UserEnabled && s <= UserDeleted
}

// UserStateValues returns all accepted state values
func UserStateValues() []int {
	return []int{int(UserEnabled), int(UserDisabled), int(UserBlocked), int(UserDeleted)}
}
