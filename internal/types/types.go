// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// cmd, storage, and any future layer can all import types without
// depending on each other.
package types

// Registration status values. The status column accepts exactly these
// three strings — the database enforces the same set with a CHECK
// constraint, so a typo is rejected at both layers.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

// ValidStatus reports whether s is one of the allowed status values.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusPending
}

// Registration represents one full row of the Registration table.
//
// Struct tags serve two purposes:
//
//  1. db:"..."   — tells sqlx which column each field scans from.
//     Without it sqlx would look for a column matching the
//     lowercased field name and miss the snake_case columns.
//
//  2. json:"..." — controls how the field appears when a caller
//     encodes the record (snake_case names matching the column
//     names, so the two representations line up).
//
// PhoneNumber and Address are *string rather than string because the
// columns are nullable: scanning a NULL into a plain string errors,
// while a nil pointer round-trips cleanly (and encodes as absent JSON
// thanks to omitempty).
type Registration struct {
	ID               int64   `db:"id"                json:"id"`
	Name             string  `db:"name"              json:"name"`
	Email            string  `db:"email"             json:"email"`
	DateOfBirth      string  `db:"date_of_birth"     json:"date_of_birth"`
	PhoneNumber      *string `db:"phone_number"      json:"phone_number,omitempty"`
	Address          *string `db:"address"           json:"address,omitempty"`
	RegistrationDate string  `db:"registration_date" json:"registration_date"`
	Status           string  `db:"status"            json:"status"`
}

// NewRegistration is the payload for creating a record. It deliberately
// has no ID or RegistrationDate field — both are assigned by the
// database at insert time and are immutable afterwards.
//
// The validate:"..." tags are checked by go-playground/validator before
// the INSERT is attempted:
//
//	required            — field must be non-empty
//	min=2               — name must be at least 2 characters
//	omitempty,oneof=... — status may be left empty (the column default
//	                      'active' applies) but if set it must be one
//	                      of the three allowed values
//
// Email gets its own loose pattern check in the storage layer; the
// validator's built-in "email" tag is stricter than this system wants.
type NewRegistration struct {
	Name        string  `json:"name"          validate:"required,min=2"`
	Email       string  `json:"email"         validate:"required"`
	DateOfBirth string  `json:"date_of_birth" validate:"required"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Status      string  `json:"status"        validate:"omitempty,oneof=active inactive pending"`
}
