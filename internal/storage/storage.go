// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Callers (the CLI entry point, or any service layered on top later)
// should not know or care which database they are talking to. By
// depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in main.go. Zero caller changes.
//
//   - Writing tests = pass a fake/mock that satisfies the interface.
//     No real database needed for unit tests.
//
// This is the Dependency Inversion Principle in practice.
package storage

import (
	"errors"
	"fmt"

	"github.com/aanand-mishra/registration-api/internal/types"
)

// Error kinds shared by every backend.
//
// ErrValidation is the root of the taxonomy: every failure caused by
// bad input wraps it, so callers can write a single
//
//	errors.Is(err, storage.ErrValidation)
//
// check and recover by supplying corrected data. The two specialised
// sentinels wrap ErrValidation via %w, so errors.Is matches them on
// both levels.
//
// "Not found" is deliberately NOT an error anywhere in this interface —
// absence of a record is an expected, common condition, reported as a
// nil pointer (reads) or a false boolean (update/delete).
var (
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateEmail is returned when a create or update would
	// produce two rows with the same email address.
	ErrDuplicateEmail = fmt.Errorf("%w: email already exists", ErrValidation)

	// ErrEmptyPatch is returned when an update patch contains no
	// recognised fields after filtering.
	ErrEmptyPatch = fmt.Errorf("%w: no valid fields to update", ErrValidation)
)

// Storage is the database contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly (no "implements"
// keyword required).
type Storage interface {
	// CreateRegistration validates the payload, inserts a new row with
	// registration_date set to the current timestamp and status
	// defaulted to "active", and returns the auto-generated primary
	// key. Fails with ErrDuplicateEmail if the email is taken, or with
	// an error wrapping ErrValidation for any other constraint breach.
	CreateRegistration(reg types.NewRegistration) (int64, error)

	// GetRegistrationByID fetches a single record by primary key.
	// Returns (nil, nil) when no row has that id — absence is a normal
	// outcome, not an error.
	GetRegistrationByID(id int64) (*types.Registration, error)

	// GetRegistrations returns every record in storage order.
	// Returns an empty slice (not nil) if there are no records.
	GetRegistrations() ([]types.Registration, error)

	// UpdateRegistrationByID applies a partial update. Only the fields
	// name, email, date_of_birth, phone_number, address and status are
	// writable; anything else in the patch is silently ignored. The id
	// and registration_date columns are unreachable through this path.
	// Returns true if a row matched, false if no row has that id.
	// Fails with ErrEmptyPatch when nothing writable remains after
	// filtering, or with an error wrapping ErrValidation when the
	// update would break a schema constraint.
	UpdateRegistrationByID(id int64, patch map[string]any) (bool, error)

	// DeleteRegistrationByID permanently removes a record. Returns true
	// if a row was deleted, false if no row matched — deleting a
	// missing id is not an error.
	DeleteRegistrationByID(id int64) (bool, error)
}
