package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/registration-api/internal/storage"
)

// constraintError translates a failed statement into the storage error
// taxonomy.
//
// Every constraint violation (UNIQUE, CHECK, NOT NULL) is the caller's
// data being wrong, so it becomes a validation-kind error the caller
// can recover from. The one case worth a dedicated sentinel is the
// UNIQUE index on email — callers commonly branch on it — detected by
// the column name SQLite embeds in its message
// ("UNIQUE constraint failed: Registration.email").
//
// Anything that is not a constraint violation (locked file, corrupt
// database, ...) is an infrastructure failure and is wrapped with the
// operation name instead, untouched by the taxonomy.
func constraintError(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		if strings.Contains(sqliteErr.Error(), "Registration.email") {
			return storage.ErrDuplicateEmail
		}
		return fmt.Errorf("%w: %s", storage.ErrValidation, sqliteErr.Error())
	}
	return fmt.Errorf("%s: %w", op, err)
}

// validationMessage converts a slice of validator.FieldError values
// into a single human-readable string.
//
// The go-playground/validator package returns one FieldError per
// failing struct field. Each is turned into a plain English sentence
// and the sentences joined with ", " so the caller sees one
// descriptive message, e.g.
//
//	field Name must be at least 2 characters, field Email is required
func validationMessage(errs validator.ValidationErrors) string {
	var msgs []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s characters", e.Field(), e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of: %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return strings.Join(msgs, ", ")
}
