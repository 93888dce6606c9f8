// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using jmoiron/sqlx over database/sql.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. Isolation between concurrent callers — including separate
// processes sharing the same file — comes from SQLite's own
// transaction and file-locking guarantees; this package adds no
// locking, retrying, or queueing of its own.
//
// WHY sqlx ON TOP OF database/sql?
// ────────────────────────────────
// sqlx keeps the database/sql model (connection pool, placeholders,
// Exec/Query) but scans rows straight into structs via db:"..." tags.
// That removes the long hand-written Scan(&a, &b, &c...) column lists
// where a single mis-ordered argument silently corrupts data.
//
// The driver import registers "sqlite3" with database/sql as a side
// effect; the sqlite3 package is also used directly for classifying
// constraint-violation errors (see errors.go).
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/registration-api/internal/config"
	"github.com/aanand-mishra/registration-api/internal/storage"
	"github.com/aanand-mishra/registration-api/internal/types"
)

// looseEmail is the email shape this system accepts: at least one
// character before the @, at least one between the @ and a dot, and at
// least two after the final dot. Deliberately weak — it accepts many
// technically-invalid addresses and rejects a few valid ones, and the
// database's valid_email CHECK constraint draws the same loose line.
var looseEmail = regexp.MustCompile(`^.+@.+\.[^.]{2,}$`)

// mutableFields enumerates the columns an update patch may touch, in
// the order the SET clause is built. id and registration_date are
// intentionally absent: a patch naming them is ignored, never applied.
var mutableFields = []string{
	"name",
	"email",
	"date_of_birth",
	"phone_number",
	"address",
	"status",
}

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sqlx.DB — a connection pool managed by database/sql.
// Each operation checks a connection out of the pool for its single
// statement and returns it on every exit path, so no connection is
// held between calls and no operation blocks on another in-process
// caller beyond pool checkout.
type SQLite struct {
	db       *sqlx.DB
	validate *validator.Validate
}

// New opens the SQLite database at the path specified in
// cfg.StoragePath, creates the Registration table if it does not
// already exist, and returns a ready-to-use *SQLite.
//
// Safe to call on every startup: CREATE TABLE IF NOT EXISTS is a no-op
// against an existing file and never touches existing data.
func New(cfg *config.Config) (*SQLite, error) {
	// sqlx.Open does NOT open a real connection yet — it just
	// validates the driver name and DSN. The first actual connection
	// happens on the first statement (the CREATE TABLE below).
	db, err := sqlx.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Schema notes:
	//   id                — assigned by SQLite, immutable afterwards
	//   email             — UNIQUE index backs the duplicate detection
	//   registration_date — set by the column default at insert time;
	//                       no code path ever writes it again
	//   valid_email/valid_name/status CHECKs — the store enforces the
	//     same rules the Go boundary checks do, so even a caller going
	//     straight to the file cannot persist an invalid row
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS Registration (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			name              VARCHAR(100) NOT NULL,
			email             VARCHAR(100) NOT NULL UNIQUE,
			date_of_birth     DATE NOT NULL,
			phone_number      VARCHAR(20),
			address           TEXT,
			registration_date DATETIME DEFAULT CURRENT_TIMESTAMP,
			status            VARCHAR(20) DEFAULT 'active' CHECK(status IN ('active', 'inactive', 'pending')),
			CONSTRAINT valid_email CHECK(email LIKE '%_@__%.__%'),
			CONSTRAINT valid_name  CHECK(length(name) >= 2)
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{
		db:       db,
		validate: validator.New(),
	}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateRegistration inserts a new row into the Registration table.
//
// The payload is checked twice: the validate tags + loose email pattern
// here at the boundary (for precise messages), and the table's own
// constraints at insert time (for anything the boundary misses, e.g.
// the UNIQUE email index, which only the database can decide).
//
// The status column is listed in the INSERT only when the caller set
// it, so an empty Status falls through to the column default 'active'.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateRegistration(reg types.NewRegistration) (int64, error) {
	if err := s.validate.Struct(reg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return 0, fmt.Errorf("%w: %s", storage.ErrValidation, validationMessage(verrs))
		}
		return 0, fmt.Errorf("CreateRegistration: validate: %w", err)
	}
	if !looseEmail.MatchString(reg.Email) {
		return 0, fmt.Errorf("%w: email %q is not a valid address", storage.ErrValidation, reg.Email)
	}

	cols := []string{"name", "email", "date_of_birth", "phone_number", "address"}
	args := []any{reg.Name, reg.Email, reg.DateOfBirth, reg.PhoneNumber, reg.Address}
	if reg.Status != "" {
		cols = append(cols, "status")
		args = append(args, reg.Status)
	}

	query := fmt.Sprintf(
		"INSERT INTO Registration (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, constraintError("CreateRegistration", err)
	}

	// LastInsertId returns the auto-generated primary key of the new row.
	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: last insert id: %w", err)
	}

	return lastID, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetRegistrationByID fetches exactly one row matched by primary key.
//
// A missing row is NOT an error: sql.ErrNoRows is translated to a nil
// pointer so callers distinguish "absent" from "broken" without string
// matching. Anything else that goes wrong is a real error.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetRegistrationByID(id int64) (*types.Registration, error) {
	var reg types.Registration

	// Explicitly list columns — never SELECT * in production code.
	// If a column is added later, * would silently change the result
	// shape under every caller.
	//
	// date_of_birth and registration_date are CAST to TEXT: the bare
	// columns carry a DATE/DATETIME decltype, which the driver maps to
	// time.Time, and database/sql would then hand the struct's string
	// fields an RFC3339 rendering instead of the text that was stored.
	// The CAST clears the decltype so the stored text comes back
	// verbatim.
	err := s.db.Get(&reg, `
		SELECT id, name, email,
		       CAST(date_of_birth AS TEXT) AS date_of_birth,
		       phone_number, address,
		       CAST(registration_date AS TEXT) AS registration_date,
		       status
		FROM Registration WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetRegistrationByID: %w", err)
	}

	return &reg, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetRegistrations returns all rows in storage order (no ORDER BY —
// callers needing a sort apply their own).
//
// The slice is pre-allocated empty (non-nil) so an empty table encodes
// to [] rather than null for anyone serialising the result.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetRegistrations() ([]types.Registration, error) {
	regs := make([]types.Registration, 0)

	// Same CAST as GetRegistrationByID: keep the stored date text
	// verbatim instead of the driver's time.Time rendering.
	err := s.db.Select(&regs, `
		SELECT id, name, email,
		       CAST(date_of_birth AS TEXT) AS date_of_birth,
		       phone_number, address,
		       CAST(registration_date AS TEXT) AS registration_date,
		       status
		FROM Registration
	`)
	if err != nil {
		return nil, fmt.Errorf("GetRegistrations: %w", err)
	}

	return regs, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateRegistrationByID applies a partial update ("patch") to one row.
//
// The SET clause is built from an explicit allow-list rather than from
// whatever keys the caller sent: iterating mutableFields (not the
// patch map) both drops unknown/immutable keys and keeps the generated
// SQL deterministic. Column names in the statement only ever come from
// mutableFields — patch values travel exclusively as ? parameters.
//
// The status value is checked at the boundary for a precise message;
// the remaining value-level rules (name length, email shape, email
// uniqueness) are enforced by the table constraints and surface through
// constraintError as validation errors.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) UpdateRegistrationByID(id int64, patch map[string]any) (bool, error) {
	assignments := make([]string, 0, len(mutableFields))
	args := make([]any, 0, len(mutableFields)+1)

	for _, field := range mutableFields {
		value, ok := patch[field]
		if !ok {
			continue
		}
		assignments = append(assignments, field+" = ?")
		args = append(args, value)
	}

	// Nothing writable left: refusing loudly beats executing
	// "UPDATE Registration SET WHERE id = ?" or pretending a write
	// happened.
	if len(assignments) == 0 {
		return false, storage.ErrEmptyPatch
	}

	// The status CHECK would reject a bad value anyway, but checking
	// here yields a precise message instead of the raw constraint text.
	if v, ok := patch["status"].(string); ok && !types.ValidStatus(v) {
		return false, fmt.Errorf("%w: status %q must be one of: active inactive pending",
			storage.ErrValidation, v)
	}

	args = append(args, id)

	result, err := s.db.Exec(
		"UPDATE Registration SET "+strings.Join(assignments, ", ")+" WHERE id = ?",
		args...,
	)
	if err != nil {
		return false, constraintError("UpdateRegistrationByID", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("UpdateRegistrationByID: rows affected: %w", err)
	}

	return affected > 0, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// DeleteRegistrationByID removes a row by primary key. Physical delete,
// no tombstone. Idempotent in effect: a second call for the same id
// simply reports false.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) DeleteRegistrationByID(id int64) (bool, error) {
	result, err := s.db.Exec("DELETE FROM Registration WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("DeleteRegistrationByID: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteRegistrationByID: rows affected: %w", err)
	}

	return affected > 0, nil
}
