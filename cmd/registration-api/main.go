// main is the entry point of the registration-api application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Connect to (and set up) the SQLite database
//  4. Run a short CRUD walkthrough against the store
//
// There is no server here: the registration store is a library-style
// component and its public surface is the storage.Storage interface.
// The walkthrough exists so `go run` demonstrates every operation
// against a real database file.
//
// RUNNING:
//
//	go run ./cmd/registration-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/registration-api
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/aanand-mishra/registration-api/internal/config"
	"github.com/aanand-mishra/registration-api/internal/storage"
	"github.com/aanand-mishra/registration-api/internal/storage/sqlite"
	"github.com/aanand-mishra/registration-api/internal/types"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad reads the YAML config and fatals if anything is wrong.
	// The name "Must" signals: if this returns, config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// slog is Go's structured logger (stdlib since Go 1.21).
	// Structured logging writes key=value pairs rather than plain strings,
	// making logs easy to filter/search in tools like Loki or Datadog.
	log := setupLogger(cfg.Env)

	log.Info("starting registration-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage (Database) ──────────────────────────────────
	// sqlite.New opens the SQLite file and creates the Registration table.
	// We hold the result as the storage.Storage INTERFACE, not *sqlite.SQLite,
	// so swapping backends later only requires changing this one line.
	var store storage.Storage
	store, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1) // non-zero exit code signals failure to the OS / CI system
	}

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 4. Walk every operation once ──────────────────────────────────────
	if err := runWalkthrough(log, store); err != nil {
		log.Error("walkthrough failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runWalkthrough exercises the full record lifecycle: create a
// registration, read it back, patch two fields, list everything, and
// finally delete it again. Validation failures are recoverable caller
// errors, so they are logged at Warn rather than aborting the run.
func runWalkthrough(log *slog.Logger, store storage.Storage) error {
	id, err := store.CreateRegistration(types.NewRegistration{
		Name:        "John Doe",
		Email:       "john.doe@example.com",
		DateOfBirth: "1990-01-01",
		PhoneNumber: ptr("1234567890"),
		Address:     ptr("123 Main St"),
	})
	if errors.Is(err, storage.ErrValidation) {
		// Re-running against an existing file trips the UNIQUE email
		// index — expected, not a reason to exit non-zero.
		log.Warn("create rejected", slog.String("reason", err.Error()))
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("registration created", slog.Int64("id", id))

	reg, err := store.GetRegistrationByID(id)
	if err != nil {
		return err
	}
	log.Info("registration fetched",
		slog.Int64("id", reg.ID),
		slog.String("email", reg.Email),
		slog.String("status", reg.Status),
		slog.String("registered", reg.RegistrationDate),
	)

	updated, err := store.UpdateRegistrationByID(id, map[string]any{
		"phone_number": "9876543210",
		"address":      "456 New St",
	})
	if err != nil {
		return err
	}
	log.Info("registration updated", slog.Int64("id", id), slog.Bool("matched", updated))

	all, err := store.GetRegistrations()
	if err != nil {
		return err
	}
	log.Info("registrations listed", slog.Int("count", len(all)))

	deleted, err := store.DeleteRegistrationByID(id)
	if err != nil {
		return err
	}
	log.Info("registration deleted", slog.Int64("id", id), slog.Bool("matched", deleted))

	return nil
}

func ptr(s string) *string { return &s }

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
//
//	JSON logs are easy to ingest by log aggregators (Loki, CloudWatch, etc.)
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo, // INFO and above in production
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug, // more verbose in staging
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug, // all levels in development
			}),
		)
	}
}
