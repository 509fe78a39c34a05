package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"gulfjobs-web/internal/backend"
	"gulfjobs-web/internal/config"
	"gulfjobs-web/internal/pgstore"
	"gulfjobs-web/internal/rowapi"
	"gulfjobs-web/internal/store"
)

const lockFileName = "gulfjobs.lock"

// openBackend builds the adapter named by backend.driver.
func openBackend(cfg config.Config, debug bool) (backend.Backend, error) {
	switch cfg.Backend.Driver {
	case config.DriverREST:
		return rowapi.New(rowapi.Config{
			BaseURL:           cfg.Backend.URL,
			APIKey:            cfg.Backend.APIKey,
			JobsTable:         cfg.Backend.JobsTable,
			ApplicationsTable: cfg.Backend.ApplicationsTable,
			Timeout:           cfg.Backend.Timeout,
			RatePerSec:        cfg.Backend.RatePerSec,
			Burst:             cfg.Backend.Burst,

			ReturnRepresentation: cfg.Backend.ReturnRepresentation,
		})
	case config.DriverSQLite:
		db, err := openSQLite(cfg)
		if err != nil {
			return nil, err
		}
		return store.NewBackend(db), nil
	case config.DriverPostgres:
		return pgstore.Open(pgstore.Config{
			DSN:               cfg.Backend.DSN,
			JobsTable:         cfg.Backend.JobsTable,
			ApplicationsTable: cfg.Backend.ApplicationsTable,
			Debug:             debug,
		})
	default:
		return nil, fmt.Errorf("unknown backend driver %q", cfg.Backend.Driver)
	}
}

func openSQLite(cfg config.Config) (*store.DB, error) {
	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		return nil, err
	}
	db, err := store.Open(filepath.Join(cfg.App.DataDir, store.FileName))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := store.Migrate(db.Pool); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

// lockDataDir keeps two servers off the same sqlite file.
func lockDataDir(dataDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	fl := flock.New(filepath.Join(dataDir, lockFileName))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("another gulfjobs server is using %s", dataDir)
	}
	return fl, nil
}
