package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"

	"gulfjobs-web/internal/config"
	"gulfjobs-web/internal/pgstore"
	"gulfjobs-web/internal/store"
)

type DBCmd struct {
	Migrate MigrateCmd `cmd:"" help:"Create or upgrade the local schema."`
	Seed    SeedCmd    `cmd:"" help:"Load postings from a YAML file into the sqlite database."`

	Applications ApplicationsCmd `cmd:"" help:"List applications stored in the sqlite database."`
}

type ApplicationsCmd struct {
	JobID string `name:"job" help:"Only applications for this posting id."`
}

type MigrateCmd struct{}

type SeedCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML file with a top-level jobs list."`
}

func (m *MigrateCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	switch cfg.Backend.Driver {
	case config.DriverSQLite:
		db, err := openSQLite(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		v, err := store.SchemaVersion(db.Pool)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(ctx.Out, "sqlite schema at version %d\n", v)
		return err
	case config.DriverPostgres:
		if err := ctx.requireValid(); err != nil {
			return err
		}
		s, err := pgstore.Open(pgstore.Config{
			DSN:               cfg.Backend.DSN,
			JobsTable:         cfg.Backend.JobsTable,
			ApplicationsTable: cfg.Backend.ApplicationsTable,
		})
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Migrate(context.Background()); err != nil {
			return err
		}
		_, err = fmt.Fprintf(ctx.Out, "postgres table %s ready\n", cfg.Backend.ApplicationsTable)
		return err
	default:
		return fmt.Errorf("db migrate does not apply to backend.driver=%s", cfg.Backend.Driver)
	}
}

func (s *SeedCmd) Run(ctx *Context) error {
	if ctx.Config.Backend.Driver != config.DriverSQLite {
		return errors.New("db seed needs backend.driver=sqlite")
	}
	db, err := openSQLite(ctx.Config)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := store.SeedFromFile(context.Background(), db.Pool, s.File)
	if err != nil {
		return err
	}
	ctx.Logger.Info().Int("jobs", n).Str("file", s.File).Msg("seeded")
	_, err = fmt.Fprintf(ctx.Out, "Seeded %d jobs\n", n)
	return err
}

func (a *ApplicationsCmd) Run(ctx *Context) error {
	if ctx.Config.Backend.Driver != config.DriverSQLite {
		return errors.New("db applications needs backend.driver=sqlite; hosted applications are read in the backend console")
	}
	db, err := openSQLite(ctx.Config)
	if err != nil {
		return err
	}
	b := store.NewBackend(db)
	defer b.Close()

	apps, err := b.ListApplications(context.Background())
	if err != nil {
		return err
	}
	if a.JobID != "" {
		kept := apps[:0]
		for _, app := range apps {
			if app.JobID == a.JobID {
				kept = append(kept, app)
			}
		}
		apps = kept
	}

	if ctx.JSONOutput {
		return writeJSON(ctx.Out, apps)
	}
	if len(apps) == 0 {
		_, err := fmt.Fprintln(ctx.Out, "No applications")
		return err
	}
	data := pterm.TableData{{"Received", "Job", "Name", "Email", "Phone"}}
	for _, app := range apps {
		data = append(data, []string{app.CreatedAt.Format("2006-01-02 15:04"), app.JobID, app.Name, app.Email, app.Phone})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, table)
	return err
}
