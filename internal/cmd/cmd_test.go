package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/zalando/go-keyring"

	"gulfjobs-web/internal/config"
	"gulfjobs-web/internal/domain"
	"gulfjobs-web/internal/store"
)

const sqliteConfig = `
backend:
  driver: sqlite
listing:
  page_size: 2
`

const seedJobs = `
jobs:
  - {id: "1", title: Welder, company: Emirates Steel, country: UAE, category: Construction, posted_at: "2026-10-01T00:00:00Z"}
  - {id: "2", title: Driver, company: Qatar Transport, country: Qatar, category: Transport, posted_at: "2026-10-02T00:00:00Z"}
  - {id: "3", title: Nurse, company: Oman Health, country: Oman, city: Muscat, category: Healthcare, posted_at: "2026-10-03T00:00:00Z", requirements: [BSc Nursing]}
`

func newTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	keyring.MockInit()
	pterm.DisableStyling()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(sqliteConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, path, vr, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	var out bytes.Buffer
	ctx := &Context{Out: &out, Err: &out, Config: cfg, ConfigPath: path, Validation: vr, Logger: zerolog.Nop(), Version: "test"}

	seed := filepath.Join(dir, "seed.yml")
	if err := os.WriteFile(seed, []byte(seedJobs), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := (&SeedCmd{File: seed}).Run(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	out.Reset()
	return ctx, &out
}

func TestLoadConfigBootstrapsDefault(t *testing.T) {
	keyring.MockInit()
	dir := t.TempDir()
	cfg, path, vr, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if path != filepath.Join(dir, config.FileName) {
		t.Fatalf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if cfg.App.DataDir != dir {
		t.Fatalf("DataDir = %q, want %q", cfg.App.DataDir, dir)
	}
	// the default rest driver has no url yet
	if vr.OK() {
		t.Fatalf("default config validated without a backend url")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	keyring.MockInit()
	t.Setenv("GULFJOBS_BACKEND_URL", "https://abc.supabase.co")
	t.Setenv("GULFJOBS_BACKEND_API_KEY", "anon")

	cfg, _, vr, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !vr.OK() || cfg.Backend.URL != "https://abc.supabase.co" || cfg.Backend.APIKey != "anon" {
		t.Fatalf("cfg.Backend = %+v, validation = %+v", cfg.Backend, vr)
	}
}

func TestLoadConfigWarnsOnKeychainFailure(t *testing.T) {
	keyring.MockInitWithError(errors.New("secret service unavailable"))
	t.Cleanup(keyring.MockInit)
	t.Setenv("GULFJOBS_BACKEND_URL", "https://abc.supabase.co")

	_, _, vr, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	found := false
	for _, w := range vr.Warnings {
		if strings.Contains(w, "not read from keychain") && strings.Contains(w, "secret service unavailable") {
			found = true
		}
	}
	if !found || !vr.OK() {
		t.Fatalf("validation = %+v, want a keychain warning and no errors", vr)
	}
}

func TestJobsListTable(t *testing.T) {
	ctx, out := newTestContext(t)

	if err := (&JobsListCmd{Country: "all", Category: "all", Page: 1}).Run(ctx); err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	got := out.String()
	// newest first, page size 2
	if !strings.Contains(got, "Nurse") || !strings.Contains(got, "Driver") || strings.Contains(got, "Welder") {
		t.Fatalf("page 1 =\n%s", got)
	}
	if !strings.Contains(got, "3 jobs found matching your criteria. Page 1 of 2.") {
		t.Fatalf("summary missing:\n%s", got)
	}

	out.Reset()
	if err := (&JobsListCmd{Query: "emirates", Country: "all", Category: "all", Page: 5}).Run(ctx); err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "Welder") || !strings.Contains(got, "Page 1 of 1.") {
		t.Fatalf("search =\n%s", got)
	}

	out.Reset()
	if err := (&JobsListCmd{Country: "Kuwait", Category: "all", Page: 1}).Run(ctx); err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	if strings.TrimSpace(out.String()) != "No jobs found" {
		t.Fatalf("empty = %q", out.String())
	}
}

func TestJobsShow(t *testing.T) {
	ctx, out := newTestContext(t)

	if err := (&JobsShowCmd{ID: "3"}).Run(ctx); err != nil {
		t.Fatalf("jobs show: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Nurse", "Muscat, Oman", "Requirements:", "  - BSc Nursing"} {
		if !strings.Contains(got, want) {
			t.Fatalf("show output missing %q:\n%s", want, got)
		}
	}
	if err := (&JobsShowCmd{ID: "nope"}).Run(ctx); err == nil {
		t.Fatalf("jobs show nope: error = nil")
	}
}

func TestConfigValidateAndVersion(t *testing.T) {
	ctx, out := newTestContext(t)

	if err := (&ValidateConfigCmd{}).Run(ctx); err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out.String(), "config ok") {
		t.Fatalf("validate output = %q", out.String())
	}

	ctx.Validation = config.Validation{Errors: []string{"backend.url is required"}}
	if err := (&ValidateConfigCmd{}).Run(ctx); err == nil {
		t.Fatalf("invalid config reported ok")
	}
	if err := (&ServeCmd{}).Run(ctx); err == nil || !strings.Contains(err.Error(), "backend.url is required") {
		t.Fatalf("serve with invalid config: %v", err)
	}

	out.Reset()
	if err := (&VersionCmd{}).Run(ctx); err != nil || strings.TrimSpace(out.String()) != "test" {
		t.Fatalf("version = %q, %v", out.String(), err)
	}
}

func TestLockDataDir(t *testing.T) {
	dir := t.TempDir()
	first, err := lockDataDir(dir)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}
	defer func() { _ = first.Unlock() }()

	if _, err := lockDataDir(dir); err == nil {
		t.Fatalf("second lock on the same data dir succeeded")
	}
}

func TestSecretsSetAPIKey(t *testing.T) {
	ctx, out := newTestContext(t)
	ctx.Config.Backend.URL = "https://abc.supabase.co"

	if err := (&SetAPIKeyCmd{Key: "anon"}).Run(ctx); err != nil {
		t.Fatalf("set-api-key: %v", err)
	}
	if !strings.Contains(out.String(), "gulfjobs:apikey:abc.supabase.co") {
		t.Fatalf("output = %q", out.String())
	}
	if err := (&DeleteAPIKeyCmd{}).Run(ctx); err != nil {
		t.Fatalf("delete-api-key: %v", err)
	}
}

func TestDBApplications(t *testing.T) {
	ctx, out := newTestContext(t)

	db, err := openSQLite(ctx.Config)
	if err != nil {
		t.Fatal(err)
	}
	b := store.NewBackend(db)
	for _, app := range []domain.Application{
		{JobID: "3", Name: "Sita Rai", Email: "sita@example.com", Phone: "+9779811111111"},
		{JobID: "1", Name: "Ram Thapa", Email: "ram@example.com", Phone: "+9779822222222"},
	} {
		if _, err := b.InsertApplication(context.Background(), app); err != nil {
			t.Fatalf("InsertApplication() error = %v", err)
		}
	}
	_ = b.Close()

	if err := (&ApplicationsCmd{JobID: "3"}).Run(ctx); err != nil {
		t.Fatalf("db applications: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "Sita Rai") || strings.Contains(got, "Ram Thapa") {
		t.Fatalf("applications for job 3 =\n%s", got)
	}

	out.Reset()
	if err := (&ApplicationsCmd{JobID: "2"}).Run(ctx); err != nil || strings.TrimSpace(out.String()) != "No applications" {
		t.Fatalf("applications for job 2 = %q, %v", out.String(), err)
	}
}
