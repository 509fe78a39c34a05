package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	body := "backend:\n  url: https://abc.supabase.co/\n  timeout: 20s\nlisting:\n  page_size: 10\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend.Timeout != 20*time.Second {
		t.Fatalf("Timeout = %v, want 20s", cfg.Backend.Timeout)
	}
	if cfg.Listing.PageSize != 10 || cfg.Listing.HomeFeatured != 3 {
		t.Fatalf("Listing = %+v", cfg.Listing)
	}
	if cfg.Backend.JobsTable != "jobs_job" {
		t.Fatalf("JobsTable = %q, want default", cfg.Backend.JobsTable)
	}

	norm, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("NormalizeAndValidate() errors = %v", vr.Errors)
	}
	if norm.Backend.URL != "https://abc.supabase.co" {
		t.Fatalf("URL = %q, want trailing slash trimmed", norm.Backend.URL)
	}
}

func TestValidateRules(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Config)
		want string
	}{
		{"rest needs url", func(c *Config) { c.Backend.URL = "" }, "backend.url is required"},
		{"relative url", func(c *Config) { c.Backend.URL = "abc.supabase.co" }, "must be an absolute URL"},
		{"postgres needs dsn", func(c *Config) { c.Backend.Driver = DriverPostgres }, "backend.dsn is required"},
		{"unknown driver", func(c *Config) { c.Backend.Driver = "mongo" }, "backend.driver must be one of"},
		{"bad table", func(c *Config) { c.Backend.JobsTable = "jobs; drop" }, "not a valid table name"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"negative page size", func(c *Config) { c.Listing.PageSize = -1 }, "listing.page_size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Backend.URL = "https://abc.supabase.co"
			tc.edit(&cfg)
			_, vr := NormalizeAndValidate(cfg)
			if vr.OK() {
				t.Fatalf("NormalizeAndValidate() OK, want error containing %q", tc.want)
			}
			if !strings.Contains(strings.Join(vr.Errors, "\n"), tc.want) {
				t.Fatalf("errors = %v, want %q", vr.Errors, tc.want)
			}
		})
	}
}

func TestValidateWarnsOnMissingAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Backend.URL = "https://abc.supabase.co"
	_, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("errors = %v", vr.Errors)
	}
	if len(vr.Warnings) == 0 {
		t.Fatalf("Warnings empty, want api_key warning")
	}
}

func TestSQLiteDriverNeedsNoURL(t *testing.T) {
	cfg := Default()
	cfg.Backend.Driver = "SQLite"
	norm, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("errors = %v", vr.Errors)
	}
	if norm.Backend.Driver != DriverSQLite {
		t.Fatalf("Driver = %q", norm.Backend.Driver)
	}
}

func TestEnsureUserConfigWritesDefault(t *testing.T) {
	dir := t.TempDir()
	path, err := EnsureUserConfig(dir, filepath.Join(dir, "missing.yml"))
	if err != nil {
		t.Fatalf("EnsureUserConfig() error = %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.SiteName != "Gulf Visa Services" || cfg.Backend.Timeout != 15*time.Second {
		t.Fatalf("bootstrapped config = %+v", cfg)
	}

	// second call leaves the file alone
	if err := os.WriteFile(path, []byte("app:\n  site_name: Mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureUserConfig(dir, ""); err != nil {
		t.Fatalf("EnsureUserConfig() error = %v", err)
	}
	cfg, _ = Load(path)
	if cfg.App.SiteName != "Mine" {
		t.Fatalf("SiteName = %q, user file was overwritten", cfg.App.SiteName)
	}
}

func TestEnsureUserConfigCopiesTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "template.yml")
	if err := os.WriteFile(tmpl, []byte("app:\n  site_name: From Template\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path, err := EnsureUserConfig(dataDir, tmpl)
	if err != nil {
		t.Fatalf("EnsureUserConfig() error = %v", err)
	}
	cfg, _ := Load(path)
	if cfg.App.SiteName != "From Template" {
		t.Fatalf("SiteName = %q", cfg.App.SiteName)
	}
}

func TestSaveAtomicRejectsInvalidAndKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	if err := SaveAtomic(path, Default()); err == nil {
		t.Fatalf("SaveAtomic(default) error = nil, want validation error")
	}

	cfg := Default()
	cfg.Backend.URL = "https://one.example.com"
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("SaveAtomic() error = %v", err)
	}
	cfg.Backend.URL = "https://two.example.com"
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("SaveAtomic() error = %v", err)
	}
	bak, err := Load(path + ".bak")
	if err != nil {
		t.Fatalf("Load(bak) error = %v", err)
	}
	if bak.Backend.URL != "https://one.example.com" {
		t.Fatalf("backup URL = %q", bak.Backend.URL)
	}
}

func TestOverlayEnv(t *testing.T) {
	t.Setenv("GULFJOBS_BACKEND_URL", "https://env.example.com")
	t.Setenv("GULFJOBS_BACKEND_API_KEY", "secret")
	t.Setenv("GULFJOBS_BACKEND_TIMEOUT", "25s")

	cfg := Default()
	OverlayEnv(&cfg)
	if cfg.Backend.URL != "https://env.example.com" || cfg.Backend.APIKey != "secret" {
		t.Fatalf("Backend = %+v", cfg.Backend)
	}
	if cfg.Backend.Timeout != 25*time.Second {
		t.Fatalf("Timeout = %v", cfg.Backend.Timeout)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("GULFJOBS_TEST_DOTENV=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GULFJOBS_TEST_DOTENV", "")
	os.Unsetenv("GULFJOBS_TEST_DOTENV")

	if err := LoadDotEnv(filepath.Join(dir, "nope.env"), envFile); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("GULFJOBS_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("GULFJOBS_TEST_DOTENV = %q", got)
	}
}
