package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"gulfjobs-web/internal/config"
	"gulfjobs-web/internal/secrets"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	Config     config.Config
	ConfigPath string
	Validation config.Validation
	Logger     zerolog.Logger
	JSONOutput bool
	Version    string
}

// requireValid stops commands that talk to a backend when the config
// cannot work.
func (c *Context) requireValid() error {
	if c.Validation.OK() {
		return nil
	}
	return errors.New("config " + c.ConfigPath + " is invalid:\n- " + strings.Join(c.Validation.Errors, "\n- "))
}

// TemplateConfig is copied into a fresh data dir when present.
const TemplateConfig = "config.example.yml"

// LoadConfig bootstraps <dataDir>/config.yml, reads it, applies .env and
// GULFJOBS_* overrides, and resolves the api key from the keychain. Only
// read and parse failures are errors; rule violations come back in the
// Validation so commands like `config validate` can still run.
func LoadConfig(dataDir string) (config.Config, string, config.Validation, error) {
	path, err := config.EnsureUserConfig(dataDir, TemplateConfig)
	if err != nil {
		return config.Config{}, "", config.Validation{}, fmt.Errorf("config bootstrap failed: %w", err)
	}
	if err := config.LoadDotEnv(filepath.Join(dataDir, ".env"), ".env"); err != nil {
		return config.Config{}, path, config.Validation{}, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, path, config.Validation{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if cfg.App.DataDir == "" || cfg.App.DataDir == "." {
		cfg.App.DataDir = dataDir
	}
	config.OverlayEnv(&cfg)
	keyErr := secrets.ResolveAPIKey(&cfg)

	cfg, vr := config.NormalizeAndValidate(cfg)
	if keyErr != nil {
		vr.Warnings = append(vr.Warnings, "backend api key not read from keychain: "+keyErr.Error())
	}
	return cfg, path, vr, nil
}
