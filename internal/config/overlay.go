package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// OverlayEnv applies GULFJOBS_* environment variables on top of cfg.
// Deployment credentials normally arrive this way.
func OverlayEnv(cfg *Config) {
	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString(&cfg.App.DataDir, "GULFJOBS_DATA_DIR")
	setString(&cfg.App.Addr, "GULFJOBS_ADDR")
	setString(&cfg.App.BaseURL, "GULFJOBS_BASE_URL")
	setString(&cfg.Backend.Driver, "GULFJOBS_BACKEND_DRIVER")
	setString(&cfg.Backend.URL, "GULFJOBS_BACKEND_URL")
	setString(&cfg.Backend.APIKey, "GULFJOBS_BACKEND_API_KEY")
	setString(&cfg.Backend.DSN, "GULFJOBS_DATABASE_DSN")
	setString(&cfg.Log.Level, "GULFJOBS_LOG_LEVEL")
	setString(&cfg.Log.Format, "GULFJOBS_LOG_FORMAT")

	if v := strings.TrimSpace(os.Getenv("GULFJOBS_BACKEND_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Backend.Timeout = d
		}
	}
}
