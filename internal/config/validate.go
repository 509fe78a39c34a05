package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg together with every
// problem found. Zero values fall back to Default().
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	def := Default()
	var res Validation

	out.App.Addr = strings.TrimSpace(out.App.Addr)
	out.App.SiteName = strings.TrimSpace(out.App.SiteName)
	out.App.BaseURL = strings.TrimRight(strings.TrimSpace(out.App.BaseURL), "/")
	out.Backend.Driver = strings.ToLower(strings.TrimSpace(out.Backend.Driver))
	out.Backend.URL = strings.TrimRight(strings.TrimSpace(out.Backend.URL), "/")
	out.Backend.APIKey = strings.TrimSpace(out.Backend.APIKey)
	out.Backend.DSN = strings.TrimSpace(out.Backend.DSN)
	out.Backend.JobsTable = strings.TrimSpace(out.Backend.JobsTable)
	out.Backend.ApplicationsTable = strings.TrimSpace(out.Backend.ApplicationsTable)
	out.Backend.OrderColumn = strings.TrimSpace(out.Backend.OrderColumn)
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))
	out.Log.Format = strings.ToLower(strings.TrimSpace(out.Log.Format))

	if out.App.Addr == "" {
		out.App.Addr = def.App.Addr
	}
	if strings.TrimSpace(out.App.DataDir) == "" {
		out.App.DataDir = def.App.DataDir
	}
	if out.App.SiteName == "" {
		out.App.SiteName = def.App.SiteName
	}
	if out.Backend.Driver == "" {
		out.Backend.Driver = def.Backend.Driver
	}
	if out.Backend.JobsTable == "" {
		out.Backend.JobsTable = def.Backend.JobsTable
	}
	if out.Backend.ApplicationsTable == "" {
		out.Backend.ApplicationsTable = def.Backend.ApplicationsTable
	}
	if out.Backend.Timeout == 0 {
		out.Backend.Timeout = def.Backend.Timeout
	}
	if out.Backend.RatePerSec == 0 {
		out.Backend.RatePerSec = def.Backend.RatePerSec
	}
	if out.Backend.Burst == 0 {
		out.Backend.Burst = def.Backend.Burst
	}
	if out.Listing.PageSize == 0 {
		out.Listing.PageSize = def.Listing.PageSize
	}
	if out.Listing.HomeFeatured == 0 {
		out.Listing.HomeFeatured = def.Listing.HomeFeatured
	}
	if out.Log.Level == "" {
		out.Log.Level = def.Log.Level
	}
	if out.Log.Format == "" {
		out.Log.Format = def.Log.Format
	}

	// ---- Validation rules ----

	switch out.Backend.Driver {
	case DriverREST:
		if out.Backend.URL == "" {
			res.addErr("backend.url is required when backend.driver=rest")
		} else if u, err := url.Parse(out.Backend.URL); err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("backend.url must be an absolute URL, got %q", out.Backend.URL)
		}
		if out.Backend.APIKey == "" {
			res.addWarn("backend.api_key is empty; it will be read from the OS keychain.")
		}
	case DriverPostgres:
		if out.Backend.DSN == "" {
			res.addErr("backend.dsn is required when backend.driver=postgres")
		}
	case DriverSQLite:
		// lives in data_dir
	default:
		res.addErr("backend.driver must be one of rest, sqlite, postgres; got %q", out.Backend.Driver)
	}

	if !validIdent(out.Backend.JobsTable) {
		res.addErr("backend.jobs_table %q is not a valid table name", out.Backend.JobsTable)
	}
	if !validIdent(out.Backend.ApplicationsTable) {
		res.addErr("backend.applications_table %q is not a valid table name", out.Backend.ApplicationsTable)
	}
	if out.Backend.OrderColumn != "" && !validIdent(out.Backend.OrderColumn) {
		res.addErr("backend.order_column %q is not a valid column name", out.Backend.OrderColumn)
	}
	if out.Backend.OrderColumn == "" {
		res.addWarn("backend.order_column is empty; jobs are listed in source order.")
	}

	if out.Backend.Timeout < 0 {
		res.addErr("backend.timeout must be > 0")
	} else if out.Backend.Timeout < time.Second || out.Backend.Timeout > time.Minute {
		res.addWarn("backend.timeout is %s; 10s to 30s is recommended.", out.Backend.Timeout)
	}
	if out.Backend.RatePerSec < 0 {
		res.addErr("backend.rate_per_sec must be > 0")
	}
	if out.Backend.Burst < 0 {
		res.addErr("backend.burst must be > 0")
	}

	if out.Listing.PageSize < 0 {
		res.addErr("listing.page_size must be > 0")
	} else if out.Listing.PageSize > 100 {
		res.addWarn("listing.page_size is %d; long pages are slow to render.", out.Listing.PageSize)
	}
	if out.Listing.HomeFeatured < 0 {
		res.addErr("listing.home_featured must be >= 0")
	}

	if _, err := zerolog.ParseLevel(out.Log.Level); err != nil {
		res.addErr("log.level %q is not a known level", out.Log.Level)
	}
	if out.Log.Format != "json" && out.Log.Format != "console" {
		res.addErr("log.format must be json or console; got %q", out.Log.Format)
	}

	return out, res
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
