package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverREST     = "rest"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	FileName = "config.yml"
)

type Config struct {
	App struct {
		Addr     string `yaml:"addr"`
		DataDir  string `yaml:"data_dir"`
		SiteName string `yaml:"site_name"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"app"`

	Backend struct {
		Driver            string        `yaml:"driver"`
		URL               string        `yaml:"url"`
		APIKey            string        `yaml:"api_key"`
		DSN               string        `yaml:"dsn"`
		JobsTable         string        `yaml:"jobs_table"`
		ApplicationsTable string        `yaml:"applications_table"`
		OrderColumn       string        `yaml:"order_column"`
		Timeout           time.Duration `yaml:"timeout"`
		RatePerSec        float64       `yaml:"rate_per_sec"`
		Burst             int           `yaml:"burst"`

		// ReturnRepresentation makes rest inserts read back the stored row.
		ReturnRepresentation bool `yaml:"return_representation"`
	} `yaml:"backend"`

	Listing struct {
		PageSize     int `yaml:"page_size"`
		HomeFeatured int `yaml:"home_featured"`
	} `yaml:"listing"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json | console
	} `yaml:"log"`
}

func Default() Config {
	var cfg Config
	cfg.App.Addr = "127.0.0.1:8080"
	cfg.App.DataDir = "."
	cfg.App.SiteName = "Gulf Visa Services"
	cfg.Backend.Driver = DriverREST
	cfg.Backend.JobsTable = "jobs_job"
	cfg.Backend.ApplicationsTable = "applications"
	cfg.Backend.OrderColumn = "created_at"
	cfg.Backend.Timeout = 15 * time.Second
	cfg.Backend.RatePerSec = 5
	cfg.Backend.Burst = 10
	cfg.Listing.PageSize = 7
	cfg.Listing.HomeFeatured = 3
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	return cfg
}

// Load reads path over the defaults, so a partial file is fine.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
