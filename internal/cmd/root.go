package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	DataDir  string `help:"Directory holding config.yml and the sqlite database." env:"GULFJOBS_DATA_DIR" default:"." type:"path"`
	LogLevel string `help:"Override log.level (debug, info, warn, error)." name:"log-level"`
	JSON     bool   `help:"JSON output to stdout."`

	VersionFlag kong.VersionFlag `name:"version" help:"Print version."`

	Serve   ServeCmd   `cmd:"" help:"Run the job board web server."`
	Jobs    JobsCmd    `cmd:"" help:"Browse postings from the configured backend."`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration."`
	Secrets SecretsCmd `cmd:"" help:"Manage the backend API key in the OS keychain."`
	DB      DBCmd      `cmd:"" name:"db" help:"Local database utilities."`
	Version VersionCmd `cmd:"" help:"Print version."`
}

func NewCLI() *CLI {
	return &CLI{}
}
