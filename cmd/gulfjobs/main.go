package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"gulfjobs-web/internal/cmd"
	"gulfjobs-web/internal/logging"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	cli := cmd.NewCLI()
	versionString := buildVersion()

	parser, err := kong.New(cli,
		kong.Name("gulfjobs"),
		kong.Description("Job board for Gulf visa services."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": versionString},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	cfg, cfgPath, vr, err := cmd.LoadConfig(cli.DataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := cfg.Log.Level
	if cli.LogLevel != "" {
		level = cli.LogLevel
	}
	logger := logging.New(os.Stderr, level, cfg.Log.Format)
	for _, w := range vr.Warnings {
		logger.Warn().Str("config", cfgPath).Msg(w)
	}

	runCtx := &cmd.Context{
		Out:        os.Stdout,
		Err:        os.Stderr,
		Config:     cfg,
		ConfigPath: cfgPath,
		Validation: vr,
		Logger:     logger,
		JSONOutput: cli.JSON,
		Version:    versionString,
	}

	if err := kctx.Run(runCtx); err != nil {
		logger.Error().Err(err).Str("command", kctx.Command()).Msg("command failed")
		os.Exit(1)
	}
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}
