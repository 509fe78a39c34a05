package cmd

import (
	"fmt"
	"path/filepath"
)

type ConfigCmd struct {
	Init     InitConfigCmd     `cmd:"" help:"Write a default config.yml into the data dir."`
	Validate ValidateConfigCmd `cmd:"" help:"Check config.yml and print problems."`
	Path     PathConfigCmd     `cmd:"" help:"Print the config file path."`
}

type InitConfigCmd struct{}

type ValidateConfigCmd struct{}

type PathConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	// main already bootstrapped the file
	abs, _ := filepath.Abs(ctx.ConfigPath)
	_, err := fmt.Fprintf(ctx.Out, "Config at %s\n", abs)
	return err
}

func (c *ValidateConfigCmd) Run(ctx *Context) error {
	vr := ctx.Validation
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, vr)
	}
	for _, w := range vr.Warnings {
		fmt.Fprintf(ctx.Out, "warning: %s\n", w)
	}
	for _, e := range vr.Errors {
		fmt.Fprintf(ctx.Out, "error: %s\n", e)
	}
	if !vr.OK() {
		return fmt.Errorf("%d config error(s)", len(vr.Errors))
	}
	_, err := fmt.Fprintln(ctx.Out, "config ok")
	return err
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	abs, err := filepath.Abs(ctx.ConfigPath)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, abs)
	return err
}

