package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gulfjobs-web/internal/secrets"
)

type SecretsCmd struct {
	SetAPIKey    SetAPIKeyCmd    `cmd:"" name:"set-api-key" help:"Store the backend API key in the OS keychain."`
	DeleteAPIKey DeleteAPIKeyCmd `cmd:"" name:"delete-api-key" help:"Remove the stored backend API key."`
}

type SetAPIKeyCmd struct {
	Key string `arg:"" optional:"" help:"API key; read from stdin when omitted."`
}

type DeleteAPIKeyCmd struct{}

func (s *SetAPIKeyCmd) Run(ctx *Context) error {
	if ctx.Config.Backend.URL == "" {
		return errors.New("backend.url must be set before storing its api key")
	}
	key := strings.TrimSpace(s.Key)
	if key == "" {
		k, err := readLine(os.Stdin)
		if err != nil {
			return err
		}
		key = k
	}
	acct := secrets.APIKeyAccount(ctx.Config)
	if err := secrets.SetAPIKey(acct, key); err != nil {
		return fmt.Errorf("failed to store api key: %w", err)
	}
	_, err := fmt.Fprintf(ctx.Out, "Stored api key as %s\n", acct)
	return err
}

func (d *DeleteAPIKeyCmd) Run(ctx *Context) error {
	acct := secrets.APIKeyAccount(ctx.Config)
	if err := secrets.DeleteAPIKey(acct); err != nil {
		return err
	}
	_, err := fmt.Fprintf(ctx.Out, "Deleted %s\n", acct)
	return err
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
