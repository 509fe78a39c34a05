package secrets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zalando/go-keyring"

	"gulfjobs-web/internal/config"
)

const (
	// KeyringService groups the app's secrets in the OS keychain.
	KeyringService = "gulfjobs"
)

var ErrNoAPIKey = errors.New("backend api key not found (set it in keychain or via GULFJOBS_BACKEND_API_KEY)")

// GetAPIKey returns ErrNoAPIKey when nothing is stored. Other keychain
// failures (locked keychain, no secret service) come back wrapped.
func GetAPIKey(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) == "" {
		return "", ErrNoAPIKey
	}
	key, err := keyring.Get(KeyringService, keyringAccount)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNoAPIKey
	case err != nil:
		return "", fmt.Errorf("read keychain entry %s: %w", keyringAccount, err)
	case strings.TrimSpace(key) == "":
		return "", ErrNoAPIKey
	}
	return key, nil
}

func SetAPIKey(keyringAccount string, key string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, key)
}

func DeleteAPIKey(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

// APIKeyAccount names the keychain entry for the configured backend host.
func APIKeyAccount(cfg config.Config) string {
	host := strings.TrimSpace(cfg.Backend.URL)
	if u, err := url.Parse(host); err == nil && u.Host != "" {
		host = u.Host
	}
	return fmt.Sprintf("gulfjobs:apikey:%s", host)
}

// ResolveAPIKey fills cfg.Backend.APIKey from the keychain when neither the
// file nor the environment set it. A missing key is not an error; public
// row APIs may not need one. An unreadable keychain is.
func ResolveAPIKey(cfg *config.Config) error {
	if cfg.Backend.Driver != config.DriverREST || strings.TrimSpace(cfg.Backend.APIKey) != "" {
		return nil
	}
	key, err := GetAPIKey(APIKeyAccount(*cfg))
	switch {
	case err == nil:
		cfg.Backend.APIKey = key
		return nil
	case errors.Is(err, ErrNoAPIKey):
		return nil
	default:
		return err
	}
}
