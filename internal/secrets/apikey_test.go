package secrets

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"

	"gulfjobs-web/internal/config"
)

func TestAPIKeyRoundTrip(t *testing.T) {
	keyring.MockInit()

	cfg := config.Default()
	cfg.Backend.URL = "https://abc.supabase.co"
	acct := APIKeyAccount(cfg)
	if acct != "gulfjobs:apikey:abc.supabase.co" {
		t.Fatalf("APIKeyAccount() = %q", acct)
	}

	if _, err := GetAPIKey(acct); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("GetAPIKey() before set error = %v", err)
	}
	if err := SetAPIKey(acct, "anon"); err != nil {
		t.Fatalf("SetAPIKey() error = %v", err)
	}

	if err := ResolveAPIKey(&cfg); err != nil {
		t.Fatalf("ResolveAPIKey() error = %v", err)
	}
	if cfg.Backend.APIKey != "anon" {
		t.Fatalf("ResolveAPIKey() key = %q", cfg.Backend.APIKey)
	}

	cfg.Backend.APIKey = "from-env"
	_ = ResolveAPIKey(&cfg)
	if cfg.Backend.APIKey != "from-env" {
		t.Fatalf("ResolveAPIKey() overwrote explicit key")
	}

	if err := DeleteAPIKey(acct); err != nil {
		t.Fatalf("DeleteAPIKey() error = %v", err)
	}
	if _, err := GetAPIKey(acct); err == nil {
		t.Fatalf("GetAPIKey() after delete succeeded")
	}
}

func TestSetAPIKeyRejectsEmpty(t *testing.T) {
	keyring.MockInit()
	if err := SetAPIKey("", "x"); err == nil {
		t.Fatalf("empty account accepted")
	}
	if err := SetAPIKey("acct", "  "); err == nil {
		t.Fatalf("empty key accepted")
	}
}

func TestResolveAPIKeySurfacesKeychainFailure(t *testing.T) {
	locked := errors.New("keychain is locked")
	keyring.MockInitWithError(locked)
	t.Cleanup(keyring.MockInit)

	cfg := config.Default()
	cfg.Backend.URL = "https://abc.supabase.co"

	_, err := GetAPIKey(APIKeyAccount(cfg))
	if !errors.Is(err, locked) || errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("GetAPIKey() error = %v, want the keychain failure", err)
	}
	if err := ResolveAPIKey(&cfg); !errors.Is(err, locked) {
		t.Fatalf("ResolveAPIKey() error = %v, want the keychain failure", err)
	}
	if cfg.Backend.APIKey != "" {
		t.Fatalf("APIKey = %q, want empty", cfg.Backend.APIKey)
	}

	// other drivers never touch the keychain
	cfg.Backend.Driver = config.DriverSQLite
	if err := ResolveAPIKey(&cfg); err != nil {
		t.Fatalf("ResolveAPIKey(sqlite) error = %v", err)
	}
}

func TestResolveAPIKeyMissingIsNotAnError(t *testing.T) {
	keyring.MockInit()
	cfg := config.Default()
	cfg.Backend.URL = "https://abc.supabase.co"
	if err := ResolveAPIKey(&cfg); err != nil || cfg.Backend.APIKey != "" {
		t.Fatalf("ResolveAPIKey() = %q, %v", cfg.Backend.APIKey, err)
	}
}
