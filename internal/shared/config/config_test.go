package config

import (
	"testing"

	"github.com/KevinKolb/CableGuide/internal/shared/errors"
)

func TestLoadRejectsNonPositiveUpdateInterval(t *testing.T) {
	for _, interval := range []string{"0", "-5"} {
		t.Chdir(t.TempDir())
		t.Setenv("LISTINGS_API_URL", "http://listings.example.com")
		t.Setenv("API_KEY", "test-key")
		t.Setenv("ZIP_CODE", "10001")
		t.Setenv("UPDATE_INTERVAL", interval)

		if _, err := Load(); err != errors.ErrInvalidUpdateInterval {
			t.Errorf("interval %q: err = %v, want ErrInvalidUpdateInterval", interval, err)
		}
	}
}

func TestLoadLocalOnlySkipsRemoteValidation(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LISTINGS_API_URL", "")
	t.Setenv("UPDATE_INTERVAL", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RemoteEnabled() {
		t.Error("remote refresh enabled without an API URL")
	}
}
