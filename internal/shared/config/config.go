package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/KevinKolb/CableGuide/internal/modules/guide/domain"
	"github.com/KevinKolb/CableGuide/internal/shared/errors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	ZipCode        string        `koanf:"zip_code"`
	APIKey         string        `koanf:"api_key"`
	ListingsAPIURL string        `koanf:"listings_api_url"`
	HTTPPort       string        `koanf:"http_port"`
	DataPath       string        `koanf:"data_path"`
	GuidePath      string        `koanf:"guide_path"`
	AdsPath        string        `koanf:"ads_path"`
	ImagesPath     string        `koanf:"images_path"`
	UpdateInterval int           `koanf:"update_interval"`
	SlotMinutes    int           `koanf:"slot_minutes"`
	SlotWidthPx    int           `koanf:"slot_width_px"`
	MinShowWidthPx int           `koanf:"min_show_width_px"`
	SlotCount      int           `koanf:"slot_count"`
	RowHeightPx    int           `koanf:"row_height_px"`
	ScrollStepPx   float64       `koanf:"scroll_step_px"`
	SessionTTL     int           `koanf:"session_ttl"`
	SessionCap     int           `koanf:"session_cap"`
	AppEnv         domain.AppEnv `koanf:"app_env"`
}

// RemoteEnabled reports whether the guide is refreshed from the listings API.
// With no API URL configured the service runs purely off the local guide.xml.
func (c *Config) RemoteEnabled() bool {
	return c.ListingsAPIURL != ""
}

var zipCodeRe = regexp.MustCompile(`^\d{5}$`)

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("zip_code") {
		k.Set("zip_code", "10001")
	}
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("data_path") {
		k.Set("data_path", "./data")
	}
	if !k.Exists("guide_path") {
		k.Set("guide_path", "./guide.xml")
	}
	if !k.Exists("ads_path") {
		k.Set("ads_path", "./ads.xml")
	}
	if !k.Exists("images_path") {
		k.Set("images_path", "./images")
	}
	if !k.Exists("update_interval") {
		k.Set("update_interval", 3600)
	}
	if !k.Exists("slot_minutes") {
		k.Set("slot_minutes", 30)
	}
	if !k.Exists("slot_width_px") {
		k.Set("slot_width_px", 140)
	}
	if !k.Exists("min_show_width_px") {
		k.Set("min_show_width_px", 70)
	}
	if !k.Exists("slot_count") {
		k.Set("slot_count", 8)
	}
	if !k.Exists("row_height_px") {
		k.Set("row_height_px", 60)
	}
	if !k.Exists("scroll_step_px") {
		k.Set("scroll_step_px", 0.5)
	}
	if !k.Exists("session_ttl") {
		k.Set("session_ttl", 1800)
	}
	if !k.Exists("session_cap") {
		k.Set("session_cap", 4096)
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Parse AppEnv from string if needed
	if appEnvStr := k.String("app_env"); appEnvStr != "" {
		if env, err := domain.ParseAppEnv(appEnvStr); err == nil {
			cfg.AppEnv = env
		} else {
			cfg.AppEnv = domain.AppEnvProduction
		}
	} else {
		cfg.AppEnv = domain.AppEnvProduction
	}

	// Validate required fields: remote refresh needs credentials,
	// local-only mode works with the defaults alone.
	if cfg.RemoteEnabled() {
		if cfg.APIKey == "" {
			return nil, errors.ErrMissingAPIKey
		}
		if !zipCodeRe.MatchString(cfg.ZipCode) {
			return nil, errors.ErrInvalidZipCode
		}
		if cfg.UpdateInterval <= 0 {
			return nil, errors.ErrInvalidUpdateInterval
		}
	}

	return &cfg, nil
}
