// Package config loads heroform settings from an optional YAML (or JSON) file
// overlaid with HEROFORM_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-heroform/pkg/validation"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "HEROFORM_"

// Record store kinds.
const (
	StoreMemory = "memory"
	StoreHTTP   = "http"
)

// Config is the full application configuration.
type Config struct {
	Listen         string        `yaml:"listen" env:"LISTEN"`
	ShutdownGrace  time.Duration `yaml:"shutdownGrace" env:"SHUTDOWN_GRACE"`
	MaxUploadBytes int64         `yaml:"maxUploadBytes" env:"MAX_UPLOAD_BYTES"`
	Store          Store         `yaml:"store" envPrefix:"STORE_"`
	Theme          Theme         `yaml:"theme" envPrefix:"THEME_"`
	Images         Images        `yaml:"images" envPrefix:"IMAGES_"`
}

// Store selects and configures the record store.
type Store struct {
	Kind    string        `yaml:"kind" env:"KIND"`
	BaseURL string        `yaml:"baseURL" env:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	// MountAPI serves the in-memory store's REST API under /api.
	MountAPI bool `yaml:"mountAPI" env:"MOUNT_API"`
	// APIDescription points at an OpenAPI document that overrides the
	// embedded endpoint paths for the http store.
	APIDescription string `yaml:"apiDescription" env:"API_DESCRIPTION"`
}

// Theme picks the manifest used by the HTML renderer.
type Theme struct {
	Name     string `yaml:"name" env:"NAME"`
	Variant  string `yaml:"variant" env:"VARIANT"`
	Manifest string `yaml:"manifest" env:"MANIFEST"`
}

// Images holds the upload limits.
type Images struct {
	MaxCount   int      `yaml:"maxCount" env:"MAX_COUNT"`
	MaxBytes   int64    `yaml:"maxBytes" env:"MAX_BYTES"`
	Extensions []string `yaml:"extensions" env:"EXTENSIONS" envSeparator:","`
}

// Rules converts the limits into validation rules.
func (i Images) Rules() validation.ImageRules {
	return validation.ImageRules{
		MaxCount:   i.MaxCount,
		MaxBytes:   i.MaxBytes,
		Extensions: append([]string(nil), i.Extensions...),
	}
}

// Default returns the built-in settings.
func Default() Config {
	rules := validation.DefaultImageRules()
	return Config{
		Listen:         ":8080",
		ShutdownGrace:  10 * time.Second,
		MaxUploadBytes: 64 << 20,
		Store: Store{
			Kind:     StoreMemory,
			Timeout:  30 * time.Second,
			MountAPI: true,
		},
		Images: Images{
			MaxCount:   rules.MaxCount,
			MaxBytes:   rules.MaxBytes,
			Extensions: rules.Extensions,
		},
	}
}

// Load reads path (when not empty) over the defaults, then applies
// environment overrides, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode accepts YAML or JSON. Unknown keys are rejected.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports inconsistent settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return errors.New("config: listen address is required")
	}
	switch c.Store.Kind {
	case StoreMemory:
	case StoreHTTP:
		if strings.TrimSpace(c.Store.BaseURL) == "" {
			return errors.New("config: store.baseURL is required for the http store")
		}
	default:
		return fmt.Errorf("config: unknown store kind %q", c.Store.Kind)
	}
	if c.ShutdownGrace < 0 {
		return errors.New("config: shutdownGrace must not be negative")
	}
	return nil
}
