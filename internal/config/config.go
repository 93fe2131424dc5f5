// Package config loads the bridge configuration from the environment
// (optionally a .env file) plus an optional YAML file for the district
// allowlist and prompt overrides.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/lobalabs/lobabot/pkg/engine"
)

// Config is the resolved runtime configuration.
type Config struct {
	// Webhook / provider credentials.
	VerifyToken   string
	WhatsAppToken string
	PhoneNumberID string

	// Sink and operator.
	SheetsWebAppURL string
	OperatorNumber  string

	// Server.
	Port string

	// State store. Empty RedisAddr selects the in-memory store, which
	// loses in-flight conversations on restart.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// StateEncryptionKey, when set, wraps the store so persisted
	// conversations (names, hand-off reasons) are AES-256 encrypted.
	StateEncryptionKey []byte

	// Engine texts.
	Districts []string
	Prompts   engine.Prompts
}

// fileConfig is the YAML override file shape. Decoded through a generic
// map so unknown keys are reported instead of silently dropped.
type fileConfig struct {
	Districts []string       `mapstructure:"districts"`
	Prompts   engine.Prompts `mapstructure:"prompts"`
}

// Load resolves configuration: .env (when present), then environment
// variables, then the optional CONFIG_FILE overrides.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars win anyway.
	_ = godotenv.Load()

	cfg := &Config{
		VerifyToken:     os.Getenv("VERIFY_TOKEN"),
		WhatsAppToken:   os.Getenv("WHATSAPP_TOKEN"),
		PhoneNumberID:   os.Getenv("PHONE_NUMBER_ID"),
		SheetsWebAppURL: os.Getenv("SHEETS_WEBAPP_URL"),
		OperatorNumber:  os.Getenv("ASISTENTE_NUMERO"),
		Port:            os.Getenv("PORT"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		Districts:       engine.DefaultDistricts(),
		Prompts:         engine.DefaultPrompts(),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", db, err)
		}
		cfg.RedisDB = n
	}

	if enc := os.Getenv("STATE_ENCRYPTION_KEY"); enc != "" {
		key, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, fmt.Errorf("invalid STATE_ENCRYPTION_KEY: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("STATE_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(key))
		}
		cfg.StateEncryptionKey = key
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyFile merges YAML overrides into the config.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	var fc fileConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &fc,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config file: %w", err)
	}

	if len(fc.Districts) > 0 {
		c.Districts = fc.Districts
	}
	c.Prompts = mergePrompts(c.Prompts, fc.Prompts)
	return nil
}

// mergePrompts overlays non-empty override texts onto the base prompts.
func mergePrompts(base, override engine.Prompts) engine.Prompts {
	if override.AskDogNameTraining != "" {
		base.AskDogNameTraining = override.AskDogNameTraining
	}
	if override.AskDogNameWalks != "" {
		base.AskDogNameWalks = override.AskDogNameWalks
	}
	if override.AskClientName != "" {
		base.AskClientName = override.AskClientName
	}
	if override.AskDistrict != "" {
		base.AskDistrict = override.AskDistrict
	}
	if override.AskDetail != "" {
		base.AskDetail = override.AskDetail
	}
	if override.AskReason != "" {
		base.AskReason = override.AskReason
	}
	if override.ConfirmTraining != "" {
		base.ConfirmTraining = override.ConfirmTraining
	}
	if override.ConfirmWalks != "" {
		base.ConfirmWalks = override.ConfirmWalks
	}
	if override.ConfirmHuman != "" {
		base.ConfirmHuman = override.ConfirmHuman
	}
	if override.InvalidName != "" {
		base.InvalidName = override.InvalidName
	}
	if override.InvalidDistrict != "" {
		base.InvalidDistrict = override.InvalidDistrict
	}
	if override.InvalidDetail != "" {
		base.InvalidDetail = override.InvalidDetail
	}
	return base
}

// Validate checks that everything the serve command needs is present.
func (c *Config) Validate() error {
	if c.VerifyToken == "" {
		return fmt.Errorf("VERIFY_TOKEN is required")
	}
	if c.WhatsAppToken == "" {
		return fmt.Errorf("WHATSAPP_TOKEN is required")
	}
	if c.PhoneNumberID == "" {
		return fmt.Errorf("PHONE_NUMBER_ID is required")
	}
	if c.SheetsWebAppURL == "" {
		return fmt.Errorf("SHEETS_WEBAPP_URL is required")
	}
	return nil
}
