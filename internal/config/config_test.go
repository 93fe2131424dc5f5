package config_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobalabs/lobabot/internal/config"
	"github.com/lobalabs/lobabot/pkg/engine"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VERIFY_TOKEN", "verify")
	t.Setenv("WHATSAPP_TOKEN", "token")
	t.Setenv("PHONE_NUMBER_ID", "phone-1")
	t.Setenv("SHEETS_WEBAPP_URL", "https://script.example/exec")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, engine.DefaultDistricts(), cfg.Districts)
	assert.Equal(t, engine.DefaultPrompts(), cfg.Prompts)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ASISTENTE_NUMERO", "56900009999")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "56900009999", cfg.OperatorNumber)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_StateEncryptionKey(t *testing.T) {
	setRequiredEnv(t)

	t.Run("valid 32-byte key", func(t *testing.T) {
		t.Setenv("STATE_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(make([]byte, 32)))
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Len(t, cfg.StateEncryptionKey, 32)
	})

	t.Run("wrong length rejected", func(t *testing.T) {
		t.Setenv("STATE_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(make([]byte, 16)))
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("not base64 rejected", func(t *testing.T) {
		t.Setenv("STATE_ENCRYPTION_KEY", "%%%not-base64%%%")
		_, err := config.Load()
		assert.Error(t, err)
	})
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_FileOverrides(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "lobabot.yaml")
	content := `
districts:
  - providencia
  - la cisterna
prompts:
  ask_district: "¿Comuna?"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"providencia", "la cisterna"}, cfg.Districts)
	assert.Equal(t, "¿Comuna?", cfg.Prompts.AskDistrict)
	// Untouched prompts keep their defaults.
	assert.Equal(t, engine.DefaultPrompts().AskDetail, cfg.Prompts.AskDetail)
}

func TestLoad_FileUnknownKeyRejected(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "lobabot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("distrcits: [typo]\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WHATSAPP_TOKEN", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "WHATSAPP_TOKEN")
}
