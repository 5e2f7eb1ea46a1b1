package config

import (
	"testing"
	"time"

	"github.com/hobbs-it/helpdesk-bot/internal/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, []string{"kurganmk", "reftp", "hobbs-it", "skhp-ural"}, cfg.AllowedEmailDomains)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, 15*time.Minute, cfg.ChallengeTTL)
	assert.Equal(t, "verified_users", cfg.DynamoTables.VerifiedUsers)
	assert.Equal(t, "message_log", cfg.DynamoTables.MessageLog)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ALLOWED_EMAIL_DOMAINS", "kurganmk, reftp ,")
	t.Setenv("SESSION_IDLE_TTL", "10m")
	t.Setenv("CHALLENGE_TTL", "300")

	cfg := Load()
	assert.Equal(t, []string{"kurganmk", "reftp"}, cfg.AllowedEmailDomains)
	assert.Equal(t, 10*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, 5*time.Minute, cfg.ChallengeTTL)
}

func TestValidate_MissingToken(t *testing.T) {
	cfg := Load()
	cfg.TelegramToken = ""
	require.Error(t, validate.Struct(cfg))
}

func TestValidate_Complete(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TRACKER_ORG_ID", "org")
	t.Setenv("TRACKER_OAUTH_TOKEN", "tok")

	cfg := Load()
	require.NoError(t, validate.Struct(cfg))
}
