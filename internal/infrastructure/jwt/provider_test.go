package jwtinfra

import (
	"testing"
	"time"

	"github.com/hobbs-it/helpdesk-bot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{
		AdminJWTSecret: "test-secret",
		JWTExpiry:      time.Hour,
	})
	require.NoError(t, err)
	return p
}

func TestSignAndVerify(t *testing.T) {
	p := newTestProvider(t)
	token, err := p.Sign("oncall")
	require.NoError(t, err)

	claims, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "oncall", claims.Operator)
}

func TestVerify_WrongSecret(t *testing.T) {
	p := newTestProvider(t)
	token, err := p.Sign("oncall")
	require.NoError(t, err)

	other, err := NewProvider(&config.Config{AdminJWTSecret: "different", JWTExpiry: time.Hour})
	require.NoError(t, err)
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	p := newTestProvider(t)
	_, err := p.Verify("not-a-token")
	assert.Error(t, err)
}

func TestNewProvider_MissingSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{})
	assert.Error(t, err)
}
