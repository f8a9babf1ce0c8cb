package client

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimtoget/smeplug-go/client/smeplugtest"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SMEPLUG_API_KEY", "env-key")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 50*time.Second, cfg.Timeout)
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_MissingKey(t *testing.T) {
	t.Setenv("SMEPLUG_API_KEY", "")
	require.NoError(t, os.Unsetenv("SMEPLUG_API_KEY"))
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNewFromEnv(t *testing.T) {
	srv := smeplugtest.NewServer("env-key")
	defer srv.Close()
	t.Setenv("SMEPLUG_API_KEY", "env-key")
	t.Setenv("SMEPLUG_BASE_URL", srv.BaseURL())
	t.Setenv("SMEPLUG_TIMEOUT", "3s")

	c, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.Timeout())

	name, err := c.ResolveAccountDetails(context.Background(), "000007", "0123456789")
	require.NoError(t, err)
	assert.Equal(t, "ADA OBI", name)
}

func TestNewCustomerReference(t *testing.T) {
	a, b := NewCustomerReference(), NewCustomerReference()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
