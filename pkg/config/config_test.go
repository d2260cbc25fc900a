package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
		assert.True(t, cfg.Reconcile.Tolerance.Equal(decimal.RequireFromString("0.01")))
		assert.Empty(t, cfg.Sweep.Schedule)
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("API_KEY", " secret ")
		t.Setenv("RECONCILE_TOLERANCE", "0.05")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "secret", cfg.Server.APIKey)
		assert.True(t, cfg.Reconcile.Tolerance.Equal(decimal.RequireFromString("0.05")))
	})

	t.Run("legacy PORT variable", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Server.Port)
	})

	t.Run("rejects bad tolerance", func(t *testing.T) {
		t.Setenv("RECONCILE_TOLERANCE", "a-lot")
		_, err := Load()
		assert.Error(t, err)

		t.Setenv("RECONCILE_TOLERANCE", "-0.01")
		_, err = Load()
		assert.Error(t, err)
	})
}
