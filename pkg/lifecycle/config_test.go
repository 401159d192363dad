package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxkit/fluxkit/pkg/lifecycle"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := lifecycle.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
		assert.False(t, cfg.MetricsEnabled)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("FLUXKIT_REQUEST_TIMEOUT", "150ms")
		t.Setenv("FLUXKIT_METRICS_ENABLED", "true")

		cfg, err := lifecycle.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 150*time.Millisecond, cfg.RequestTimeout)
		assert.True(t, cfg.MetricsEnabled)
	})

	t.Run("invalid values wrap the parsing sentinel", func(t *testing.T) {
		t.Setenv("FLUXKIT_REQUEST_TIMEOUT", "not-a-duration")

		_, err := lifecycle.LoadConfig()
		assert.ErrorIs(t, err, lifecycle.ErrParsingConfig)
	})
}

func TestNewFromEnv(t *testing.T) {
	t.Run("builds middleware from environment", func(t *testing.T) {
		t.Setenv("FLUXKIT_REQUEST_TIMEOUT", "1s")

		mw, err := lifecycle.NewFromEnv()
		require.NoError(t, err)
		assert.NotNil(t, mw)
	})

	t.Run("propagates config errors", func(t *testing.T) {
		t.Setenv("FLUXKIT_METRICS_ENABLED", "maybe")

		_, err := lifecycle.NewFromEnv()
		assert.ErrorIs(t, err, lifecycle.ErrParsingConfig)
	})
}
