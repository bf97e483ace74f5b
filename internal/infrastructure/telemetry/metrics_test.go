package telemetry_test

import (
	"context"
	"testing"

	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:4317",
		ServiceName:       "storefront-test",
	}, logger)
	require.NoError(t, err)
	require.NotNil(t, mp)

	assert.False(t, mp.IsEnabled())

	// A disabled provider still hands out usable no-op meters
	meter := mp.Meter("test")
	counter, err := meter.Int64Counter("noop_counter")
	require.NoError(t, err)
	counter.Add(ctx, 1)

	assert.NoError(t, mp.ForceFlush(ctx))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestNewMeterProvider_Enabled(t *testing.T) {
	// Requires a live OTLP collector; run only outside short mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           true,
		CollectorEndpoint: "localhost:4317",
		ServiceName:       "storefront-test",
		Insecure:          true,
	}, logger)
	require.NoError(t, err)
	require.NotNil(t, mp)
	assert.True(t, mp.IsEnabled())

	counter, err := mp.Meter("test").Int64Counter("integration_counter")
	require.NoError(t, err)
	counter.Add(ctx, 1)

	assert.NoError(t, mp.Shutdown(ctx))
}
