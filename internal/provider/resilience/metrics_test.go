package resilience_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardroute/hazardroute/internal/provider/resilience"
)

func TestNewProviderMetrics(t *testing.T) {
	metrics, err := resilience.NewProviderMetrics()
	require.NoError(t, err)
	assert.NotNil(t, metrics)
}

func TestProviderMetrics_RecordRequest(t *testing.T) {
	metrics, err := resilience.NewProviderMetrics()
	require.NoError(t, err)

	metrics.RecordRequest("hazardwatch", "fetch-zones", 120*time.Millisecond, nil)
	metrics.RecordRequest("hazardwatch", "fetch-zones", 50*time.Millisecond, assert.AnError)
}
