package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMustRegisterMetricsIsIdempotent(t *testing.T) {
	require.NotPanics(t, MustRegisterMetrics)
	require.NotPanics(t, MustRegisterMetrics)
}

func TestCollectors(t *testing.T) {
	before := testutil.ToFloat64(RefreshTotal.WithLabelValues("ok"))
	RefreshTotal.WithLabelValues("ok").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(RefreshTotal.WithLabelValues("ok")))

	PriceCacheSize.Set(3)
	require.Equal(t, 3.0, testutil.ToFloat64(PriceCacheSize))
}
