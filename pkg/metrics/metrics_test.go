package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectorsTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() {
		RegisterCollectors(reg)
		RegisterCollectors(reg)
	})
}

func TestObservePersonOp(t *testing.T) {
	before := testutil.ToFloat64(PersonOperations.WithLabelValues("test-op", "error"))
	ObservePersonOp("test-op", nil)
	ObservePersonOp("test-op", errors.New("boom"))
	require.Equal(t, 1.0, testutil.ToFloat64(PersonOperations.WithLabelValues("test-op", "ok")))
	require.Equal(t, before+1, testutil.ToFloat64(PersonOperations.WithLabelValues("test-op", "error")))
}
