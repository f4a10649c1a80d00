package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("计数器递增", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := New(reg)

		m.Record("info")
		m.Record("info")
		m.TransportError("journal")
		m.EventRaised("xyz.openbmc_project.Common.Error.NotFound")
		m.InvalidCall("missing_value")
		m.DroppedFields(3)
		m.DroppedFields(0)

		assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("info")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.TransportErrorsTotal.WithLabelValues("journal")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsRaisedTotal.WithLabelValues("xyz.openbmc_project.Common.Error.NotFound")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.InvalidCallsTotal.WithLabelValues("missing_value")))
		assert.Equal(t, 3.0, testutil.ToFloat64(m.DroppedFieldsTotal))

		n, err := testutil.GatherAndCount(reg)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("nil 接收者安全", func(t *testing.T) {
		var m *Metrics
		assert.NotPanics(t, func() {
			m.Record("debug")
			m.TransportError("file")
			m.EventRaised("x")
			m.InvalidCall("nesting")
			m.DroppedFields(1)
		})
	})

	t.Run("未注册的实例", func(t *testing.T) {
		m := New(nil)
		m.Record("error")
		assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("error")))
	})

	t.Run("Default 单例", func(t *testing.T) {
		assert.Same(t, Default(), Default())
	})
}
