// Package metrics 导出日志库自身的运行计数。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 日志管线的计数器集合，nil 接收者上的方法不做任何事
type Metrics struct {
	RecordsTotal         *prometheus.CounterVec
	TransportErrorsTotal *prometheus.CounterVec
	EventsRaisedTotal    *prometheus.CounterVec
	InvalidCallsTotal    *prometheus.CounterVec
	DroppedFieldsTotal   prometheus.Counter
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default 返回注册在 prometheus.DefaultRegisterer 上的实例
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// New 在 reg 上注册计数器，reg 为 nil 时只创建不注册
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bmclog",
			Name:      "records_total",
			Help:      "Total number of records emitted by severity.",
		}, []string{"severity"}),
		TransportErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bmclog",
			Name:      "transport_errors_total",
			Help:      "Total number of failed record writes by transport.",
		}, []string{"transport"}),
		EventsRaisedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bmclog",
			Name:      "events_raised_total",
			Help:      "Total number of structured events raised by identifier.",
		}, []string{"identifier"}),
		InvalidCallsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bmclog",
			Name:      "invalid_calls_total",
			Help:      "Total number of logging calls with malformed arguments by reason.",
		}, []string{"reason"}), // reason: missing_header, missing_value, nesting, unsupported_type, flags
		DroppedFieldsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "bmclog",
			Name:      "dropped_fields_total",
			Help:      "Total number of fields dropped for an invalid header or value.",
		}),
	}
}

func (m *Metrics) Record(severity string) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(severity).Inc()
}

func (m *Metrics) TransportError(transport string) {
	if m == nil {
		return
	}
	m.TransportErrorsTotal.WithLabelValues(transport).Inc()
}

func (m *Metrics) EventRaised(identifier string) {
	if m == nil {
		return
	}
	m.EventsRaisedTotal.WithLabelValues(identifier).Inc()
}

func (m *Metrics) InvalidCall(reason string) {
	if m == nil {
		return
	}
	m.InvalidCallsTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) DroppedFields(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.DroppedFieldsTotal.Add(float64(n))
}
