package core

import (
	"sync"

	"github.com/iuboy/bmclog/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// memTransport 在内存中保存每条记录
type memTransport struct {
	mu      sync.Mutex
	records [][]Entry
	err     error
	synced  int
	closed  int
}

func (m *memTransport) WriteRecord(entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, entries)
	return nil
}

func (m *memTransport) Sync() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.synced++
	return nil
}

func (m *memTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}

func (m *memTransport) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *memTransport) last() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.records) == 0 {
		return nil
	}
	return m.records[len(m.records)-1]
}

func value(entries []Entry, key string) (string, bool) {
	for _, e := range entries {
		if e.Key == key {
			return string(e.Value), true
		}
	}
	return "", false
}

func keys(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key
	}
	return out
}

func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}
