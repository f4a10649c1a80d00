package core

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/iuboy/bmclog/config"
	"github.com/iuboy/bmclog/flags"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestLogger(t *testing.T, outputs ...Output) (*Logger, *observer.ObservedLogs) {
	t.Helper()
	obsCore, logs := observer.New(zapcore.DebugLevel)
	return New("test-svc", outputs, WithMetrics(testMetrics()), WithDiagnostics(zap.New(obsCore))), logs
}

func TestLoggerLog(t *testing.T) {
	t.Run("记录调用位置与字段", func(t *testing.T) {
		mem := &memTransport{}
		l, _ := newTestLogger(t, Output{Name: "mem", MinSeverity: DebugLevel, Transport: mem})

		l.Log(InfoLevel, "fan {ID} at {RPM}", Uint("ID", uint(2)), Uint("RPM", uint(5000)))

		require.Equal(t, 1, mem.count())
		entries := mem.last()
		v, _ := value(entries, "MESSAGE")
		assert.Equal(t, "fan 2 at 5000", v)
		v, _ = value(entries, "CODE_FUNC")
		assert.Contains(t, v, "TestLoggerLog")
		v, _ = value(entries, "CODE_FILE")
		assert.True(t, strings.HasSuffix(v, "logger_test.go"))
		v, _ = value(entries, "SYSLOG_IDENTIFIER")
		assert.Equal(t, "test-svc", v)
		assert.Equal(t, 1.0, testutil.ToFloat64(l.metrics.RecordsTotal.WithLabelValues("info")))
	})

	t.Run("自定义位置", func(t *testing.T) {
		mem := &memTransport{}
		l, _ := newTestLogger(t, Output{Name: "mem", MinSeverity: DebugLevel, Transport: mem})

		l.LogAt(Location{File: "gen.cpp", Line: 7, Function: "gen"}, ErrorLevel, "m")

		v, _ := value(mem.last(), "CODE_FILE")
		assert.Equal(t, "gen.cpp", v)
		v, _ = value(mem.last(), "CODE_LINE")
		assert.Equal(t, "7", v)
	})

	t.Run("按输出级别过滤", func(t *testing.T) {
		all := &memTransport{}
		errOnly := &memTransport{}
		l, _ := newTestLogger(t,
			Output{Name: "all", MinSeverity: DebugLevel, Transport: all},
			Output{Name: "err", MinSeverity: ErrorLevel, Transport: errOnly},
		)

		l.Log(InfoLevel, "info")
		l.Log(ErrorLevel, "error")
		l.Log(CriticalLevel, "critical")

		assert.Equal(t, 3, all.count())
		assert.Equal(t, 2, errOnly.count())
		assert.True(t, l.Enabled(DebugLevel))
	})

	t.Run("非法字段被丢弃并报告", func(t *testing.T) {
		mem := &memTransport{}
		l, logs := newTestLogger(t, Output{Name: "mem", MinSeverity: DebugLevel, Transport: mem})

		l.Log(InfoLevel, "m", String("lower", "x"), Uint("OK", uint(1)))

		require.Equal(t, 1, mem.count())
		_, ok := value(mem.last(), "lower")
		assert.False(t, ok)
		_, ok = value(mem.last(), "OK")
		assert.True(t, ok)
		assert.Equal(t, 1, logs.FilterMessage("丢弃非法日志字段").Len())
		assert.Equal(t, 1.0, testutil.ToFloat64(l.metrics.DroppedFieldsTotal))
	})
}

func TestLoggerLogw(t *testing.T) {
	t.Run("平铺参数", func(t *testing.T) {
		mem := &memTransport{}
		l, logs := newTestLogger(t, Output{Name: "mem", MinSeverity: DebugLevel, Transport: mem})

		l.Logw(NoticeLevel, "reg {REG}", "REG", flags.Hex|flags.Field16, uint16(0xbeef), "OK", true)

		v, _ := value(mem.last(), "MESSAGE")
		assert.Equal(t, "reg 0xbeef", v)
		v, _ = value(mem.last(), "OK")
		assert.Equal(t, "True", v)
		v, _ = value(mem.last(), "CODE_FUNC")
		assert.Contains(t, v, "TestLoggerLogw")
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("非法参数仍输出已解析前缀", func(t *testing.T) {
		mem := &memTransport{}
		l, logs := newTestLogger(t, Output{Name: "mem", MinSeverity: DebugLevel, Transport: mem})

		l.Logw(InfoLevel, "m", "A", 1, "B")

		require.Equal(t, 1, mem.count())
		_, ok := value(mem.last(), "A")
		assert.True(t, ok)
		_, ok = value(mem.last(), "B")
		assert.False(t, ok)

		entries := logs.FilterMessage("日志参数非法").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "missing_value", entries[0].ContextMap()["reason"])
		assert.Equal(t, 1.0, testutil.ToFloat64(l.metrics.InvalidCallsTotal.WithLabelValues("missing_value")))
	})
}

func TestLoggerTransportFailure(t *testing.T) {
	broken := &memTransport{err: errors.New("socket gone")}
	good := &memTransport{}
	l, logs := newTestLogger(t,
		Output{Name: "journal", MinSeverity: DebugLevel, Transport: broken},
		Output{Name: "file", MinSeverity: DebugLevel, Transport: good},
	)

	rec, _ := NewRecord(ErrorLevel, Caller(0), "m", nil)
	err := l.LogRecord(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal: socket gone")
	assert.Equal(t, 1, good.count())
	assert.Equal(t, 1.0, testutil.ToFloat64(l.metrics.TransportErrorsTotal.WithLabelValues("journal")))
	assert.Equal(t, 1, logs.FilterMessage("写入日志记录失败").Len())

	// Log 不返回错误，也不会 panic
	assert.NotPanics(t, func() { l.Log(InfoLevel, "again") })
	assert.Equal(t, 2, good.count())
}

func TestLoggerMirror(t *testing.T) {
	var buf bytes.Buffer
	mem := &memTransport{}
	l := New("", []Output{{Name: "mem", MinSeverity: ErrorLevel, Transport: mem}},
		WithMetrics(testMetrics()), WithMirror("%l|%m", zapcore.AddSync(&buf)))

	l.Log(DebugLevel, "quiet {N}", Int("N", 1))

	assert.Equal(t, "7|quiet 1\n", buf.String())
	assert.Equal(t, 0, mem.count())
	assert.True(t, l.Enabled(DebugLevel))
}

func TestLoggerConcurrent(t *testing.T) {
	mem := &memTransport{}
	l, _ := newTestLogger(t, Output{Name: "mem", MinSeverity: DebugLevel, Transport: mem})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Log(InfoLevel, "n {N}", Int("N", i))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, mem.count())
}

func TestLoggerDiagnostics(t *testing.T) {
	t.Run("并发非法调用都输出诊断", func(t *testing.T) {
		mem := &memTransport{}
		l, logs := newTestLogger(t, Output{Name: "mem", MinSeverity: DebugLevel, Transport: mem})

		const n = 50
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				l.Logw(InfoLevel, "dangling", "A")
			}()
		}
		wg.Wait()

		assert.Equal(t, n, logs.FilterMessage("日志参数非法").Len())
		assert.Equal(t, float64(n), testutil.ToFloat64(l.metrics.InvalidCallsTotal.WithLabelValues("missing_value")))
		assert.Equal(t, n, mem.count())
	})

	t.Run("诊断写回自身时不递归", func(t *testing.T) {
		broken := &memTransport{err: errors.New("socket gone")}
		l := New("", []Output{{Name: "journal", MinSeverity: DebugLevel, Transport: broken}}, WithMetrics(testMetrics()))
		l.diag = func() *zap.Logger { return zap.New(NewZapCore(l, zapcore.DebugLevel)) }

		rec, _ := NewRecord(ErrorLevel, Caller(0), "m", nil)
		assert.Error(t, l.LogRecord(rec))
		// 一次原始写入加一次诊断写入
		assert.Equal(t, 2.0, testutil.ToFloat64(l.metrics.TransportErrorsTotal.WithLabelValues("journal")))
	})
}

func TestNewLogger(t *testing.T) {
	mem := &memTransport{}
	factory := func(out config.OutputConfig) (Transport, error) {
		if out.Type == config.Syslog {
			return nil, errors.New("dial failed")
		}
		return mem, nil
	}

	t.Run("从配置构造", func(t *testing.T) {
		cfg := config.LoggerConfig{
			ServiceName: "phosphor-log-manager",
			Outputs: []config.OutputConfig{
				{Type: config.Journal, Level: "notice", Enabled: true},
				{Type: config.Stdout, Enabled: false},
			},
		}
		l, err := NewLogger(cfg, factory, WithMetrics(testMetrics()))
		require.NoError(t, err)
		require.Len(t, l.outputs, 1)
		assert.Equal(t, NoticeLevel, l.outputs[0].MinSeverity)
		assert.Equal(t, "phosphor-log-manager", l.Service())
		assert.Nil(t, l.mirror)

		l.Log(InfoLevel, "filtered")
		l.Log(WarningLevel, "kept")
		assert.Equal(t, 1, mem.count())

		require.NoError(t, l.Sync())
		require.NoError(t, l.Close())
		assert.Equal(t, 1, mem.closed)
	})

	t.Run("没有启用的输出", func(t *testing.T) {
		_, err := NewLogger(config.LoggerConfig{}, factory)
		assert.Error(t, err)
	})

	t.Run("工厂失败", func(t *testing.T) {
		cfg := config.LoggerConfig{Outputs: []config.OutputConfig{
			{Type: config.Syslog, Enabled: true, Syslog: &config.SyslogConfig{Address: "127.0.0.1:1", Tag: "t"}},
		}}
		_, err := NewLogger(cfg, factory)
		assert.ErrorContains(t, err, "dial failed")
	})

	t.Run("配置非法", func(t *testing.T) {
		cfg := config.LoggerConfig{Outputs: []config.OutputConfig{{Type: "kafka", Enabled: true}}}
		_, err := NewLogger(cfg, factory)
		assert.ErrorIs(t, err, config.ErrConfigInvalid)
	})
}

func TestGlobalLogger(t *testing.T) {
	mem := &memTransport{}
	l, _ := newTestLogger(t, Output{Name: "mem", MinSeverity: DebugLevel, Transport: mem})

	restore := ReplaceGlobals(l)
	assert.Same(t, l, L())
	L().Log(InfoLevel, "global")
	assert.Equal(t, 1, mem.count())

	restore()
	assert.NotSame(t, l, L())
	assert.NotNil(t, L())
}

func TestInvalidReason(t *testing.T) {
	_, err := Walk(1)
	assert.Equal(t, "missing_header", InvalidReason(err))
	_, err = Walk("A", Uint("B", uint(1)))
	assert.Equal(t, "nesting", InvalidReason(err))
	_, err = Walk("A", struct{}{})
	assert.Equal(t, "unsupported_type", InvalidReason(err))
	_, err = Walk("A", flags.Str, 1)
	assert.Equal(t, "flags", InvalidReason(err))
	assert.Equal(t, "other", InvalidReason(errors.New("x")))
}
