package core

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/iuboy/bmclog/config"
	"github.com/iuboy/bmclog/flags"
	"github.com/iuboy/bmclog/metrics"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output 一个带最低级别过滤的传输目标
type Output struct {
	Name        string
	MinSeverity Severity
	Transport   Transport
}

// Logger 把日志调用组装成记录并分发到各个输出。
// 构造后配置不再变化，可并发使用。
type Logger struct {
	service string
	outputs []Output
	mirror  *Mirror
	metrics *metrics.Metrics
	diag    func() *zap.Logger
}

type Option func(*Logger)

// WithMetrics 指定计数器，nil 表示不统计
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Logger) { l.metrics = m }
}

// WithDiagnostics 指定库自身诊断信息使用的 zap 日志器，默认 zap.L()
func WithDiagnostics(z *zap.Logger) Option {
	return func(l *Logger) { l.diag = func() *zap.Logger { return z } }
}

// WithMirror 启用控制台镜像并写到 out
func WithMirror(format string, out zapcore.WriteSyncer) Option {
	return func(l *Logger) {
		if format == "" {
			format = config.DefaultConsoleFormat
		}
		l.mirror = NewMirror(format, out)
	}
}

// New 直接由输出列表构造日志器
func New(service string, outputs []Output, opts ...Option) *Logger {
	l := &Logger{
		service: service,
		outputs: outputs,
		metrics: metrics.Default(),
		diag:    zap.L,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLogger 创建新日志器
func NewLogger(cfg config.LoggerConfig, factory TransportFactory, opts ...Option) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	outputs, err := buildOutputs(cfg, factory)
	if err != nil {
		return nil, err
	}

	if cfg.Console.Enabled {
		opts = append([]Option{WithMirror(cfg.Console.Format, zapcore.Lock(zapcore.AddSync(os.Stderr)))}, opts...)
	}
	return New(cfg.ServiceName, outputs, opts...), nil
}

func buildOutputs(cfg config.LoggerConfig, factory TransportFactory) ([]Output, error) {
	var outputs []Output

	for _, out := range cfg.Outputs {
		if !out.Enabled {
			continue
		}

		minSev, err := ParseSeverity(out.Level)
		if err != nil {
			closeOutputs(outputs)
			return nil, fmt.Errorf("输出 %s 级别无效: %w", out.Type, err)
		}

		t, err := factory(out)
		if err != nil {
			closeOutputs(outputs)
			return nil, fmt.Errorf("创建传输失败: %w", err)
		}
		outputs = append(outputs, Output{Name: string(out.Type), MinSeverity: minSev, Transport: t})
	}

	if len(outputs) == 0 {
		return nil, errors.New("没有启用的日志输出")
	}
	return outputs, nil
}

func closeOutputs(outputs []Output) {
	for _, o := range outputs {
		_ = o.Transport.Close()
	}
}

// Enabled 判断该级别的记录是否会被任一输出接收
func (l *Logger) Enabled(sev Severity) bool {
	if l.mirror != nil {
		return true
	}
	for _, o := range l.outputs {
		if sev <= o.MinSeverity {
			return true
		}
	}
	return false
}

// Log 发出一条记录，调用位置取 Log 的调用者
func (l *Logger) Log(sev Severity, msg string, fields ...Field) {
	l.LogAt(Caller(1), sev, msg, fields...)
}

// LogAt 使用调用方提供的源码位置发出一条记录
func (l *Logger) LogAt(loc Location, sev Severity, msg string, fields ...Field) {
	_ = l.Emit(loc, sev, msg, fields...)
}

// Emit 与 LogAt 相同，但返回传输层的错误
func (l *Logger) Emit(loc Location, sev Severity, msg string, fields ...Field) error {
	rec, dropped := NewRecord(sev, loc, msg, fields)
	if len(dropped) > 0 {
		l.metrics.DroppedFields(len(dropped))
		l.report(func(z *zap.Logger) {
			z.Warn("丢弃非法日志字段",
				zap.String("message", msg),
				zap.String("caller", loc.String()),
				zap.Errors("errors", dropped))
		})
	}
	return l.LogRecord(rec)
}

// Logw 接受 "NAME", [flags,] value 形式的平铺参数。
// 参数非法时仍然发出已解析的前缀，并通过诊断日志报告。
func (l *Logger) Logw(sev Severity, msg string, args ...any) {
	l.LogwAt(Caller(1), sev, msg, args...)
}

func (l *Logger) LogwAt(loc Location, sev Severity, msg string, args ...any) {
	fields, err := Walk(args...)
	if err != nil {
		reason := InvalidReason(err)
		l.metrics.InvalidCall(reason)
		l.report(func(z *zap.Logger) {
			z.Warn("日志参数非法",
				zap.String("message", msg),
				zap.String("caller", loc.String()),
				zap.String("reason", reason),
				zap.Error(err))
		})
	}
	l.LogAt(loc, sev, msg, fields...)
}

// LogRecord 把已构造的记录写到所有接收该级别的输出，
// 返回各输出错误的合并结果。
func (l *Logger) LogRecord(rec Record) error {
	err := l.write(rec)
	if err != nil {
		l.report(func(z *zap.Logger) {
			z.Warn("写入日志记录失败", zap.String("caller", rec.Location.String()), zap.Error(err))
		})
	}
	return err
}

// write 与 LogRecord 相同但不输出诊断。
// zap 桥接走这条路径，诊断日志器指回本日志器时不会形成递归。
func (l *Logger) write(rec Record) error {
	l.metrics.Record(rec.Severity.String())
	if l.mirror != nil {
		l.mirror.Write(rec)
	}

	entries := rec.Entries(l.service)
	var errs []error
	for _, o := range l.outputs {
		if rec.Severity > o.MinSeverity {
			continue
		}
		if err := o.Transport.WriteRecord(entries); err != nil {
			l.metrics.TransportError(o.Name)
			errs = append(errs, fmt.Errorf("%s: %w", o.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (l *Logger) report(fn func(*zap.Logger)) {
	fn(l.diag())
}

// Metrics 返回日志器使用的计数器，可能为 nil
func (l *Logger) Metrics() *metrics.Metrics { return l.metrics }

// Service 返回 SYSLOG_IDENTIFIER
func (l *Logger) Service() string { return l.service }

func (l *Logger) Sync() error {
	var errs []error
	if l.mirror != nil {
		// stderr 在部分平台上不支持 fsync
		_ = l.mirror.Sync()
	}
	for _, o := range l.outputs {
		if err := o.Transport.Sync(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (l *Logger) Close() error {
	var errs []error
	for _, o := range l.outputs {
		if err := o.Transport.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Name, err))
		}
	}
	return errors.Join(errs...)
}

// InvalidReason 把参数错误归类为指标标签
func InvalidReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingHeader):
		return "missing_header"
	case errors.Is(err, ErrMissingValue):
		return "missing_value"
	case errors.Is(err, ErrAmbiguousNesting):
		return "nesting"
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, ErrInvalidHeader):
		return "header"
	case errors.Is(err, flags.ErrProhibited), errors.Is(err, flags.ErrConflict), errors.Is(err, flags.ErrUnknown):
		return "flags"
	default:
		return "other"
	}
}

var (
	global         atomic.Pointer[Logger]
	defaultOnce    sync.Once
	defaultLogger  *Logger
	defaultFactory atomic.Pointer[TransportFactory]
)

// SetDefaultFactory 注册默认日志器使用的传输工厂
func SetDefaultFactory(f TransportFactory) {
	defaultFactory.Store(&f)
}

// L 返回全局日志器。未调用 ReplaceGlobals 时按环境变量构造一个
// journal 日志器，构造失败时退化为只有控制台镜像，不会返回 nil。
func L() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	defaultOnce.Do(func() { defaultLogger = newDefaultLogger() })
	return defaultLogger
}

// ReplaceGlobals 替换全局日志器，返回恢复原值的函数
func ReplaceGlobals(l *Logger) func() {
	prev := global.Swap(l)
	return func() { global.Store(prev) }
}

func newDefaultLogger() *Logger {
	cfg, err := config.Load()
	if err != nil {
		e := config.Environment{JournalSocket: config.DefaultJournalSocket, MinSeverity: config.DefaultLevel}
		cfg, _ = config.FromEnvironment(e, config.StderrIsTerminal())
	}

	if f := defaultFactory.Load(); f != nil {
		if l, err := NewLogger(cfg, *f); err == nil {
			return l
		}
	}

	var opts []Option
	if cfg.Console.Enabled {
		opts = append(opts, WithMirror(cfg.Console.Format, zapcore.Lock(zapcore.AddSync(os.Stderr))))
	}
	return New(cfg.ServiceName, []Output{{Name: "nop", MinSeverity: DebugLevel, Transport: NopTransport()}}, opts...)
}
