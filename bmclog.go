// Package bmclog 是面向 BMC 固件的结构化日志库。
// 每次调用生成一条原子写入 journal 的记录：消息模板中的 {NAME} 会被同名字段替换，
// 字段按调用顺序附在记录后面。
//
// 示例：
//
//	bmclog.Info("Door {STATE}", bmclog.String("STATE", "open"))
//	bmclog.Warningw("Fan {FAN} below {RPM}", "FAN", "fan0", "RPM", bmclog.Dec|bmclog.Field16, uint16(900))
//
// 未调用 Init 时按环境变量（LG2_*）构造一个写入本机 journal 的日志器。
// 使用 *w 系列函数时请配合 lg2check 在构建阶段检查参数形状。
package bmclog

import (
	"sync"

	"github.com/iuboy/bmclog/config"
	"github.com/iuboy/bmclog/core"
	"github.com/iuboy/bmclog/flags"
	"github.com/iuboy/bmclog/internal/adapter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	LoggerConfig  = config.LoggerConfig
	OutputConfig  = config.OutputConfig
	ConsoleConfig = config.ConsoleConfig
	JournalConfig = config.JournalConfig
	FileConfig    = config.FileConfig
	SyslogConfig  = config.SyslogConfig
	OutputType    = config.OutputType

	Severity   = core.Severity
	Field      = core.Field
	Location   = core.Location
	ObjectPath = core.ObjectPath
	Flags      = flags.Set
)

const (
	Journal = config.Journal
	Syslog  = config.Syslog
	Stdout  = config.Stdout
	File    = config.File

	EmergencyLevel = core.EmergencyLevel
	AlertLevel     = core.AlertLevel
	CriticalLevel  = core.CriticalLevel
	ErrorLevel     = core.ErrorLevel
	WarningLevel   = core.WarningLevel
	NoticeLevel    = core.NoticeLevel
	InfoLevel      = core.InfoLevel
	DebugLevel     = core.DebugLevel

	Bin     = flags.Bin
	Dec     = flags.Dec
	Hex     = flags.Hex
	Field8  = flags.Field8
	Field16 = flags.Field16
	Field32 = flags.Field32
	Field64 = flags.Field64
)

var initMu sync.Mutex

// Init 按配置初始化全局日志器，替换并关闭之前由 Init 创建的日志器
func Init(cfg config.LoggerConfig) error {
	logger, err := core.NewLogger(cfg, adapter.CreateTransport)
	if err != nil {
		return err
	}
	SetLogger(logger)
	return nil
}

// InitFromEnv 按 LG2_* 环境变量初始化
func InitFromEnv() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return Init(cfg)
}

var owned *core.Logger

// SetLogger 设置全局日志器
func SetLogger(logger *core.Logger) {
	initMu.Lock()
	defer initMu.Unlock()
	core.ReplaceGlobals(logger)
	if owned != nil && owned != logger {
		_ = owned.Close()
	}
	owned = logger
}

// Logger 获取全局日志器
func Logger() *core.Logger { return core.L() }

// Sync 刷新所有输出，应在程序退出前调用
func Sync() error { return core.L().Sync() }

// Close 关闭由 Init/SetLogger 设置的日志器，之后的调用回到默认日志器
func Close() error {
	initMu.Lock()
	defer initMu.Unlock()
	if owned == nil {
		return nil
	}
	core.ReplaceGlobals(nil)
	err := owned.Close()
	owned = nil
	return err
}

// ------------------------------------------------------------------
// 字段构造
// ------------------------------------------------------------------

func Uint[T core.Unsigned](name string, v T) Field { return core.Uint(name, v) }

func UintF[T core.Unsigned](name string, f Flags, v T) Field { return core.UintF(name, f, v) }

func Int[T core.Signed](name string, v T) Field { return core.Int(name, v) }

func IntF[T core.Signed](name string, f Flags, v T) Field { return core.IntF(name, f, v) }

func Bool[T ~bool](name string, v T) Field { return core.Bool(name, v) }

func Float64[T core.Float](name string, v T) Field { return core.Float64(name, v) }

func String[T core.Text](name string, v T) Field { return core.String(name, v) }

func Path(name string, p ObjectPath) Field { return core.Path(name, p) }

func Pointer[T any](name string, p *T) Field { return core.Pointer(name, p) }

func Err(name string, err error) Field { return core.Err(name, err) }

func Enum[T core.Enumeration](name string, v T) Field { return core.Enum(name, v) }

// ------------------------------------------------------------------
// 日志 API
// ------------------------------------------------------------------

func Log(sev Severity, msg string, fields ...Field) {
	core.L().LogAt(core.Caller(1), sev, msg, fields...)
}

// LogAt 使用调用方给出的源码位置
func LogAt(loc Location, sev Severity, msg string, fields ...Field) {
	core.L().LogAt(loc, sev, msg, fields...)
}

func Emergency(msg string, fields ...Field) {
	core.L().LogAt(core.Caller(1), core.EmergencyLevel, msg, fields...)
}
func Alert(msg string, fields ...Field) {
	core.L().LogAt(core.Caller(1), core.AlertLevel, msg, fields...)
}
func Critical(msg string, fields ...Field) {
	core.L().LogAt(core.Caller(1), core.CriticalLevel, msg, fields...)
}
func Error(msg string, fields ...Field) {
	core.L().LogAt(core.Caller(1), core.ErrorLevel, msg, fields...)
}
func Warning(msg string, fields ...Field) {
	core.L().LogAt(core.Caller(1), core.WarningLevel, msg, fields...)
}
func Notice(msg string, fields ...Field) {
	core.L().LogAt(core.Caller(1), core.NoticeLevel, msg, fields...)
}
func Info(msg string, fields ...Field) {
	core.L().LogAt(core.Caller(1), core.InfoLevel, msg, fields...)
}
func Debug(msg string, fields ...Field) {
	core.L().LogAt(core.Caller(1), core.DebugLevel, msg, fields...)
}

// ------------------------------------------------------------------
// 平铺参数 API："NAME", [flags,] value ...
// ------------------------------------------------------------------

func Logw(sev Severity, msg string, args ...any) {
	core.L().LogwAt(core.Caller(1), sev, msg, args...)
}

func Emergencyw(msg string, args ...any) {
	core.L().LogwAt(core.Caller(1), core.EmergencyLevel, msg, args...)
}
func Alertw(msg string, args ...any) {
	core.L().LogwAt(core.Caller(1), core.AlertLevel, msg, args...)
}
func Criticalw(msg string, args ...any) {
	core.L().LogwAt(core.Caller(1), core.CriticalLevel, msg, args...)
}
func Errorw(msg string, args ...any) {
	core.L().LogwAt(core.Caller(1), core.ErrorLevel, msg, args...)
}
func Warningw(msg string, args ...any) {
	core.L().LogwAt(core.Caller(1), core.WarningLevel, msg, args...)
}
func Noticew(msg string, args ...any) {
	core.L().LogwAt(core.Caller(1), core.NoticeLevel, msg, args...)
}
func Infow(msg string, args ...any) {
	core.L().LogwAt(core.Caller(1), core.InfoLevel, msg, args...)
}
func Debugw(msg string, args ...any) {
	core.L().LogwAt(core.Caller(1), core.DebugLevel, msg, args...)
}

// ------------------------------------------------------------------
// zap 桥接
// ------------------------------------------------------------------

// Zap 返回写入当前全局日志器的 *zap.Logger
func Zap(opts ...zap.Option) *zap.Logger {
	opts = append([]zap.Option{zap.AddCaller()}, opts...)
	return zap.New(core.NewZapCore(core.L(), zapcore.DebugLevel), opts...)
}

// Sugar 获取底层的 SugaredLogger
func Sugar() *zap.SugaredLogger { return Zap().Sugar() }

// RedirectZap 让 zap.L() 也写入 journal，返回恢复原值的函数
func RedirectZap() func() {
	return zap.ReplaceGlobals(Zap())
}
