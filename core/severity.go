package core

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Severity 与 syslog 优先级数值一致，数值越小越严重
type Severity int

const (
	EmergencyLevel Severity = iota
	AlertLevel
	CriticalLevel
	ErrorLevel
	WarningLevel
	NoticeLevel
	InfoLevel
	DebugLevel
)

var severityNames = [...]string{
	EmergencyLevel: "emergency",
	AlertLevel:     "alert",
	CriticalLevel:  "critical",
	ErrorLevel:     "error",
	WarningLevel:   "warning",
	NoticeLevel:    "notice",
	InfoLevel:      "info",
	DebugLevel:     "debug",
}

func (s Severity) Valid() bool {
	return s >= EmergencyLevel && s <= DebugLevel
}

func (s Severity) String() string {
	if s.Valid() {
		return severityNames[s]
	}
	return "severity(" + strconv.Itoa(int(s)) + ")"
}

// ParseSeverity 接受名称（含常见别名）或 0-7 的数字
func ParseSeverity(text string) (Severity, error) {
	t := strings.ToLower(strings.TrimSpace(text))
	if n, err := strconv.Atoi(t); err == nil {
		if s := Severity(n); s.Valid() {
			return s, nil
		}
		return 0, fmt.Errorf("severity out of range: %d", n)
	}
	switch t {
	case "emerg", "panic":
		return EmergencyLevel, nil
	case "crit":
		return CriticalLevel, nil
	case "err":
		return ErrorLevel, nil
	case "warn":
		return WarningLevel, nil
	case "informational":
		return InfoLevel, nil
	}
	for i, name := range severityNames {
		if name == t {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown severity: %q", text)
}

// ZapLevel 把 severity 映射到 zap 的级别
func (s Severity) ZapLevel() zapcore.Level {
	switch s {
	case EmergencyLevel:
		return zapcore.FatalLevel
	case AlertLevel:
		return zapcore.PanicLevel
	case CriticalLevel:
		return zapcore.DPanicLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case WarningLevel:
		return zapcore.WarnLevel
	case NoticeLevel, InfoLevel:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// SeverityFromZap 是 ZapLevel 的逆映射，Notice 无法区分时归为 Info
func SeverityFromZap(l zapcore.Level) Severity {
	switch l {
	case zapcore.FatalLevel:
		return EmergencyLevel
	case zapcore.PanicLevel:
		return AlertLevel
	case zapcore.DPanicLevel:
		return CriticalLevel
	case zapcore.ErrorLevel:
		return ErrorLevel
	case zapcore.WarnLevel:
		return WarningLevel
	case zapcore.InfoLevel:
		return InfoLevel
	default:
		return DebugLevel
	}
}
