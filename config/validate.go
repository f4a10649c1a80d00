package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var ErrConfigInvalid = errors.New("invalid logger configuration")

// 与 core.ParseSeverity 接受的写法一致
var levelNames = []string{
	"emergency", "emerg", "panic",
	"alert",
	"critical", "crit",
	"error", "err",
	"warning", "warn",
	"notice",
	"info", "informational",
	"debug",
}

// ValidLevel 判断严重级别文本是否可被解析
func ValidLevel(level string) bool {
	l := strings.ToLower(strings.TrimSpace(level))
	if n, err := strconv.Atoi(l); err == nil {
		return n >= 0 && n <= 7
	}
	for _, name := range levelNames {
		if l == name {
			return true
		}
	}
	return false
}

func (t OutputType) Valid() bool {
	switch t {
	case Journal, Syslog, Stdout, File:
		return true
	default:
		return false
	}
}

// Validate 验证输出配置
func (oc *OutputConfig) Validate() error {
	if !oc.Type.Valid() {
		return fmt.Errorf("%w: invalid output type: %s", ErrConfigInvalid, oc.Type)
	}
	if oc.Level == "" {
		oc.Level = DefaultLevel
	}
	if !ValidLevel(oc.Level) {
		return fmt.Errorf("%w: invalid log level: %s", ErrConfigInvalid, oc.Level)
	}

	switch oc.Type {
	case Journal:
		if oc.Journal == nil {
			oc.Journal = &JournalConfig{}
		}
		return oc.Journal.Validate()
	case File:
		if oc.File == nil {
			return fmt.Errorf("%w: file output requires file configuration", ErrConfigInvalid)
		}
		return oc.File.Validate()
	case Syslog:
		if oc.Syslog == nil {
			return fmt.Errorf("%w: syslog output requires syslog configuration", ErrConfigInvalid)
		}
		return oc.Syslog.Validate()
	}
	return nil
}

// Validate 验证 journal 配置
func (jc *JournalConfig) Validate() error {
	if jc.Socket == "" {
		jc.Socket = DefaultJournalSocket
	}
	if !filepath.IsAbs(jc.Socket) {
		return fmt.Errorf("%w: journal socket must be an absolute path: %s", ErrConfigInvalid, jc.Socket)
	}
	return nil
}

// Validate 验证文件配置
func (fc *FileConfig) Validate() error {
	if fc.Path == "" {
		return fmt.Errorf("%w: file path is required", ErrConfigInvalid)
	}
	if !filepath.IsAbs(fc.Path) {
		return fmt.Errorf("%w: file path must be an absolute path: %s", ErrConfigInvalid, fc.Path)
	}
	if fc.LockPath == "" {
		fc.LockPath = fc.Path + ".lock"
	}
	if fc.Mode == 0 {
		fc.Mode = DefaultFileMode
	}
	return nil
}

// Validate 验证Syslog配置
func (sc *SyslogConfig) Validate() error {
	if sc.Network == "" {
		sc.Network = "tcp"
	}
	if sc.Network != "tcp" && sc.Network != "udp" {
		return fmt.Errorf("%w: unsupported syslog network: %s", ErrConfigInvalid, sc.Network)
	}
	if sc.Address == "" {
		return errors.New("syslog address is required")
	}
	if sc.Tag == "" {
		return errors.New("syslog tag is required")
	}
	if sc.RetryDelay == 0 {
		sc.RetryDelay = DefaultRetryDelay
	}
	if sc.Facility < 0 || sc.Facility > 23 {
		return fmt.Errorf("invalid syslog facility: %d, must be 0-23", sc.Facility)
	}
	if sc.TimeZone != "" {
		if _, err := time.LoadLocation(sc.TimeZone); err != nil {
			return fmt.Errorf("invalid time zone: %s", sc.TimeZone)
		}
	}
	return nil
}

// ApplyDefaults 设置控制台镜像默认值
func (cc *ConsoleConfig) ApplyDefaults() *ConsoleConfig {
	if cc.Format == "" {
		cc.Format = DefaultConsoleFormat
	}
	return cc
}

// Resolve 根据 stderr 是否为终端决定是否启用镜像
func (cc *ConsoleConfig) Resolve(stderrIsTerminal bool) {
	cc.ApplyDefaults()
	cc.Enabled = !cc.Disable && (cc.Force || stderrIsTerminal)
}

// Validate 验证日志配置
func (lc *LoggerConfig) Validate() error {
	for i := range lc.Outputs {
		if err := lc.Outputs[i].Validate(); err != nil {
			return fmt.Errorf("output %d validation failed: %w", i, err)
		}
	}
	lc.Console.ApplyDefaults()
	return nil
}

// ApplyDefaults 没有任何输出时使用默认 journal 套接字
func (lc *LoggerConfig) ApplyDefaults() *LoggerConfig {
	if len(lc.Outputs) == 0 {
		lc.Outputs = []OutputConfig{DefaultJournalOutput(DefaultJournalSocket, DefaultLevel)}
	}
	lc.Console.ApplyDefaults()
	return lc
}

// DefaultJournalOutput 返回一个启用的 journal 输出
func DefaultJournalOutput(socket, level string) OutputConfig {
	return OutputConfig{
		Type:    Journal,
		Level:   level,
		Enabled: true,
		Journal: &JournalConfig{Socket: socket},
	}
}
