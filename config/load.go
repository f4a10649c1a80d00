package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/mattn/go-isatty"
)

// Environment 进程环境中的 LG2_* 变量
type Environment struct {
	ForceStderr   string `env:"LG2_FORCE_STDERR"`
	Format        string `env:"LG2_FORMAT"`
	Service       string `env:"LG2_SERVICE"`
	JournalSocket string `env:"LG2_JOURNAL_SOCKET" envDefault:"/run/systemd/journal/socket"`
	MinSeverity   string `env:"LG2_MIN_SEVERITY" envDefault:"debug"`
}

// ReadEnvironment 解析 LG2_* 环境变量
func ReadEnvironment() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return e, nil
}

// StderrIsTerminal 判断 stderr 是否连接到终端
func StderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// FromEnvironment 由环境变量构造配置：单个 journal 输出加控制台镜像
func FromEnvironment(e Environment, stderrIsTerminal bool) (LoggerConfig, error) {
	cfg := LoggerConfig{
		ServiceName: e.Service,
		Console: ConsoleConfig{
			Force:  e.ForceStderr != "",
			Format: e.Format,
		},
		Outputs: []OutputConfig{DefaultJournalOutput(e.JournalSocket, e.MinSeverity)},
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	cfg.Console.Resolve(stderrIsTerminal)
	return cfg, nil
}

// Load 读取环境变量并解析控制台镜像开关
func Load() (LoggerConfig, error) {
	e, err := ReadEnvironment()
	if err != nil {
		return LoggerConfig{}, err
	}
	return FromEnvironment(e, StderrIsTerminal())
}

// LoadFile 读取 JSON 配置文件，LG2_FORCE_STDERR 与 LG2_FORMAT 仍然生效
func LoadFile(path string) (LoggerConfig, error) {
	var cfg LoggerConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrConfigInvalid, path, err)
	}

	e, err := ReadEnvironment()
	if err != nil {
		return cfg, err
	}
	if e.ForceStderr != "" {
		cfg.Console.Force = true
	}
	if e.Format != "" {
		cfg.Console.Format = e.Format
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = e.Service
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	cfg.Console.Resolve(StderrIsTerminal())
	return cfg, nil
}
