package config

import "time"

const (
	DefaultRetryDelay    = 500 * time.Millisecond
	DefaultJournalSocket = "/run/systemd/journal/socket"
	DefaultConsoleFormat = "<%l> %m"
	DefaultLevel         = "debug"
	DefaultFileMode      = 0o640
)

// OutputType 定义支持的输出类型
type OutputType string

const (
	Journal OutputType = "journal"
	Syslog  OutputType = "syslog"
	Stdout  OutputType = "stdout"
	File    OutputType = "file"
)

// OutputConfig 定义日志输出配置
type OutputConfig struct {
	Type    OutputType     `json:"type" validate:"required"`     // 输出类型
	Level   string         `json:"level"`                        // 最低严重级别（名称或 0-7）
	Enabled bool           `json:"enabled"`                      // 是否启用
	Journal *JournalConfig `json:"journal" validate:"omitempty"` // journal 配置
	File    *FileConfig    `json:"file" validate:"omitempty"`    // 文件配置
	Syslog  *SyslogConfig  `json:"syslog" validate:"omitempty"`  // Syslog配置

	// Metadata 用于测试等场景的元信息（不参与验证）
	Metadata map[string]string `json:"metadata,omitempty"` // 元信息
}

// JournalConfig 定义 journald 原生协议配置
type JournalConfig struct {
	Socket string `json:"socket"` // unix 数据报套接字路径
}

// FileConfig 定义文件日志配置，记录以 journal export 格式追加写入
type FileConfig struct {
	Path     string `json:"path" validate:"required"` // 文件路径
	LockPath string `json:"lockPath"`                 // 跨进程锁文件，默认 Path + ".lock"
	Mode     uint32 `json:"mode"`                     // 创建文件时的权限
}

// SyslogConfig 定义Syslog配置
type SyslogConfig struct {
	Network       string        `json:"network" validate:"oneof=tcp udp"` // 网络协议
	Address       string        `json:"address" validate:"required"`      // 服务器地址
	Tag           string        `json:"tag" validate:"required"`          // 应用标识
	Facility      int           `json:"facility" validate:"min=0,max=23"` // 系统设施
	Reconnect     bool          `json:"reconnect"`                        // 是否自动重连
	RetryDelay    time.Duration `json:"retryDelay"`                       // 重试延迟
	TLSSkipVerify bool          `json:"tlsSkipVerify"`                    // 跳过TLS验证
	StaticHost    string        `json:"staticHost"`                       // 静态主机名
	Secure        bool          `json:"secure"`                           // 使用TLS
	RFC5424       bool          `json:"rfc5424"`                          // 使用RFC5424格式
	BufferSize    int           `json:"bufferSize"`                       // 缓冲区大小
	TimeZone      string        `json:"timeZone"`                         // 时区
}

// ConsoleConfig 控制是否把格式化的一行镜像到 stderr。
// Enabled 由 Resolve 计算，之后不再变化。
type ConsoleConfig struct {
	Force   bool   `json:"force"`   // 即使 stderr 不是终端也输出
	Disable bool   `json:"disable"` // 完全关闭镜像
	Format  string `json:"format"`  // 行模板，支持 %% %f %F %l %L %m
	Enabled bool   `json:"-"`
}

// LoggerConfig 定义核心日志配置
type LoggerConfig struct {
	ServiceName string         `json:"serviceName"`             // SYSLOG_IDENTIFIER，空则不输出
	Console     ConsoleConfig  `json:"console"`                 // 控制台镜像
	Outputs     []OutputConfig `json:"outputs" validate:"dive"` // 输出配置
}
