// Command bmclog 从命令行写入一条结构化日志记录：
//
//	bmclog -p warning -m "Fan {FAN} stalled" FAN=fan0 RPM=0
//
// 配置来自 LG2_* 环境变量（可写在当前目录的 .env 中）或 -config 指定的 JSON 文件。
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iuboy/bmclog/config"
	"github.com/iuboy/bmclog/core"
	"github.com/iuboy/bmclog/internal/adapter"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fset := flag.NewFlagSet("bmclog", flag.ContinueOnError)
	fset.SetOutput(stderr)
	var (
		priority = fset.String("p", "info", "严重级别，名称或 0-7")
		message  = fset.String("m", "", "消息模板，{NAME} 会被同名字段替换")
		cfgPath  = fset.String("config", "", "JSON 配置文件，为空时读取 LG2_* 环境变量")
	)
	fset.Usage = func() {
		fmt.Fprintln(stderr, "usage: bmclog [-config file] [-p severity] -m message [KEY=VALUE ...]")
		fset.PrintDefaults()
	}
	if err := fset.Parse(args); err != nil {
		return 2
	}
	if *message == "" {
		fset.Usage()
		return 2
	}

	sev, err := core.ParseSeverity(*priority)
	if err != nil {
		fmt.Fprintln(stderr, "bmclog:", err)
		return 2
	}
	fields, err := parseFields(fset.Args())
	if err != nil {
		fmt.Fprintln(stderr, "bmclog:", err)
		return 2
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(stderr, "bmclog: 读取 .env 失败:", err)
		return 1
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, "bmclog:", err)
		return 1
	}

	logger, err := core.NewLogger(cfg, adapter.CreateTransport)
	if err != nil {
		fmt.Fprintln(stderr, "bmclog:", err)
		return 1
	}
	defer logger.Close()

	if err := logger.Emit(core.Caller(0), sev, *message, fields...); err != nil {
		fmt.Fprintln(stderr, "bmclog:", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (config.LoggerConfig, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// parseFields 解析 KEY=VALUE 参数，值按字符串记录
func parseFields(args []string) ([]core.Field, error) {
	fields := make([]core.Field, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("参数 %q 不是 KEY=VALUE 形式", arg)
		}
		if err := core.ValidateHeader(key); err != nil {
			return nil, err
		}
		fields = append(fields, core.String(key, value))
	}
	return fields, nil
}
