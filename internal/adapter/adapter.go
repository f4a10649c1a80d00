package adapter

import (
	"errors"
	"fmt"

	"github.com/iuboy/bmclog/config"
	"github.com/iuboy/bmclog/core"
)

func init() {
	core.SetDefaultFactory(CreateTransport)
}

// CreateTransport 根据输出配置创建传输层
func CreateTransport(out config.OutputConfig) (core.Transport, error) {
	if !out.Enabled {
		return nil, fmt.Errorf("输出类型已被禁用: %s", out.Type)
	}

	switch out.Type {
	case config.Journal:
		cfg := config.JournalConfig{}
		if out.Journal != nil {
			cfg = *out.Journal
		}
		return newJournalTransport(cfg)
	case config.Stdout:
		return newStdoutAdapter()
	case config.File:
		if out.File == nil {
			return nil, errors.New("文件配置缺失")
		}
		return newFileAdapter(*out.File)
	case config.Syslog:
		if out.Syslog == nil {
			return nil, errors.New("Syslog配置缺失")
		}
		a, err := newSyslogAdapter(*out.Syslog)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("不支持的输出类型: %s", out.Type)
	}
}
