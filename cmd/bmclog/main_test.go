package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/iuboy/bmclog/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{"空参数", nil, []string{}, false},
		{"多个字段", []string{"FAN=fan0", "RPM=0"}, []string{"FAN=fan0", "RPM=0"}, false},
		{"值中包含等号", []string{"EXPR=a=b"}, []string{"EXPR=a=b"}, false},
		{"空值", []string{"EMPTY="}, []string{"EMPTY="}, false},
		{"缺少等号", []string{"FAN"}, nil, true},
		{"非法字段名", []string{"fan=1"}, nil, true},
		{"保留字段名", []string{"MESSAGE=x"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := parseFields(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			got := make([]string, 0, len(fields))
			for _, f := range fields {
				got = append(got, f.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "records.export")
	cfgPath := filepath.Join(dir, "bmclog.json")

	cfg := config.LoggerConfig{
		ServiceName: "bmclog-cli",
		Console:     config.ConsoleConfig{Disable: true},
		Outputs: []config.OutputConfig{{
			Type:    config.File,
			Enabled: true,
			File:    &config.FileConfig{Path: logPath},
		}},
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgPath, data, 0o600))

	t.Run("写入记录", func(t *testing.T) {
		var stderr bytes.Buffer
		code := run([]string{"-config", cfgPath, "-p", "warning", "-m", "Fan {FAN} stalled", "FAN=fan0"}, &stderr)
		require.Equal(t, 0, code, stderr.String())

		content, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "MESSAGE=Fan fan0 stalled\n")
		assert.Contains(t, string(content), "PRIORITY=4\n")
		assert.Contains(t, string(content), "SYSLOG_IDENTIFIER=bmclog-cli\n")
	})

	t.Run("缺少消息", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 2, run([]string{"-config", cfgPath}, &stderr))
		assert.Contains(t, stderr.String(), "usage")
	})

	t.Run("非法级别", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 2, run([]string{"-p", "loud", "-m", "x"}, &stderr))
	})

	t.Run("配置文件不存在", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 1, run([]string{"-config", filepath.Join(dir, "missing.json"), "-m", "x"}, &stderr))
	})
}
