package core

import (
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// Mirror 把记录渲染成一行文本写到控制台，只是旁路，失败不影响记录
type Mirror struct {
	format string
	out    zapcore.WriteSyncer
	mu     sync.Mutex
}

func NewMirror(format string, out zapcore.WriteSyncer) *Mirror {
	return &Mirror{format: format, out: out}
}

// Render 展开行模板：
//
//	%% 百分号  %f 函数名  %F 文件名  %l 数值级别  %L 行号  %m 替换后的消息
//
// 未知的 %x 原样输出，结尾落单的 % 也原样输出。
func Render(format string, r Record) string {
	var b strings.Builder
	b.Grow(len(format) + len(r.Message))
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			continue
		}
		i++
		switch format[i] {
		case '%':
			b.WriteByte('%')
		case 'f':
			b.WriteString(r.Location.Function)
		case 'F':
			b.WriteString(r.Location.File)
		case 'l':
			b.WriteString(strconv.Itoa(int(r.Severity)))
		case 'L':
			b.WriteString(strconv.Itoa(r.Location.Line))
		case 'm':
			b.WriteString(r.Message)
		default:
			b.WriteByte('%')
			b.WriteByte(format[i])
		}
	}
	return b.String()
}

func (m *Mirror) Write(r Record) {
	line := Render(m.format, r) + "\n"
	m.mu.Lock()
	_, _ = m.out.Write([]byte(line))
	m.mu.Unlock()
}

func (m *Mirror) Sync() error {
	return m.out.Sync()
}
