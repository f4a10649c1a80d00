package adapter

import (
	"io"
	"os"
	"time"

	"github.com/iuboy/bmclog/core"
	"go.uber.org/zap/zapcore"
)

// stdoutAdapter 以 journal export 格式写到标准输出，
// 可以直接交给 systemd-journal-remote 之类的工具导入
type stdoutAdapter struct {
	out zapcore.WriteSyncer
	now func() time.Time
}

func newStdoutAdapter() (core.Transport, error) {
	if os.Stdout == nil {
		return nil, os.ErrInvalid
	}
	return newWriterAdapter(os.Stdout), nil
}

func newWriterAdapter(w io.Writer) *stdoutAdapter {
	return &stdoutAdapter{out: zapcore.Lock(zapcore.AddSync(w)), now: time.Now}
}

func (s *stdoutAdapter) WriteRecord(entries []core.Entry) error {
	_, err := s.out.Write(encodeExport(entries, s.now()))
	return err
}

func (s *stdoutAdapter) Sync() error {
	return s.out.Sync()
}

// Close 不关闭进程的标准输出
func (s *stdoutAdapter) Close() error {
	return nil
}
