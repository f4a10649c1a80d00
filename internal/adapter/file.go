package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/iuboy/bmclog/config"
	"github.com/iuboy/bmclog/core"
)

// fileAdapter 以 journal export 格式追加写入文件。
// 每条记录在文件锁内一次写完，多个进程共用一个文件时不会交错。
type fileAdapter struct {
	f      *os.File
	lock   *flock.Flock
	mu     sync.Mutex
	closed atomic.Bool
	now    func() time.Time
}

func newFileAdapter(cfg config.FileConfig) (core.Transport, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("文件路径不能为空")
	}
	if cfg.LockPath == "" {
		cfg.LockPath = cfg.Path + ".lock"
	}
	if cfg.Mode == 0 {
		cfg.Mode = config.DefaultFileMode
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(cfg.Path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, os.FileMode(cfg.Mode))
	if err != nil {
		return nil, fmt.Errorf("打开日志文件失败: %w", err)
	}

	return &fileAdapter{
		f:    f,
		lock: flock.New(cfg.LockPath),
		now:  time.Now,
	}, nil
}

func (f *fileAdapter) WriteRecord(entries []core.Entry) error {
	if f.closed.Load() {
		return os.ErrClosed
	}
	data := encodeExport(entries, f.now())

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("file lock failed: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	if _, err := f.f.Write(data); err != nil {
		return fmt.Errorf("file write failed: %w", err)
	}
	return nil
}

func (f *fileAdapter) Sync() error {
	if f.closed.Load() {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.Sync()
}

func (f *fileAdapter) Close() error {
	if f.closed.Swap(true) {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.f.Close(); err != nil {
		return fmt.Errorf("file close failed: %w", err)
	}
	return f.lock.Close()
}
