//go:build linux

package adapter

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/iuboy/bmclog/config"
	"github.com/iuboy/bmclog/core"
)

var ErrJournalUnavailable = errors.New("journal socket unavailable")

// journalTransport 通过 unix 数据报套接字写入 journald，
// 每条记录一个数据报，过大的记录改为传递临时文件描述符。
type journalTransport struct {
	addr   *net.UnixAddr
	mu     sync.Mutex
	conn   *net.UnixConn
	closed atomic.Bool
}

// newJournalTransport 不立即连接，首次写入时才创建套接字
func newJournalTransport(cfg config.JournalConfig) (core.Transport, error) {
	if cfg.Socket == "" {
		cfg.Socket = config.DefaultJournalSocket
	}
	return &journalTransport{
		addr: &net.UnixAddr{Name: cfg.Socket, Net: "unixgram"},
	}, nil
}

func (j *journalTransport) socket() (*net.UnixConn, error) {
	if j.conn != nil {
		return j.conn, nil
	}
	// 自动绑定的匿名地址，只用于发送
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Net: "unixgram"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJournalUnavailable, err)
	}
	j.conn = conn
	return conn, nil
}

func (j *journalTransport) WriteRecord(entries []core.Entry) error {
	if j.closed.Load() {
		return net.ErrClosed
	}
	data := encodeNative(entries)

	j.mu.Lock()
	defer j.mu.Unlock()

	conn, err := j.socket()
	if err != nil {
		return err
	}

	_, _, err = conn.WriteMsgUnix(data, nil, j.addr)
	if err == nil {
		return nil
	}
	if isSocketSpaceError(err) {
		return j.sendViaFD(conn, data)
	}
	return fmt.Errorf("%w: %v", ErrJournalUnavailable, err)
}

// sendViaFD 把记录写入已删除的临时文件，再通过 SCM_RIGHTS 传递描述符
func (j *journalTransport) sendViaFD(conn *net.UnixConn, data []byte) error {
	dir := "/dev/shm"
	if _, err := os.Stat(dir); err != nil {
		dir = os.TempDir()
	}
	f, err := os.CreateTemp(dir, "journal.")
	if err != nil {
		return fmt.Errorf("create journal temp file: %w", err)
	}
	defer f.Close()

	if err := os.Remove(f.Name()); err != nil {
		return fmt.Errorf("unlink journal temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write journal temp file: %w", err)
	}

	rights := syscall.UnixRights(int(f.Fd()))
	if _, _, err := conn.WriteMsgUnix([]byte{}, rights, j.addr); err != nil {
		return fmt.Errorf("%w: send fd: %v", ErrJournalUnavailable, err)
	}
	return nil
}

func isSocketSpaceError(err error) bool {
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(opErr.Err, &sysErr) {
		return false
	}
	return sysErr.Err == syscall.EMSGSIZE || sysErr.Err == syscall.ENOBUFS
}

// Sync 数据报在发送时已经完成
func (j *journalTransport) Sync() error { return nil }

func (j *journalTransport) Close() error {
	if !j.closed.CompareAndSwap(false, true) {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.conn != nil {
		err := j.conn.Close()
		j.conn = nil
		return err
	}
	return nil
}
