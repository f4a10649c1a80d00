package adapter

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/iuboy/bmclog/config"
	"github.com/iuboy/bmclog/core"
	"go.uber.org/zap"
)

var (
	// 自定义的错误类型
	ErrSyslogUnavailable = errors.New("syslog server unavailable")
	ErrConfigInvalid     = errors.New("invalid syslog configuration")
	ErrBufferFull        = errors.New("syslog buffer full")
)

const (
	defaultNetwork    = "tcp"
	defaultRetryDelay = 500 * time.Millisecond
	maxRetries        = 5
	writeTimeout      = 3 * time.Second
	maxHostnameLength = 255
	defaultBufferSize = 1000  // 默认缓冲大小
	maxBufferSize     = 10000 // 最大缓冲限制
	flockRetryDelay   = 100 * time.Millisecond
	maxReconnectDelay = 5 * time.Minute
	maxMessageLength  = 8 * 1024

	// 结构化数据的 SD-ID，私有企业号形式
	sdID = "lg2@32473"
)

type syslogAdapter struct {
	config      config.SyslogConfig // Syslog配置
	conn        net.Conn            // Syslog连接
	connMu      sync.RWMutex        // 用于锁定连接
	dialer      net.Dialer          // 用于创建TCP连接
	tlsConfig   *tls.Config         // TLS配置
	hostname    string              // 主机名
	location    *time.Location      // 时间戳时区
	closing     atomic.Bool         // 是否正在关闭
	closed      atomic.Bool         // 是否已经关闭
	buffer      chan []byte         // 日志缓冲通道
	wg          sync.WaitGroup      // 用于等待协程结束
	ctx         context.Context     // 上下文
	cancel      context.CancelFunc  // 取消函数
	fileLock    *flock.Flock        // 文件锁实例
	reconnector *time.Ticker        // 重连定时器
	lastSuccess atomic.Value        // 最后成功时间
	now         func() time.Time

	retryCount int32 // 并发安全的重试计数
}

func newSyslogAdapter(cfg config.SyslogConfig) (*syslogAdapter, error) {
	// 应用默认值并验证配置
	if cfg.Address == "" {
		return nil, fmt.Errorf("%w: address is required", ErrConfigInvalid)
	}

	if cfg.Network == "" {
		cfg.Network = defaultNetwork
	}

	if cfg.Tag == "" {
		cfg.Tag = "bmclog"
	}

	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	} else if cfg.BufferSize > maxBufferSize {
		cfg.BufferSize = maxBufferSize
	}

	// 获取或生成主机名
	hostname, err := generateHostname(cfg.StaticHost)
	if err != nil {
		return nil, fmt.Errorf("hostname generation failed: %w", err)
	}

	loc := time.UTC
	if cfg.TimeZone != "" {
		if loc, err = time.LoadLocation(cfg.TimeZone); err != nil {
			return nil, fmt.Errorf("%w: time zone %q", ErrConfigInvalid, cfg.TimeZone)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	adapter := &syslogAdapter{
		config:      cfg,
		dialer:      net.Dialer{Timeout: 5 * time.Second},
		hostname:    hostname,
		location:    loc,
		buffer:      make(chan []byte, cfg.BufferSize),
		ctx:         ctx,
		cancel:      cancel,
		reconnector: time.NewTicker(cfg.RetryDelay),
		now:         time.Now,
	}

	if cfg.Secure {
		adapter.tlsConfig = &tls.Config{
			InsecureSkipVerify: cfg.TLSSkipVerify,
			MinVersion:         tls.VersionTLS12,
		}
	}

	lockKey := fmt.Sprintf("%s-%s", cfg.Address, cfg.Tag)
	lockName := fmt.Sprintf("bmclog-syslog-%x.lock", sha256.Sum256([]byte(lockKey)))
	adapter.fileLock = flock.New(filepath.Join(os.TempDir(), lockName))

	adapter.lastSuccess.Store(time.Time{})

	if err := adapter.connect(); err != nil {
		adapter.cancel() // 清理资源
		adapter.reconnector.Stop()
		return nil, fmt.Errorf("initial connection failed: %w", err)
	}
	adapter.wg.Add(1)
	go adapter.processQueue()

	return adapter, nil
}

// dial 建立TCP/UDP或TLS连接
func (a *syslogAdapter) dial() (net.Conn, error) {
	if a.tlsConfig != nil {
		return tls.DialWithDialer(&a.dialer, a.config.Network, a.config.Address, a.tlsConfig)
	}
	return a.dialer.Dial(a.config.Network, a.config.Address)
}

// connect 建立或重建连接
func (a *syslogAdapter) connect() error {
	a.connMu.Lock()
	defer a.connMu.Unlock()

	// 关闭现有连接
	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}

	conn, err := a.dial()
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetKeepAlive(true)
		_ = tc.SetKeepAlivePeriod(3 * time.Minute)
	}

	a.conn = conn
	return nil
}

func (a *syslogAdapter) processQueue() {
	defer a.wg.Done()
	defer a.reconnector.Stop()

	for {
		select {
		case msg, ok := <-a.buffer:
			if !ok {
				return // 通道关闭，退出协程
			}
			a.writeWithRetry(msg)

		case <-a.reconnector.C:
			// 定期检查连接状态
			if !a.config.Reconnect || a.isConnected() {
				atomic.StoreInt32(&a.retryCount, 0)
				continue
			}
			delay := time.Second * time.Duration(math.Pow(2, float64(atomic.LoadInt32(&a.retryCount))))
			if delay > maxReconnectDelay {
				delay = maxReconnectDelay
			}
			select {
			case <-time.After(delay):
			case <-a.ctx.Done():
				return
			}
			a.reconnect()
			atomic.AddInt32(&a.retryCount, 1)

		case <-a.ctx.Done():
			return
		}
	}
}

func (a *syslogAdapter) writeWithRetry(msg []byte) {
	if !a.isConnected() && !a.closing.Load() {
		a.reconnect()
	}
	for i := 0; i < maxRetries; i++ {
		if a.closing.Load() {
			return
		}

		if err := a.write(msg); err == nil {
			a.lastSuccess.Store(a.now())
			return
		}

		if i == 0 {
			a.disconnect()
			a.reconnect()
		}

		time.Sleep(a.config.RetryDelay)
	}

	zap.L().Warn("syslog write failed", zap.String("address", a.config.Address), zap.Int("attempts", maxRetries))
}

func (a *syslogAdapter) reconnect() {
	a.connMu.Lock()
	defer a.connMu.Unlock()

	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}

	// 获取文件锁（防止多进程同时操作）
	if locked, err := a.fileLock.TryLockContext(a.ctx, flockRetryDelay); locked && err == nil {
		defer func() { _ = a.fileLock.Unlock() }()
	} else if err != nil {
		zap.L().Warn("syslog reconnect lock failed", zap.Error(err))
		return
	}

	conn, err := a.dial()
	if err != nil {
		zap.L().Warn("syslog reconnect failed", zap.String("address", a.config.Address), zap.Error(err))
		return
	}

	a.conn = conn
}

func (a *syslogAdapter) write(p []byte) error {
	a.connMu.RLock()
	defer a.connMu.RUnlock()

	if a.conn == nil {
		return net.ErrClosed
	}

	if err := a.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}

	_, err := a.conn.Write(p)
	return err
}

// WriteRecord 把记录格式化为一条 syslog 消息放入发送队列
func (a *syslogAdapter) WriteRecord(entries []core.Entry) error {
	if a.closing.Load() || a.closed.Load() {
		return net.ErrClosed
	}

	msg := a.format(entries)

	// 写入缓冲区
	select {
	case a.buffer <- msg:
		return nil
	default:
		return ErrBufferFull
	}
}

// format 生成 RFC5424 或 RFC3164 消息。
// RFC5424 下字段按记录顺序放入一个 SD-ELEMENT；RFC3164 下追加在消息后面。
func (a *syslogAdapter) format(entries []core.Entry) []byte {
	severity := int(core.InfoLevel)
	message := ""
	tag := a.config.Tag
	var params []core.Entry

	for _, e := range entries {
		switch e.Key {
		case "PRIORITY":
			if n, err := strconv.Atoi(string(e.Value)); err == nil && n >= 0 && n <= 7 {
				severity = n
			}
		case "MESSAGE":
			message = safeMessageForLog(string(e.Value))
		case "SYSLOG_IDENTIFIER":
			tag = cleanAppName(string(e.Value))
		default:
			params = append(params, e)
		}
	}

	priority := a.config.Facility*8 + severity
	procid := os.Getpid()
	host := a.getCleanHost()
	timestamp := a.now().In(a.location)

	var b bytes.Buffer
	if a.config.RFC5424 {
		fmt.Fprintf(&b, "<%d>1 %s %s %s %d - ", priority, timestamp.Format(time.RFC3339Nano), host, tag, procid)
		if len(params) == 0 {
			b.WriteString("-")
		} else {
			b.WriteString("[" + sdID)
			for _, p := range params {
				fmt.Fprintf(&b, ` %s="%s"`, p.Key, escapeSDParam(safeMessageForLog(string(p.Value))))
			}
			b.WriteString("]")
		}
		b.WriteString(" ")
		b.WriteString(message)
	} else {
		fmt.Fprintf(&b, "<%d>%s %s %s[%d]: %s", priority, timestamp.Format(time.Stamp), host, tag, procid, message)
		for _, p := range params {
			fmt.Fprintf(&b, ` %s="%s"`, p.Key, escapeSDParam(safeMessageForLog(string(p.Value))))
		}
	}

	out := b.Bytes()
	if len(out) > maxMessageLength {
		out = append(out[:maxMessageLength-3], "..."...)
	}
	// 添加换行符（作为 TCP 传输的帧分隔）
	return append(out, '\n')
}

func (a *syslogAdapter) Sync() error {
	a.connMu.RLock()
	defer a.connMu.RUnlock()
	if tcpConn, ok := a.conn.(*net.TCPConn); ok {
		return tcpConn.SetWriteDeadline(time.Time{})
	}
	return nil
}

func (a *syslogAdapter) Close() error {
	if !a.closing.CompareAndSwap(false, true) {
		return nil
	}

	a.cancel()
	close(a.buffer)
	a.wg.Wait()

	a.connMu.Lock()
	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}
	a.connMu.Unlock()

	_ = a.fileLock.Close()
	a.closed.Store(true)
	return nil
}

// 生成主机名
func generateHostname(staticHostname string) (string, error) {
	if staticHostname != "" {
		staticHostname = strings.TrimSpace(staticHostname)
		staticHostname = cleanHostname(staticHostname)
		if staticHostname == "" {
			return "", errors.New("invalid static hostname")
		}
		if len(staticHostname) > maxHostnameLength {
			staticHostname = staticHostname[:maxHostnameLength]
		}
		return staticHostname, nil
	}
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown", nil
	}
	hostname = cleanHostname(hostname)
	if hostname == "" {
		return "localhost", nil
	}
	if len(hostname) > maxHostnameLength {
		hostname = hostname[:maxHostnameLength]
	}
	return hostname, nil
}

// 清理主机名非法字符
func cleanHostname(hostname string) string {
	var clean strings.Builder
	for _, r := range hostname {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '.':
			clean.WriteRune(r)
		default:
			clean.WriteRune('-')
		}
	}

	ip := net.ParseIP(clean.String())
	if ip != nil {
		return ip.String()
	}
	return clean.String()
}

// getCleanHost 返回 HOSTNAME 字段，清理后为空时使用 localhost
func (a *syslogAdapter) getCleanHost() string {
	host := cleanHostname(a.hostname)
	if host == "" {
		return "localhost"
	}
	return host
}

// cleanAppName APP-NAME 只允许可打印 ASCII 且最长 48 个字符
func cleanAppName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r <= 32 || r >= 127 {
			return '_'
		}
		return r
	}, name)
	if len(cleaned) > 48 {
		cleaned = cleaned[:48]
	}
	if cleaned == "" {
		return "-"
	}
	return cleaned
}

var spaceRe = regexp.MustCompile(`\s+`)

func safeMessageForLog(msg string) string {
	// 将所有 ASCII 控制字符（0–31）替换为空格
	cleaned := strings.Map(func(r rune) rune {
		if r >= 0 && r <= 31 {
			return ' '
		}
		return r
	}, msg)

	// 压缩空白并去除首尾空格
	return strings.TrimSpace(spaceRe.ReplaceAllString(cleaned, " "))
}

// escapeSDParam 按 RFC5424 转义 PARAM-VALUE 中的 " \ ]
func escapeSDParam(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch r {
		case '"', '\\', ']':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (a *syslogAdapter) isConnected() bool {
	a.connMu.RLock()
	defer a.connMu.RUnlock()
	return a.conn != nil
}

func (a *syslogAdapter) disconnect() {
	a.connMu.Lock()
	defer a.connMu.Unlock()
	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}
}
