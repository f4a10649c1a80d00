package core

import (
	"github.com/iuboy/bmclog/config"
)

// Entry 记录中的一个键值对，值可以包含任意字节
type Entry struct {
	Key   string
	Value []byte
}

// Transport 把一条记录作为一次原子写入发送到目标
type Transport interface {
	WriteRecord(entries []Entry) error
	Sync() error
	Close() error
}

// TransportFactory 根据输出配置创建传输层
type TransportFactory func(config.OutputConfig) (Transport, error)

// nopTransport 丢弃所有记录
type nopTransport struct{}

func (nopTransport) WriteRecord([]Entry) error { return nil }
func (nopTransport) Sync() error               { return nil }
func (nopTransport) Close() error              { return nil }

// NopTransport 返回一个丢弃所有记录的传输层
func NopTransport() Transport { return nopTransport{} }
