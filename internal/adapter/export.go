package adapter

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"time"

	"github.com/iuboy/bmclog/core"
)

// appendField 写入一个字段：
//
//	KEY=value\n
//	KEY\n<小端 64 位长度>value\n   (binary 为 true 时)
func appendField(buf *bytes.Buffer, key string, value []byte, binaryForm bool) {
	buf.WriteString(key)
	if !binaryForm {
		buf.WriteByte('=')
		buf.Write(value)
		buf.WriteByte('\n')
		return
	}
	buf.WriteByte('\n')
	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(len(value)))
	buf.Write(size[:])
	buf.Write(value)
	buf.WriteByte('\n')
}

// encodeNative 按 journald 原生协议编码，只有含换行的值使用二进制形式
func encodeNative(entries []core.Entry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		appendField(&buf, e.Key, e.Value, bytes.IndexByte(e.Value, '\n') >= 0)
	}
	return buf.Bytes()
}

// encodeExport 按 journal export 格式编码一条记录，以空行结束
func encodeExport(entries []core.Entry, now time.Time) []byte {
	var buf bytes.Buffer
	appendField(&buf, "__REALTIME_TIMESTAMP", []byte(strconv.FormatInt(now.UnixMicro(), 10)), false)
	for _, e := range entries {
		appendField(&buf, e.Key, e.Value, !printable(e.Value))
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

// printable 值中不含除制表符外的控制字符
func printable(v []byte) bool {
	for _, b := range v {
		if b < 0x20 && b != '\t' || b == 0x7f {
			return false
		}
	}
	return true
}
