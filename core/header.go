package core

import (
	"errors"
	"fmt"
)

var ErrInvalidHeader = errors.New("invalid header")

// 由记录本身占用的键，调用方不能作为字段名使用
var reservedHeaders = []string{
	"CODE_FILE",
	"CODE_FUNC",
	"CODE_LINE",
	"LOG2_FMTMSG",
	"MESSAGE",
	"PRIORITY",
	"SYSLOG_IDENTIFIER",
}

// IsReserved 判断 name 是否为保留键
func IsReserved(name string) bool {
	for _, r := range reservedHeaders {
		if r == name {
			return true
		}
	}
	return false
}

// ValidateHeader 检查字段名是否满足 journal 的要求：
// 非空、不以下划线开头、只包含 [A-Z0-9_]、不是保留键。
func ValidateHeader(name string) error {
	if name == "" {
		return fmt.Errorf("%w: header must have non-zero length", ErrInvalidHeader)
	}
	if name[0] == '_' {
		return fmt.Errorf("%w: %q starts with underscore", ErrInvalidHeader, name)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return fmt.Errorf("%w: %q may only contain [_A-Z0-9]", ErrInvalidHeader, name)
		}
	}
	if IsReserved(name) {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidHeader, name)
	}
	return nil
}
