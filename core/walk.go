package core

import (
	"errors"
	"fmt"

	"github.com/iuboy/bmclog/flags"
)

var (
	ErrMissingHeader    = errors.New("value without a preceding header")
	ErrMissingValue     = errors.New("header without a value")
	ErrAmbiguousNesting = errors.New("field used where a value is expected")
)

// ArgError 描述参数序列中第一个不合法的位置
type ArgError struct {
	Index int
	Err   error
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("argument %d: %v", e.Index, e.Err)
}

func (e *ArgError) Unwrap() error { return e.Err }

// Walk 把平铺的参数序列解析为有序字段。
//
// 接受的形状：
//
//	"NAME", value
//	"NAME", flags.Set, value
//	Field
//
// 遇到第一个非法位置时停止，返回已解析的前缀和 *ArgError。
func Walk(args ...any) ([]Field, error) {
	fields := make([]Field, 0, len(args)/2)
	for i := 0; i < len(args); {
		switch h := args[i].(type) {
		case Field:
			fields = append(fields, h)
			i++
			continue
		case string:
			name := h
			f := flags.None
			j := i + 1
			if j < len(args) {
				if fs, ok := args[j].(flags.Set); ok {
					f = fs
					j++
				}
			}
			if j >= len(args) {
				return fields, &ArgError{Index: i, Err: fmt.Errorf("%w: %q", ErrMissingValue, name)}
			}
			if _, ok := args[j].(Field); ok {
				return fields, &ArgError{Index: j, Err: ErrAmbiguousNesting}
			}
			field, err := Convert(name, f, args[j])
			if err != nil {
				return fields, &ArgError{Index: j, Err: err}
			}
			fields = append(fields, field)
			i = j + 1
		default:
			return fields, &ArgError{Index: i, Err: fmt.Errorf("%w: %T", ErrMissingHeader, h)}
		}
	}
	return fields, nil
}
