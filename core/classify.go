package core

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/iuboy/bmclog/flags"
)

var ErrUnsupportedType = errors.New("unsupported type for logging value")

// Convert 按值的动态类型选择转换规则，返回规范化字段。
//
// 规则与类型化构造函数一致：整数接受表示法/位宽标志，其它类别不接受任何
// 标志；不在规则表中的类型返回 ErrUnsupportedType，不做通用字符串化。
func Convert(name string, f flags.Set, v any) (Field, error) {
	field, err := convert(name, f, v)
	if err != nil {
		return Field{}, fmt.Errorf("%s: %w", name, err)
	}
	return field, nil
}

func convert(name string, f flags.Set, v any) (Field, error) {
	switch x := v.(type) {
	case nil:
		return Field{}, fmt.Errorf("%w: nil", ErrUnsupportedType)
	case Field:
		return Field{}, fmt.Errorf("%w: %s", ErrUnsupportedType, "Field used as a value")
	case error:
		if err := noFlags(f); err != nil {
			return Field{}, err
		}
		return Field{Name: name, Flags: flags.Str, Value: errorText(x)}, nil
	case unsafe.Pointer:
		if err := noFlags(f); err != nil {
			return Field{}, err
		}
		pf, s := formatPointer(uintptr(x))
		return Field{Name: name, Flags: pf, Value: s}, nil
	}

	rv := reflect.ValueOf(v)
	kind := rv.Kind()

	// 整数枚举优先使用声明的字符串形式
	if isInteger(kind) {
		if s, ok := v.(fmt.Stringer); ok {
			if err := noFlags(f); err != nil {
				return Field{}, err
			}
			return Field{Name: name, Flags: flags.Str, Value: s.String()}, nil
		}
	}

	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		nf, err := signedFlags(f)
		if err != nil {
			return Field{}, err
		}
		return Field{Name: name, Flags: nf, Value: formatSigned(nf, rv.Int())}, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		nf, err := unsignedFlags(f)
		if err != nil {
			return Field{}, err
		}
		return Field{Name: name, Flags: nf, Value: formatUnsigned(nf, rv.Uint())}, nil

	case reflect.Bool:
		if err := noFlags(f); err != nil {
			return Field{}, err
		}
		return Field{Name: name, Flags: flags.Str, Value: formatBool(rv.Bool())}, nil

	case reflect.Float32, reflect.Float64:
		if err := noFlags(f); err != nil {
			return Field{}, err
		}
		return Field{Name: name, Flags: flags.Floating, Value: formatFloat(rv.Float())}, nil

	case reflect.String:
		if err := noFlags(f); err != nil {
			return Field{}, err
		}
		return Field{Name: name, Flags: flags.Str, Value: rv.String()}, nil

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			if err := noFlags(f); err != nil {
				return Field{}, err
			}
			return Field{Name: name, Flags: flags.Str, Value: string(rv.Bytes())}, nil
		}

	case reflect.Pointer, reflect.UnsafePointer:
		if err := noFlags(f); err != nil {
			return Field{}, err
		}
		pf, s := formatPointer(rv.Pointer())
		return Field{Name: name, Flags: pf, Value: s}, nil
	}

	return Field{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

func noFlags(f flags.Set) error {
	return flags.Prohibit(f, ^flags.None)
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// errorText 对 nil 以及值为 nil 指针的 error 返回 "<nil>"
func errorText(err error) string {
	if err == nil {
		return "<nil>"
	}
	if rv := reflect.ValueOf(err); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "<nil>"
	}
	return err.Error()
}
