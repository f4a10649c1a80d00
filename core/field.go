package core

import (
	"unsafe"

	"github.com/iuboy/bmclog/flags"
)

// Field 是一条已渲染的字段：名称、格式标志和文本值。
// 构造后不再修改，顺序即记录中的顺序。
type Field struct {
	Name  string
	Flags flags.Set
	Value string

	err error
}

// Err 返回构造阶段的错误，非 nil 的字段不会被写入记录
func (f Field) Err() error { return f.err }

func (f Field) String() string { return f.Name + "=" + f.Value }

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type Float interface {
	~float32 | ~float64
}

type Text interface {
	~string | ~[]byte
}

// Enumeration 带有字符串形式的整数枚举
type Enumeration interface {
	Signed | Unsigned
	String() string
}

// ObjectPath 资源路径标识（例如 /xyz/openbmc_project/logging/entry/1）
type ObjectPath string

func (p ObjectPath) String() string { return string(p) }

func invalidField(name string, f flags.Set, err error) Field {
	return Field{Name: name, Flags: f, err: err}
}

// Uint 以默认格式（dec, field64）记录无符号整数
func Uint[T Unsigned](name string, v T) Field {
	return UintF(name, flags.None, v)
}

// UintF 以指定格式记录无符号整数
func UintF[T Unsigned](name string, f flags.Set, v T) Field {
	nf, err := unsignedFlags(f)
	if err != nil {
		return invalidField(name, f, err)
	}
	return Field{Name: name, Flags: nf, Value: formatUnsigned(nf, uint64(v))}
}

// Int 以默认格式（dec, field64）记录有符号整数
func Int[T Signed](name string, v T) Field {
	return IntF(name, flags.None, v)
}

// IntF 以指定格式记录有符号整数
func IntF[T Signed](name string, f flags.Set, v T) Field {
	nf, err := signedFlags(f)
	if err != nil {
		return invalidField(name, f, err)
	}
	return Field{Name: name, Flags: nf, Value: formatSigned(nf, int64(v))}
}

// Bool 记录为 "True" 或 "False"
func Bool[T ~bool](name string, v T) Field {
	return Field{Name: name, Flags: flags.Str, Value: formatBool(bool(v))}
}

// Float64 以固定 6 位小数记录浮点数
func Float64[T Float](name string, v T) Field {
	return Field{Name: name, Flags: flags.Floating, Value: formatFloat(float64(v))}
}

// String 记录字符串或字节切片，字节切片会被复制
func String[T Text](name string, v T) Field {
	return Field{Name: name, Flags: flags.Str, Value: string(v)}
}

// Path 记录资源路径的字符串形式
func Path(name string, p ObjectPath) Field {
	return Field{Name: name, Flags: flags.Str, Value: string(p)}
}

// Pointer 以平台指针宽度的十六进制记录地址
func Pointer[T any](name string, p *T) Field {
	f, s := formatPointer(uintptr(unsafe.Pointer(p)))
	return Field{Name: name, Flags: f, Value: s}
}

// Err 记录错误描述，nil 记为 "<nil>"
func Err(name string, err error) Field {
	return Field{Name: name, Flags: flags.Str, Value: errorText(err)}
}

// Enum 记录枚举声明的字符串形式
func Enum[T Enumeration](name string, v T) Field {
	return Field{Name: name, Flags: flags.Str, Value: v.String()}
}

func unsignedFlags(f flags.Set) (flags.Set, error) {
	if err := flags.Prohibit(f, flags.Floating|flags.Signed|flags.Str); err != nil {
		return f, err
	}
	return integerFlags(f, flags.Unsigned)
}

func signedFlags(f flags.Set) (flags.Set, error) {
	if err := flags.Prohibit(f, flags.Floating|flags.Unsigned|flags.Str); err != nil {
		return f, err
	}
	return integerFlags(f, flags.Signed)
}

// integerFlags 校验互斥组并补齐默认值 dec / field64
func integerFlags(f, category flags.Set) (flags.Set, error) {
	if err := flags.OneFromSet(f, flags.Representation); err != nil {
		return f, err
	}
	if err := flags.OneFromSet(f, flags.Width); err != nil {
		return f, err
	}
	if err := flags.Validate(f); err != nil {
		return f, err
	}
	if f.Repr() == flags.None {
		f |= flags.Dec
	}
	if f.Width() == flags.None {
		f |= flags.Field64
	}
	return f | category, nil
}
