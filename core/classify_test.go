package core

import (
	"errors"
	"testing"
	"time"
	"unsafe"

	"github.com/iuboy/bmclog/flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sensorErr struct{}

func (*sensorErr) Error() string { return "sensor" }

func TestConvert(t *testing.T) {
	tests := []struct {
		name      string
		flags     flags.Set
		value     any
		wantFlags flags.Set
		wantValue string
	}{
		{"int", flags.None, 42, flags.Dec | flags.Field64 | flags.Signed, "42"},
		{"负数", flags.None, int8(-3), flags.Dec | flags.Field64 | flags.Signed, "-3"},
		{"uint32 十六进制", flags.Hex, uint32(255), flags.Hex | flags.Field64 | flags.Unsigned, "0x00000000000000ff"},
		{"uint8 十六进制8位", flags.Hex | flags.Field8, uint8(0xab), flags.Hex | flags.Field8 | flags.Unsigned, "0xab"},
		{"bool", flags.None, true, flags.Str, "True"},
		{"float32", flags.None, float32(2.5), flags.Floating, "2.500000"},
		{"string", flags.None, "abc", flags.Str, "abc"},
		{"字节切片", flags.None, []byte("ab"), flags.Str, "ab"},
		{"资源路径", flags.None, ObjectPath("/a/b"), flags.Str, "/a/b"},
		{"error", flags.None, errors.New("boom"), flags.Str, "boom"},
		{"nil 指针 error", flags.None, (*sensorErr)(nil), flags.Str, "<nil>"},
		{"带 String 的整数", flags.None, time.Second, flags.Str, "1s"},
		{"枚举", flags.None, powerOn, flags.Str, "On"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Convert("X", tt.flags, tt.value)
			require.NoError(t, err)
			assert.Equal(t, "X", f.Name)
			assert.Equal(t, tt.wantFlags, f.Flags)
			assert.Equal(t, tt.wantValue, f.Value)
		})
	}
}

func TestConvertPointers(t *testing.T) {
	v := 7
	f, err := Convert("PTR", flags.None, &v)
	require.NoError(t, err)
	assert.Equal(t, Pointer("PTR", &v), f)

	f, err = Convert("PTR", flags.None, unsafe.Pointer(&v))
	require.NoError(t, err)
	assert.Equal(t, Pointer("PTR", &v).Value, f.Value)

	f, err = Convert("PTR", flags.None, (*int)(nil))
	require.NoError(t, err)
	assert.Equal(t, Pointer("PTR", (*int)(nil)).Value, f.Value)
}

func TestConvertRejects(t *testing.T) {
	tests := []struct {
		name  string
		flags flags.Set
		value any
		want  error
	}{
		{"无类型 nil", flags.None, nil, ErrUnsupportedType},
		{"结构体", flags.None, struct{}{}, ErrUnsupportedType},
		{"map", flags.None, map[string]int{}, ErrUnsupportedType},
		{"复数", flags.None, complex(1, 2), ErrUnsupportedType},
		{"int 切片", flags.None, []int{1}, ErrUnsupportedType},
		{"函数", flags.None, func() {}, ErrUnsupportedType},
		{"Field 作为值", flags.None, Uint("A", uint(1)), ErrUnsupportedType},
		{"字符串带 hex", flags.Hex, "abc", flags.ErrProhibited},
		{"浮点带位宽", flags.Field32, 1.0, flags.ErrProhibited},
		{"布尔带 dec", flags.Dec, false, flags.ErrProhibited},
		{"无符号带 signed", flags.Signed, uint(1), flags.ErrProhibited},
		{"冲突表示法", flags.Hex | flags.Dec, 1, flags.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert("X", tt.flags, tt.value)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "X")
		})
	}
}

// 运行期转换与类型化构造函数结果一致
func TestConvertMatchesConstructors(t *testing.T) {
	pairs := []struct {
		name  string
		typed Field
		flags flags.Set
		value any
	}{
		{"uint", UintF("A", flags.Bin|flags.Field16, uint16(9)), flags.Bin | flags.Field16, uint16(9)},
		{"int", IntF("A", flags.Hex|flags.Field32, int32(-2)), flags.Hex | flags.Field32, int32(-2)},
		{"bool", Bool("A", true), flags.None, true},
		{"float", Float64("A", 3.25), flags.None, 3.25},
		{"string", String("A", "x"), flags.None, "x"},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			f, err := Convert("A", p.flags, p.value)
			require.NoError(t, err)
			assert.Equal(t, p.typed, f)
		})
	}
}
