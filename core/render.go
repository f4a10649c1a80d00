package core

import (
	"strconv"
	"strings"

	"github.com/iuboy/bmclog/flags"
)

// pointerWidth 按平台指针长度决定位宽
var pointerWidth = flags.WidthOf(strconv.IntSize)

// formatUnsigned 按表示法与位宽渲染无符号数。
// 调用前 f 必须已经带有表示法和位宽（见 unsignedFlags）。
func formatUnsigned(f flags.Set, v uint64) string {
	w := f.Bits()
	if w == 0 {
		w = 64
	}
	switch f.Repr() {
	case flags.Hex:
		return "0x" + zeroPad(strconv.FormatUint(mask(v, w), 16), w/4)
	case flags.Bin:
		return "0b" + zeroPad(strconv.FormatUint(mask(v, w), 2), w)
	default:
		return strconv.FormatUint(v, 10)
	}
}

// formatSigned 十进制保留符号；hex/bin 按同宽度的无符号位模式渲染
func formatSigned(f flags.Set, v int64) string {
	if f.Any(flags.Hex | flags.Bin) {
		return formatUnsigned(f, uint64(v))
	}
	return strconv.FormatInt(v, 10)
}

// formatFloat 与区域设置无关，固定 6 位小数
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func formatPointer(p uintptr) (flags.Set, string) {
	f := flags.Hex | pointerWidth | flags.Unsigned
	return f, formatUnsigned(f, uint64(p))
}

func mask(v uint64, width int) uint64 {
	if width >= 64 {
		return v
	}
	return v & (1<<uint(width) - 1)
}

func zeroPad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
