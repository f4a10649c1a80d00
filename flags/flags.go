// Package flags 定义日志字段的格式化标志位。
//
// 标志位分为三个互斥组：
//
//	表示法: Dec / Hex / Bin
//	位宽:   Field8 / Field16 / Field32 / Field64
//	类别:   Signed / Unsigned / Str / Floating
//
// 使用 | 组合，例如 flags.Hex | flags.Field8。同一组内出现两个标志属于
// 调用错误，由 lg2check 在构建阶段报告，运行期由 Validate 兜底。
package flags

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Set 是一组格式化标志位
type Set uint64

// 位序与 journal 中的 LOG2 标志保持一致，请保持排序
const (
	Bin Set = 1 << iota
	Dec
	Field8
	Field16
	Field32
	Field64
	Floating
	Hex
	Signed
	Str
	Unsigned
)

const (
	None           Set = 0
	Representation     = Dec | Hex | Bin
	Width              = Field8 | Field16 | Field32 | Field64
	Category           = Signed | Unsigned | Str | Floating
	All                = Representation | Width | Category
)

var (
	ErrProhibited = errors.New("prohibited flag found for value type")
	ErrConflict   = errors.New("conflicting flags found for value type")
	ErrUnknown    = errors.New("unknown flag bits")
)

var names = []struct {
	flag Set
	name string
}{
	{Bin, "bin"},
	{Dec, "dec"},
	{Field8, "field8"},
	{Field16, "field16"},
	{Field32, "field32"},
	{Field64, "field64"},
	{Floating, "floating"},
	{Hex, "hex"},
	{Signed, "signed"},
	{Str, "str"},
	{Unsigned, "unsigned"},
}

// Has 判断 f 中的所有位是否都已设置
func (s Set) Has(f Set) bool { return s&f == f }

// Any 判断 f 中是否有任意一位已设置
func (s Set) Any(f Set) bool { return s&f != 0 }

func (s Set) Repr() Set     { return s & Representation }
func (s Set) Width() Set    { return s & Width }
func (s Set) Category() Set { return s & Category }

// Bits 返回位宽标志对应的比特数，未设置位宽时返回 0
func (s Set) Bits() int {
	switch s.Width() {
	case Field8:
		return 8
	case Field16:
		return 16
	case Field32:
		return 32
	case Field64:
		return 64
	default:
		return 0
	}
}

func (s Set) String() string {
	if s == None {
		return "none"
	}
	var parts []string
	for _, n := range names {
		if s&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if rest := s &^ All; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint64(rest)))
	}
	return strings.Join(parts, "|")
}

// WidthOf 返回比特数对应的位宽标志
func WidthOf(n int) Set {
	switch n {
	case 8:
		return Field8
	case 16:
		return Field16
	case 32:
		return Field32
	case 64:
		return Field64
	default:
		return None
	}
}

// Prohibit 当 s 含有 forbidden 中任意一位时返回错误
func Prohibit(s, forbidden Set) error {
	if hit := s & forbidden; hit != 0 {
		return fmt.Errorf("%w: %s", ErrProhibited, hit)
	}
	return nil
}

// OneFromSet 当 s 在 group 中选中了两个及以上的标志时返回错误
func OneFromSet(s, group Set) error {
	if picked := s & group; bits.OnesCount64(uint64(picked)) > 1 {
		return fmt.Errorf("%w: %s", ErrConflict, picked)
	}
	return nil
}

// Validate 检查未知位以及每个互斥组
func Validate(s Set) error {
	if rest := s &^ All; rest != 0 {
		return fmt.Errorf("%w: 0x%x", ErrUnknown, uint64(rest))
	}
	for _, group := range []Set{Representation, Width, Category} {
		if err := OneFromSet(s, group); err != nil {
			return err
		}
	}
	return nil
}

// Parse 解析 "hex|field8" 形式的文本
func Parse(text string) (Set, error) {
	var s Set
	text = strings.TrimSpace(text)
	if text == "" || text == "none" {
		return None, nil
	}
	for _, part := range strings.Split(text, "|") {
		part = strings.ToLower(strings.TrimSpace(part))
		found := false
		for _, n := range names {
			if n.name == part {
				s |= n.flag
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("%w: %q", ErrUnknown, part)
		}
	}
	return s, Validate(s)
}
