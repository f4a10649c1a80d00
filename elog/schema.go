// Package elog 定义结构化错误事件：先按声明的字段记录一条日志，
// 再返回一个标识该事件的错误值。
//
// 事件类型嵌入 FieldsN 声明必填字段：
//
//	type FileNotFound struct {
//		elog.Fields3[ERRNUM, FILE_PATH, FILE_NAME]
//	}
//
//	func (FileNotFound) Identifier() string      { return "xyz.openbmc_project.Common.File.Error.NotFound" }
//	func (FileNotFound) Message() string         { return "File {FILE_NAME} not found in {FILE_PATH}" }
//	func (FileNotFound) Severity() core.Severity { return core.ErrorLevel }
//
//	return elog.Raise3[FileNotFound](elog.Val(ERRNUM(2)), elog.Val(FILE_PATH("/tmp")), elog.Val(FILE_NAME("a.txt")))
//
// 参数的类型与顺序必须和 FieldsN 一致，否则无法通过编译。
package elog

import (
	"github.com/iuboy/bmclog/core"
)

// FieldSpec 描述一个元数据字段
type FieldSpec struct {
	Name   string // 字段名，同时是消息模板中的占位符
	Format string // 格式标志，例如 "hex|field32"
	Short  string // 简短说明
	Type   string // 值类型
}

// Metadata 是一个带类型的元数据值，方法必须使用值接收者
type Metadata interface {
	Spec() FieldSpec
	Field() core.Field
}

// Schema 描述一个事件：标识、消息模板、严重级别与必填字段
type Schema interface {
	Identifier() string
	Message() string
	Severity() core.Severity
	Metadata() []FieldSpec
}

func spec[T Metadata]() FieldSpec {
	var v T
	return v.Spec()
}

// Arg 是 RaiseN 的一个位置参数：一个值，或者沿用前值的占位
type Arg[T Metadata] struct {
	value T
	prev  bool
}

// Val 提供字段的值
func Val[T Metadata](v T) Arg[T] {
	return Arg[T]{value: v}
}

// Prev 占据字段位置但不产生字段
func Prev[T Metadata]() Arg[T] {
	return Arg[T]{prev: true}
}

func (a Arg[T]) field() (core.Field, bool) {
	if a.prev {
		return core.Field{}, false
	}
	return a.value.Field(), true
}

type fieldSource interface {
	field() (core.Field, bool)
}
