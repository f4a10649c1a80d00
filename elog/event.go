package elog

import (
	"errors"

	"github.com/google/uuid"
	"github.com/iuboy/bmclog/core"

	// 注册默认的 journal 传输
	_ "github.com/iuboy/bmclog/internal/adapter"
)

// TransactionKey 关联日志记录与持久化错误条目的字段名
const TransactionKey = "TRANSACTION_ID"

// Signal 是所有事件错误值的公共接口，用于不关心具体事件类型的捕获：
//
//	var sig elog.Signal
//	if errors.As(err, &sig) { ... }
type Signal interface {
	error
	Identifier() string
	Transaction() string
	Severity() core.Severity
	Fields() []core.Field
}

// Event 是 RaiseN 返回的错误值，S 标识具体事件
type Event[S Schema] struct {
	schema      S
	transaction string
	fields      []core.Field

	// EmitErr 记录写入失败的原因，失败不影响事件本身
	EmitErr error
}

func (e *Event[S]) Error() string           { return e.schema.Identifier() }
func (e *Event[S]) Identifier() string      { return e.schema.Identifier() }
func (e *Event[S]) Transaction() string     { return e.transaction }
func (e *Event[S]) Severity() core.Severity { return e.schema.Severity() }
func (e *Event[S]) Schema() S               { return e.schema }

// Fields 返回事件携带的字段，不含 TRANSACTION_ID
func (e *Event[S]) Fields() []core.Field {
	return append([]core.Field(nil), e.fields...)
}

// Is 同一事件类型的两个值视为相同
func (e *Event[S]) Is(target error) bool {
	_, ok := target.(*Event[S])
	return ok
}

// IsEvent 判断 err 链中是否有事件 S
func IsEvent[S Schema](err error) bool {
	var e *Event[S]
	return errors.As(err, &e)
}

// AsEvent 取出 err 链中的事件 S
func AsEvent[S Schema](err error) (*Event[S], bool) {
	var e *Event[S]
	ok := errors.As(err, &e)
	return e, ok
}

func raise[S Schema](loc core.Location, args ...fieldSource) error {
	var s S
	fields := make([]core.Field, 0, len(args))
	for _, a := range args {
		if f, ok := a.field(); ok {
			fields = append(fields, f)
		}
	}

	ev := &Event[S]{
		schema:      s,
		transaction: uuid.NewString(),
		fields:      fields,
	}

	l := core.L()
	record := append(append([]core.Field(nil), fields...), core.String(TransactionKey, ev.transaction))
	ev.EmitErr = l.Emit(loc, s.Severity(), s.Message(), record...)
	l.Metrics().EventRaised(s.Identifier())
	return ev
}
