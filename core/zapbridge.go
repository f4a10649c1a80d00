package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// zapCore 实现 zapcore.Core，把 zap 日志转成 journal 记录：
// zap 字段按出现顺序转为 Field，键名转为 journal 允许的大写形式。
type zapCore struct {
	logger *Logger
	enab   zapcore.LevelEnabler
	fields []Field
}

// NewZapCore 创建一个写入 l 的 zapcore.Core
func NewZapCore(l *Logger, enab zapcore.LevelEnabler) zapcore.Core {
	return &zapCore{logger: l, enab: enab}
}

func (c *zapCore) Enabled(level zapcore.Level) bool {
	return c.enab.Enabled(level) && c.logger.Enabled(SeverityFromZap(level))
}

func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := c.clone()
	clone.fields = append(clone.fields, encodeZapFields(fields)...)
	return clone
}

func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	combined := make([]Field, 0, len(c.fields)+len(fields)+2)
	combined = append(combined, c.fields...)
	combined = append(combined, encodeZapFields(fields)...)
	if ent.LoggerName != "" {
		combined = append(combined, String("LOGGER_NAME", ent.LoggerName))
	}
	if ent.Stack != "" {
		combined = append(combined, String("STACKTRACE", ent.Stack))
	}

	loc := Location{File: "unknown", Function: "unknown"}
	if ent.Caller.Defined {
		loc = Location{File: ent.Caller.File, Line: ent.Caller.Line, Function: ent.Caller.Function}
	}

	rec, dropped := NewRecord(SeverityFromZap(ent.Level), loc, ent.Message, combined)
	c.logger.metrics.DroppedFields(len(dropped))
	return c.logger.write(rec)
}

func (c *zapCore) Sync() error {
	return c.logger.Sync()
}

func (c *zapCore) clone() *zapCore {
	return &zapCore{
		logger: c.logger,
		enab:   c.enab,
		fields: append([]Field(nil), c.fields...),
	}
}

func encodeZapFields(fields []zapcore.Field) []Field {
	enc := &fieldEncoder{}
	for _, f := range fields {
		f.AddTo(enc)
	}
	return enc.out
}

// HeaderName 把任意键名转换为合法的 journal 字段名
func HeaderName(key string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(key) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := strings.TrimLeft(b.String(), "_")
	if name == "" {
		return "FIELD"
	}
	if IsReserved(name) {
		return "ZAP_" + name
	}
	return name
}

// fieldEncoder 按顺序收集 zap 字段，命名空间以 _ 连接
type fieldEncoder struct {
	out []Field
	ns  []string
}

func (fe *fieldEncoder) key(key string) string {
	if len(fe.ns) == 0 {
		return HeaderName(key)
	}
	return HeaderName(strings.Join(fe.ns, "_") + "_" + key)
}

func (fe *fieldEncoder) add(f Field) { fe.out = append(fe.out, f) }

func (fe *fieldEncoder) addJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fe.add(String(fe.key(key), data))
	return nil
}

func (fe *fieldEncoder) AddArray(key string, marshaler zapcore.ArrayMarshaler) error {
	arr := &arrayEncoder{elems: make([]any, 0)}
	if err := marshaler.MarshalLogArray(arr); err != nil {
		return err
	}
	return fe.addJSON(key, arr.elems)
}

func (fe *fieldEncoder) AddObject(key string, marshaler zapcore.ObjectMarshaler) error {
	obj := &objectEncoder{out: make(map[string]any)}
	if err := marshaler.MarshalLogObject(obj); err != nil {
		return err
	}
	return fe.addJSON(key, obj.out)
}

func (fe *fieldEncoder) AddBinary(key string, val []byte)     { fe.add(String(fe.key(key), val)) }
func (fe *fieldEncoder) AddByteString(key string, val []byte) { fe.add(String(fe.key(key), val)) }
func (fe *fieldEncoder) AddBool(key string, val bool)         { fe.add(Bool(fe.key(key), val)) }
func (fe *fieldEncoder) AddComplex128(key string, val complex128) {
	fe.add(String(fe.key(key), fmt.Sprint(val)))
}
func (fe *fieldEncoder) AddComplex64(key string, val complex64) {
	fe.add(String(fe.key(key), fmt.Sprint(val)))
}
func (fe *fieldEncoder) AddDuration(key string, val time.Duration) {
	fe.add(String(fe.key(key), val.String()))
}
func (fe *fieldEncoder) AddFloat64(key string, val float64) { fe.add(Float64(fe.key(key), val)) }
func (fe *fieldEncoder) AddFloat32(key string, val float32) { fe.add(Float64(fe.key(key), val)) }
func (fe *fieldEncoder) AddInt(key string, val int)         { fe.add(Int(fe.key(key), val)) }
func (fe *fieldEncoder) AddInt64(key string, val int64)     { fe.add(Int(fe.key(key), val)) }
func (fe *fieldEncoder) AddInt32(key string, val int32)     { fe.add(Int(fe.key(key), val)) }
func (fe *fieldEncoder) AddInt16(key string, val int16)     { fe.add(Int(fe.key(key), val)) }
func (fe *fieldEncoder) AddInt8(key string, val int8)       { fe.add(Int(fe.key(key), val)) }
func (fe *fieldEncoder) AddString(key string, val string)   { fe.add(String(fe.key(key), val)) }
func (fe *fieldEncoder) AddTime(key string, val time.Time) {
	fe.add(String(fe.key(key), val.Format(time.RFC3339Nano)))
}
func (fe *fieldEncoder) AddUint(key string, val uint)       { fe.add(Uint(fe.key(key), val)) }
func (fe *fieldEncoder) AddUint64(key string, val uint64)   { fe.add(Uint(fe.key(key), val)) }
func (fe *fieldEncoder) AddUint32(key string, val uint32)   { fe.add(Uint(fe.key(key), val)) }
func (fe *fieldEncoder) AddUint16(key string, val uint16)   { fe.add(Uint(fe.key(key), val)) }
func (fe *fieldEncoder) AddUint8(key string, val uint8)     { fe.add(Uint(fe.key(key), val)) }
func (fe *fieldEncoder) AddUintptr(key string, val uintptr) { fe.add(Uint(fe.key(key), val)) }
func (fe *fieldEncoder) AddReflected(key string, val interface{}) error {
	return fe.addJSON(key, val)
}
func (fe *fieldEncoder) OpenNamespace(key string) { fe.ns = append(fe.ns, key) }

type arrayEncoder struct{ elems []any }

func (a *arrayEncoder) AppendArray(marshaler zapcore.ArrayMarshaler) error {
	sub := &arrayEncoder{elems: make([]any, 0)}
	if err := marshaler.MarshalLogArray(sub); err != nil {
		return err
	}
	a.elems = append(a.elems, sub.elems)
	return nil
}

func (a *arrayEncoder) AppendObject(marshaler zapcore.ObjectMarshaler) error {
	obj := &objectEncoder{out: make(map[string]any)}
	if err := marshaler.MarshalLogObject(obj); err != nil {
		return err
	}
	a.elems = append(a.elems, obj.out)
	return nil
}
func (a *arrayEncoder) AppendReflected(value interface{}) error {
	a.elems = append(a.elems, value)
	return nil
}
func (a *arrayEncoder) AppendBool(v bool)              { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendByteString(v []byte)      { a.elems = append(a.elems, string(v)) }
func (a *arrayEncoder) AppendComplex128(v complex128)  { a.elems = append(a.elems, fmt.Sprint(v)) }
func (a *arrayEncoder) AppendComplex64(v complex64)    { a.elems = append(a.elems, fmt.Sprint(v)) }
func (a *arrayEncoder) AppendDuration(v time.Duration) { a.elems = append(a.elems, v.String()) }
func (a *arrayEncoder) AppendFloat64(v float64)        { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendFloat32(v float32)        { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendInt(v int)                { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendInt64(v int64)            { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendInt32(v int32)            { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendInt16(v int16)            { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendInt8(v int8)              { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendString(v string)          { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendTime(v time.Time)         { a.elems = append(a.elems, v.Format(time.RFC3339Nano)) }
func (a *arrayEncoder) AppendUint(v uint)              { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendUint64(v uint64)          { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendUint32(v uint32)          { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendUint16(v uint16)          { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendUint8(v uint8)            { a.elems = append(a.elems, v) }
func (a *arrayEncoder) AppendUintptr(v uintptr)        { a.elems = append(a.elems, v) }

// objectEncoder 把嵌套对象收集成 map，最终整体编码为 JSON
type objectEncoder struct {
	out map[string]any
}

func (o *objectEncoder) AddArray(key string, marshaler zapcore.ArrayMarshaler) error {
	arr := &arrayEncoder{elems: make([]any, 0)}
	if err := marshaler.MarshalLogArray(arr); err != nil {
		return err
	}
	o.out[key] = arr.elems
	return nil
}

func (o *objectEncoder) AddObject(key string, marshaler zapcore.ObjectMarshaler) error {
	sub := &objectEncoder{out: make(map[string]any)}
	if err := marshaler.MarshalLogObject(sub); err != nil {
		return err
	}
	o.out[key] = sub.out
	return nil
}

func (o *objectEncoder) AddBinary(key string, value []byte)         { o.out[key] = value }
func (o *objectEncoder) AddBool(key string, value bool)             { o.out[key] = value }
func (o *objectEncoder) AddByteString(key string, value []byte)     { o.out[key] = string(value) }
func (o *objectEncoder) AddComplex128(key string, value complex128) { o.out[key] = fmt.Sprint(value) }
func (o *objectEncoder) AddComplex64(key string, value complex64)   { o.out[key] = fmt.Sprint(value) }
func (o *objectEncoder) AddDuration(key string, value time.Duration) {
	o.out[key] = value.String()
}
func (o *objectEncoder) AddFloat64(key string, value float64) { o.out[key] = value }
func (o *objectEncoder) AddFloat32(key string, value float32) { o.out[key] = value }
func (o *objectEncoder) AddInt(key string, value int)         { o.out[key] = value }
func (o *objectEncoder) AddInt64(key string, value int64)     { o.out[key] = value }
func (o *objectEncoder) AddInt32(key string, value int32)     { o.out[key] = value }
func (o *objectEncoder) AddInt16(key string, value int16)     { o.out[key] = value }
func (o *objectEncoder) AddInt8(key string, value int8)       { o.out[key] = value }
func (o *objectEncoder) AddString(key string, value string)   { o.out[key] = value }
func (o *objectEncoder) AddTime(key string, value time.Time) {
	o.out[key] = value.Format(time.RFC3339Nano)
}
func (o *objectEncoder) AddUint(key string, value uint)       { o.out[key] = value }
func (o *objectEncoder) AddUint64(key string, value uint64)   { o.out[key] = value }
func (o *objectEncoder) AddUint32(key string, value uint32)   { o.out[key] = value }
func (o *objectEncoder) AddUint16(key string, value uint16)   { o.out[key] = value }
func (o *objectEncoder) AddUint8(key string, value uint8)     { o.out[key] = value }
func (o *objectEncoder) AddUintptr(key string, value uintptr) { o.out[key] = value }
func (o *objectEncoder) AddReflected(key string, value interface{}) error {
	o.out[key] = value
	return nil
}

// OpenNamespace 嵌套对象内忽略命名空间
func (o *objectEncoder) OpenNamespace(key string) {}
