package core

import "github.com/iuboy/bmclog/flags"

type Field struct{ Name, Value string }

type Severity int

type Location struct{}

type Logger struct{}

func (l *Logger) Logw(sev Severity, msg string, args ...any)                 {}
func (l *Logger) LogwAt(loc Location, sev Severity, msg string, args ...any) {}

func Walk(args ...any) ([]Field, error) { return nil, nil }

type ObjectPath string

func Uint[T ~uint8 | ~uint16 | ~uint32 | ~uint64](name string, v T) Field { return Field{} }
func UintF[T ~uint8 | ~uint16 | ~uint32 | ~uint64](name string, f flags.Set, v T) Field {
	return Field{}
}
func IntF[T ~int | ~int8 | ~int16 | ~int32 | ~int64](name string, f flags.Set, v T) Field {
	return Field{}
}
func String[T ~string | ~[]byte](name string, v T) Field { return Field{} }
func Path(name string, p ObjectPath) Field            { return Field{} }
