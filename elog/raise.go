package elog

import (
	"github.com/iuboy/bmclog/core"
)

type schema0 interface {
	Schema
	fields0()
}

// Raise0 记录一个没有字段的事件并返回对应的错误值
func Raise0[S schema0]() error {
	return raise[S](core.Caller(1))
}

type schema1[A Metadata] interface {
	Schema
	fields1(A)
}

func Raise1[S schema1[A], A Metadata](a Arg[A]) error {
	return raise[S](core.Caller(1), a)
}

type schema2[A, B Metadata] interface {
	Schema
	fields2(A, B)
}

func Raise2[S schema2[A, B], A, B Metadata](a Arg[A], b Arg[B]) error {
	return raise[S](core.Caller(1), a, b)
}

type schema3[A, B, C Metadata] interface {
	Schema
	fields3(A, B, C)
}

func Raise3[S schema3[A, B, C], A, B, C Metadata](a Arg[A], b Arg[B], c Arg[C]) error {
	return raise[S](core.Caller(1), a, b, c)
}

type schema4[A, B, C, D Metadata] interface {
	Schema
	fields4(A, B, C, D)
}

func Raise4[S schema4[A, B, C, D], A, B, C, D Metadata](a Arg[A], b Arg[B], c Arg[C], d Arg[D]) error {
	return raise[S](core.Caller(1), a, b, c, d)
}

type schema5[A, B, C, D, E Metadata] interface {
	Schema
	fields5(A, B, C, D, E)
}

func Raise5[S schema5[A, B, C, D, E], A, B, C, D, E Metadata](a Arg[A], b Arg[B], c Arg[C], d Arg[D], e Arg[E]) error {
	return raise[S](core.Caller(1), a, b, c, d, e)
}

type schema6[A, B, C, D, E, F Metadata] interface {
	Schema
	fields6(A, B, C, D, E, F)
}

func Raise6[S schema6[A, B, C, D, E, F], A, B, C, D, E, F Metadata](a Arg[A], b Arg[B], c Arg[C], d Arg[D], e Arg[E], f Arg[F]) error {
	return raise[S](core.Caller(1), a, b, c, d, e, f)
}

type schema7[A, B, C, D, E, F, G Metadata] interface {
	Schema
	fields7(A, B, C, D, E, F, G)
}

func Raise7[S schema7[A, B, C, D, E, F, G], A, B, C, D, E, F, G Metadata](a Arg[A], b Arg[B], c Arg[C], d Arg[D], e Arg[E], f Arg[F], g Arg[G]) error {
	return raise[S](core.Caller(1), a, b, c, d, e, f, g)
}

type schema8[A, B, C, D, E, F, G, H Metadata] interface {
	Schema
	fields8(A, B, C, D, E, F, G, H)
}

func Raise8[S schema8[A, B, C, D, E, F, G, H], A, B, C, D, E, F, G, H Metadata](a Arg[A], b Arg[B], c Arg[C], d Arg[D], e Arg[E], f Arg[F], g Arg[G], h Arg[H]) error {
	return raise[S](core.Caller(1), a, b, c, d, e, f, g, h)
}
