package flags

type Set uint64

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

const None Set = 0
