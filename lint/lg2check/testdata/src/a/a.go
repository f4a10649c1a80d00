package a

import (
	"errors"
	"os"
	"unsafe"

	"github.com/iuboy/bmclog"
	"github.com/iuboy/bmclog/core"
	"github.com/iuboy/bmclog/flags"
)

type state int

func (s state) String() string { return "on" }

type point struct{ X, Y int }

func good(l *core.Logger, p *point, err error) {
	bmclog.Infow("no fields")
	bmclog.Infow("Door {STATE}", "STATE", "open")
	bmclog.Infow("x", "A", 1, "B", uint8(2), "C", true, "D", 1.5, "E", []byte("x"))
	bmclog.Infow("x", "MASK", flags.Hex|flags.Field8, uint8(255))
	bmclog.Infow("x", "N", flags.Bin, int16(-1))
	bmclog.Infow("x", "PTR", p, "RAW", unsafe.Pointer(p), "ERR", err, "OS", os.ErrNotExist)
	bmclog.Infow("x", "S", state(1), "PATH", core.ObjectPath("/xyz"))
	bmclog.Infow("x", core.String("PRE", "built"), "AFTER", 2)
	bmclog.Logw(3, "x", "A", 1)
	l.Logw(3, "x", "A", 1)
	l.LogwAt(core.Location{}, 3, "x", "A", 1)
	_, _ = core.Walk("A", 1)

	const header = "CONST_HEADER"
	bmclog.Infow("x", header, 1)

	args := []any{"A", 1}
	bmclog.Infow("x", args...)

	_ = core.UintF("MASK", flags.Hex|flags.Field32, uint32(1))
	_ = core.IntF("TEMP", flags.Dec, int8(-3))
	_ = core.String("NAME", "value")
}

func shapes(name string, f flags.Set) {
	bmclog.Infow("x", 1)                    // want `value of type int without a preceding header`
	bmclog.Infow("x", "A")                  // want `header "A" has no value`
	bmclog.Infow("x", "A", flags.Hex)       // want `header "A" has no value`
	bmclog.Infow("x", "A", core.String("B", "c")) // want `field used as the value of "A"`
	bmclog.Infow("x", name, 1)              // want `header must be a constant string`
	bmclog.Infow("x", "A", f, 1)            // want `flags for "A" must be a constant expression`
	_, _ = core.Walk("A", 1, 2)             // want `value of type int without a preceding header`
}

func headers() {
	bmclog.Infow("x", "lower", 1)    // want `may only contain`
	bmclog.Infow("x", "_HIDDEN", 1)  // want `starts with underscore`
	bmclog.Infow("x", "MESSAGE", 1)  // want `is reserved`
	bmclog.Infow("x", "", 1)         // want `non-zero length`
	_ = core.String("PRIORITY", "1") // want `is reserved`
}

func flagChecks(f flags.Set) {
	bmclog.Infow("x", "A", flags.Hex|flags.Bin, uint8(1))         // want `conflicting flags`
	bmclog.Infow("x", "A", flags.Field8|flags.Field16, uint8(1))  // want `conflicting flags`
	bmclog.Infow("x", "A", flags.Hex, true)                       // want `prohibited flag`
	bmclog.Infow("x", "A", flags.Field8, 1.5)                     // want `prohibited flag`
	bmclog.Infow("x", "A", flags.Hex, "text")                     // want `prohibited flag`
	bmclog.Infow("x", "A", flags.Signed, uint8(1))                // want `prohibited flag`
	bmclog.Errorw("x", "A", flags.Floating, 3)                    // want `prohibited flag`
	_ = core.UintF("A", flags.Dec|flags.Hex, uint8(1))            // want `conflicting flags`
	_ = core.IntF("A", flags.Unsigned, int8(1))                   // want `prohibited flag`
	_ = core.UintF("A", f, uint8(1))                              // want `flags must be a constant expression`
}

func values(v any, m map[string]int, c complex128) {
	bmclog.Infow("x", "A", v)            // want `unsupported type (any|interface\{\}) for "A"`
	bmclog.Infow("x", "A", m)            // want `unsupported type map\[string\]int for "A"`
	bmclog.Infow("x", "A", point{})      // want `unsupported type point for "A"`
	bmclog.Infow("x", "A", c)            // want `unsupported type complex128 for "A"`
	bmclog.Infow("x", "A", errors.New) // want `unsupported type func\(text string\) error for "A"`
}
