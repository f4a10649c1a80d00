package core

import (
	"runtime"
	"strconv"
)

// Location 调用点的源码位置
type Location struct {
	File     string
	Line     int
	Function string
}

// Caller 返回调用 Caller 的函数往上 skip 层的位置。
// Caller(0) 是调用 Caller 的函数本身。
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "unknown", Function: "unknown"}
	}
	loc := Location{File: file, Line: line, Function: "unknown"}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = fn.Name()
	}
	return loc
}

func (l Location) String() string {
	return l.File + ":" + strconv.Itoa(l.Line)
}
