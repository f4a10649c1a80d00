package bmclog

import "github.com/iuboy/bmclog/core"

func Logw(sev core.Severity, msg string, args ...any) {}
func Infow(msg string, args ...any)                   {}
func Errorw(msg string, args ...any)                  {}
