// Command lg2check 检查 bmclog 日志调用，可直接运行或作为 go vet 的 vettool：
//
//	lg2check ./...
//	go vet -vettool=$(which lg2check) ./...
package main

import (
	"github.com/iuboy/bmclog/lint/lg2check"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() { singlechecker.Main(lg2check.Analyzer) }
