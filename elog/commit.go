package elog

import (
	"context"
	"errors"
)

var ErrNotEvent = errors.New("error is not a structured event")

// Committer 把事件持久化为错误条目，返回条目编号
type Committer interface {
	Commit(ctx context.Context, sig Signal) (uint32, error)
}

// CommitterFunc 让普通函数实现 Committer
type CommitterFunc func(ctx context.Context, sig Signal) (uint32, error)

func (f CommitterFunc) Commit(ctx context.Context, sig Signal) (uint32, error) {
	return f(ctx, sig)
}

// Report 从 err 中取出事件并交给 c 提交。
// err 不包含事件时返回 ErrNotEvent，调用方可以继续按普通错误处理。
func Report(ctx context.Context, c Committer, err error) (uint32, error) {
	var sig Signal
	if !errors.As(err, &sig) {
		return 0, ErrNotEvent
	}
	return c.Commit(ctx, sig)
}
