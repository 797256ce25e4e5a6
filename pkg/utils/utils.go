package utils

import (
	// 外部依赖
	"context"
	"os"
	"os/signal"
	"syscall"
)

// FilterSlice 映射并过滤切片。
func FilterSlice[T any, R any](in []T, fn func(T) (R, bool)) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		if r, ok := fn(v); ok {
			out = append(out, r)
		}
	}
	return out
}

// Or 返回第一个非零值。
func Or[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

func Ptr[T any](v T) *T {
	return &v
}

// PtrVal 解引用，nil 返回零值。
func PtrVal[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// SetupSignalContext 返回随 SIGINT/SIGTERM 取消的根 context。
func SetupSignalContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}
