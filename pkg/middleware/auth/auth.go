package auth

import (
	// 外部依赖
	"context"

	gin "github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
)

const USERKEY = "tlink-current-user"

// Actor 已认证操作者，所有可变更操作都要求其存在。
type Actor struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role common.Role `json:"role"`
}

type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GetCurrentUser 从上下文中获取当前操作者
func GetCurrentUser(ctx context.Context) *Actor {
	gCtx, ok := ctx.(*gin.Context)
	if !ok {
		if a, ok := ctx.Value(actorKey{}).(*Actor); ok {
			return a
		}
		return nil
	}

	user, exists := gCtx.Get(USERKEY)
	if !exists {
		return nil
	}
	return user.(*Actor)
}

type actorKey struct{}

// WithActor 将操作者注入普通 context，供 worker 等非 HTTP 入口复用业务层。
func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}
