package logger

import (
	// 外部依赖
	"time"

	gin "github.com/gin-gonic/gin"
)

// LogWithWriter gin 访问日志中间件
func LogWithWriter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		if raw := ctx.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		ctx.Next()

		Infof(ctx, "%s %s status: %d cost: %s client: %s",
			ctx.Request.Method,
			path,
			ctx.Writer.Status(),
			time.Since(start),
			ctx.ClientIP(),
		)

		for _, e := range ctx.Errors.Errors() {
			Errorf(ctx, "request error: %s", e)
		}
	}
}
