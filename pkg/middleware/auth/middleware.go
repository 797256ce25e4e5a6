package auth

import (
	// 外部依赖
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"

	// 内部引用
	config "github.com/TeleosTLink-commits/T-Link-Production-sub001/internal/config"
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
)

// AuthWeb 校验 Bearer JWT 并把操作者写入上下文。
func AuthWeb() gin.HandlerFunc {
	conf := config.Global().Auth

	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			abort(ctx, code.UnLogin)
			return
		}

		tokens := strings.Split(authHeader, " ")
		if len(tokens) != 2 || tokens[0] != "Bearer" {
			abort(ctx, code.LoginFormatErr)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokens[1], claims, func(*jwt.Token) (any, error) {
			return []byte(conf.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(conf.Issuer))
		if err != nil || !token.Valid {
			logger.Warnf(ctx, "parse jwt token err: %v", err)
			abort(ctx, code.InvalidToken)
			return
		}

		if claims.Subject == "" || claims.Role == "" {
			abort(ctx, code.InvalidToken)
			return
		}

		ctx.Set(USERKEY, &Actor{
			ID:   claims.Subject,
			Name: claims.Name,
			Role: common.Role(claims.Role),
		})
		ctx.Next()
	}
}

func abort(ctx *gin.Context, c *code.Code) {
	ctx.JSON(http.StatusUnauthorized, &common.Resp{
		Code:  c,
		Error: &common.Error{Msg: c.String()},
	})
	ctx.Abort()
}
