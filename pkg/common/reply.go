package common

import (
	// 外部依赖
	"errors"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	// 内部引用
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
)

type Error struct {
	Msg string `json:"msg"`
}

type Resp struct {
	Code  *code.Code `json:"code"`
	Data  any        `json:"data,omitempty"`
	Error *Error     `json:"error,omitempty"`
}

// Reply 统一响应出口。err 为 nil 时返回 data，否则按错误码返回。
func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}

	resp := &Resp{Code: code.OK}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

func ReplyOk(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, &Resp{Code: code.OK})
}

func ReplyErr(ctx *gin.Context, err error, msgs ...string) {
	var c *code.Code
	if !errors.As(err, &c) {
		// 非业务错误一律归为内部错误，细节只进日志
		c = code.InternalErr
	}
	msg := c.String()
	if len(msgs) > 0 {
		msg = msg + ": " + strings.Join(msgs, "; ")
	}
	ctx.JSON(c.HTTPStatus(), &Resp{
		Code:  c,
		Error: &Error{Msg: msg},
	})
}
