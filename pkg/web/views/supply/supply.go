package supply

import (
	// 外部依赖
	gin "github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	notify "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify"
	supply "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/supply"
	impl "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/supply/supply"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
)

type Handle struct {
	sService supply.Service
}

func NewSupplyHandle(msgCenter notify.MsgCenter) *Handle {
	return &Handle{
		sService: impl.NewSupply(msgCenter),
	}
}

func bindUUID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(ctx.Param("uuid"))
	if err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handle) Create(ctx *gin.Context) {
	req := &supply.CreateReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse Create param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.sService.Create(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Query(ctx *gin.Context) {
	req := &supply.QueryReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.sService.Query(ctx, req)
	common.Reply(ctx, err, resp)
}

// Restock godoc
//
//	@Summary	耗材补货
//	@Tags		supply
//	@Router		/api/v1/supply/{uuid}/restock [post]
func (h *Handle) Restock(ctx *gin.Context) {
	id, ok := bindUUID(ctx)
	if !ok {
		return
	}
	req := &supply.RestockReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse Restock param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	req.UUID = id
	resp, err := h.sService.Restock(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Transactions(ctx *gin.Context) {
	id, ok := bindUUID(ctx)
	if !ok {
		return
	}
	req := &supply.TransactionsReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	req.UUID = id
	resp, err := h.sService.Transactions(ctx, req)
	common.Reply(ctx, err, resp)
}
