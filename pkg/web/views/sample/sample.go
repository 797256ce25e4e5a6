package sample

import (
	// 外部依赖
	gin "github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	sample "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/sample"
	impl "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/sample/sample"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
)

type Handle struct {
	sService sample.Service
}

func NewSampleHandle() *Handle {
	return &Handle{
		sService: impl.NewSample(),
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

// Register godoc
//
//	@Summary	登记入库一个新批次
//	@Tags		sample
//	@Accept		json
//	@Produce	json
//	@Param		data	body		sample.RegisterReq	true	"批次信息"
//	@Success	200		{object}	common.Resp{data=sample.SampleResp}
//	@Router		/api/v1/sample [post]
func (h *Handle) Register(ctx *gin.Context) {
	req := &sample.RegisterReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse Register param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.sService.Register(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Get(ctx *gin.Context) {
	id, ok := bindUUID(ctx)
	if !ok {
		return
	}
	resp, err := h.sService.Get(ctx, &sample.GetReq{UUID: id})
	common.Reply(ctx, err, resp)
}

func (h *Handle) Query(ctx *gin.Context) {
	req := &sample.QueryReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.sService.Query(ctx, req)
	common.Reply(ctx, err, resp)
}

// Consume godoc
//
//	@Summary	实验室领用扣减
//	@Tags		sample
//	@Router		/api/v1/sample/{uuid}/consume [post]
func (h *Handle) Consume(ctx *gin.Context) {
	id, ok := bindUUID(ctx)
	if !ok {
		return
	}
	req := &sample.ConsumeReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse Consume param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	req.UUID = id
	resp, err := h.sService.Consume(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Custody(ctx *gin.Context) {
	id, ok := bindUUID(ctx)
	if !ok {
		return
	}
	resp, err := h.sService.Custody(ctx, &sample.GetReq{UUID: id})
	common.Reply(ctx, err, resp)
}
