package shipment

import (
	// 外部依赖
	gin "github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	notify "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify"
	shipment "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/shipment"
	impl "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/shipment/shipment"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
)

type Handle struct {
	sService shipment.Service
}

func NewShipmentHandle(carrier repo.Carrier, msgCenter notify.MsgCenter) *Handle {
	return &Handle{
		sService: impl.NewShipment(carrier, msgCenter),
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

// Create godoc
//
//	@Summary	创建发运单并扣减样品库存
//	@Tags		shipment
//	@Accept		json
//	@Produce	json
//	@Param		data	body		shipment.CreateReq	true	"发运请求"
//	@Success	200		{object}	common.Resp{data=shipment.CreateResp}
//	@Router		/api/v1/shipment [post]
func (h *Handle) Create(ctx *gin.Context) {
	req := &shipment.CreateReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse Create param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.sService.Create(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Get(ctx *gin.Context) {
	id, ok := bindUUID(ctx)
	if !ok {
		return
	}
	resp, err := h.sService.Get(ctx, &shipment.GetReq{UUID: id})
	common.Reply(ctx, err, resp)
}

func (h *Handle) List(ctx *gin.Context) {
	req := &shipment.ListReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.sService.List(ctx, req)
	common.Reply(ctx, err, resp)
}

// StartProcessing godoc
//
//	@Summary	认领处理 initiated -> processing
//	@Tags		shipment
//	@Router		/api/v1/shipment/{uuid}/process [post]
func (h *Handle) StartProcessing(ctx *gin.Context) {
	id, ok := bindUUID(ctx)
	if !ok {
		return
	}
	resp, err := h.sService.StartProcessing(ctx, &shipment.ProcessReq{UUID: id})
	common.Reply(ctx, err, resp)
}

// Ship godoc
//
//	@Summary	生成面单并发出 processing -> shipped
//	@Tags		shipment
//	@Router		/api/v1/shipment/{uuid}/ship [post]
func (h *Handle) Ship(ctx *gin.Context) {
	id, ok := bindUUID(ctx)
	if !ok {
		return
	}
	req := &shipment.ShipReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse Ship param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	req.UUID = id
	resp, err := h.sService.MarkShipped(ctx, req)
	common.Reply(ctx, err, resp)
}

func (h *Handle) Track(ctx *gin.Context) {
	id, ok := bindUUID(ctx)
	if !ok {
		return
	}
	resp, err := h.sService.PollTracking(ctx, &shipment.TrackReq{UUID: id})
	common.Reply(ctx, err, resp)
}

func (h *Handle) PrintLabels(ctx *gin.Context) {
	id, ok := bindUUID(ctx)
	if !ok {
		return
	}
	err := h.sService.MarkLabelsPrinted(ctx, &shipment.PrintLabelsReq{UUID: id})
	common.Reply(ctx, err)
}

func (h *Handle) Custody(ctx *gin.Context) {
	id, ok := bindUUID(ctx)
	if !ok {
		return
	}
	resp, err := h.sService.Custody(ctx, &shipment.CustodyReq{UUID: id})
	common.Reply(ctx, err, resp)
}
