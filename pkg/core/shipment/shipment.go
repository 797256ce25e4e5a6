package shipment

import (
	// 外部依赖
	"context"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
)

// Service 定义发运相关业务接口
//
// 所有方法均接受 context.Context，web 层可直接传入 *gin.Context
// 以便在实现内部获取用户信息、日志、DB 会话等。
type Service interface {
	// Create 创建发运单并原子扣减所有样品库存
	Create(ctx context.Context, req *CreateReq) (*CreateResp, error)
	// Get 查询发运单详情（含样品行与申报单）
	Get(ctx context.Context, req *GetReq) (*DetailResp, error)
	// List 分页查询发运单
	List(ctx context.Context, req *ListReq) (*common.PageResp[[]*ShipmentResp], error)
	// StartProcessing 认领处理，initiated -> processing
	StartProcessing(ctx context.Context, req *ProcessReq) (*ShipmentResp, error)
	// MarkShipped 生成面单、扣减耗材并落发运，processing -> shipped
	MarkShipped(ctx context.Context, req *ShipReq) (*ShipResp, error)
	// PollTracking 查询承运商轨迹，送达时推进 shipped -> delivered
	PollTracking(ctx context.Context, req *TrackReq) (*TrackResp, error)
	// MarkLabelsPrinted 登记危险品警示标签已打印
	MarkLabelsPrinted(ctx context.Context, req *PrintLabelsReq) error
	// Custody 按时间升序返回发运单监管链
	Custody(ctx context.Context, req *CustodyReq) (*CustodyResp, error)
}
