package sample

import (
	// 外部依赖
	"context"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
)

// Service 定义样品台账业务接口
type Service interface {
	// Register 登记入库一个新批次
	Register(ctx context.Context, req *RegisterReq) (*SampleResp, error)
	// Get 查询单个批次
	Get(ctx context.Context, req *GetReq) (*SampleResp, error)
	// Query 分页检索批次
	Query(ctx context.Context, req *QueryReq) (*common.PageResp[[]*SampleResp], error)
	// Consume 实验室内部领用扣减，不经发运
	Consume(ctx context.Context, req *ConsumeReq) (*SampleResp, error)
	// Custody 按时间升序返回批次监管链
	Custody(ctx context.Context, req *GetReq) ([]*EventResp, error)
}
