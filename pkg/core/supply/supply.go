package supply

import (
	// 外部依赖
	"context"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
)

// Service 定义耗材库存业务接口
type Service interface {
	// Create 新增一种耗材
	Create(ctx context.Context, req *CreateReq) (*SupplyResp, error)
	// Query 分页查询耗材，可只看低库存
	Query(ctx context.Context, req *QueryReq) (*common.PageResp[[]*SupplyResp], error)
	// Restock 补货入库并记台账
	Restock(ctx context.Context, req *RestockReq) (*SupplyResp, error)
	// Transactions 查询一种耗材的进出台账
	Transactions(ctx context.Context, req *TransactionsReq) (*common.PageResp[[]*TransactionResp], error)
}
