package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

// SupplyQuery 过滤条件
type SupplyQuery struct {
	Category     *string
	LowStockOnly bool
	OrderBy      string
	Offset       int
	Limit        int
}

type SupplyRepo interface {
	TxExecutor

	CreateSupply(ctx context.Context, data *model.ShippingSupply) error
	GetSupplyByUUID(ctx context.Context, id uuid.UUID) (*model.ShippingSupply, error)
	ListSupplies(ctx context.Context, q SupplyQuery) ([]*model.ShippingSupply, int64, error)
	// ConsumeSupply 原子条件扣减：count = count - qty WHERE count >= qty，
	// 库存不足时返回 code.InsufficientSupplyErr，返回值为扣减前后数量。
	ConsumeSupply(ctx context.Context, id uuid.UUID, qty int64) (before int64, after int64, supplyID int64, err error)
	// RestockSupply 原子加回库存。
	RestockSupply(ctx context.Context, id uuid.UUID, qty int64) (before int64, after int64, supplyID int64, err error)
	CreateSupplyTransaction(ctx context.Context, data *model.SupplyTransaction) error
	ListSupplyTransactions(ctx context.Context, supplyID int64, offset, limit int) ([]*model.SupplyTransaction, int64, error)
}
