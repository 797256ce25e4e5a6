package supply

import (
	// 外部依赖
	"time"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
)

type CreateReq struct {
	Name              string `json:"name" binding:"required"`
	Category          string `json:"category"`
	Count             int64  `json:"count" binding:"gte=0"`
	LowStockThreshold int64  `json:"low_stock_threshold" binding:"gte=0"`
	Unit              string `json:"unit"`
}

type SupplyResp struct {
	UUID              uuid.UUID `json:"uuid"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Count             int64     `json:"count"`
	LowStockThreshold int64     `json:"low_stock_threshold"`
	LowStock          bool      `json:"low_stock"`
	Unit              string    `json:"unit"`
	CreatedAt         time.Time `json:"created_at"`
}

type QueryReq struct {
	common.PageReq
	Category     string `form:"category"`
	LowStockOnly bool   `form:"low_stock_only"`
}

type RestockReq struct {
	UUID     uuid.UUID `json:"-"`
	Quantity int64     `json:"quantity" binding:"required,gt=0"`
	Note     string    `json:"note"`
}

type TransactionsReq struct {
	common.PageReq
	UUID uuid.UUID `uri:"uuid" binding:"required"`
}

type TransactionResp struct {
	UUID        uuid.UUID `json:"uuid"`
	Delta       int64     `json:"delta"`
	CountBefore int64     `json:"count_before"`
	CountAfter  int64     `json:"count_after"`
	Actor       string    `json:"actor"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
