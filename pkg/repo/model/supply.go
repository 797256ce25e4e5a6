package model

// ShippingSupply 可消耗的包装耗材。Count 不允许为负，
// 扣减必须走带充足性判断的条件更新。
type ShippingSupply struct {
	BaseModel
	Name              string `gorm:"type:varchar(255);not null;uniqueIndex:idx_supply_name" json:"name"`
	Category          string `gorm:"type:varchar(64);not null;default:'packaging'" json:"category"`
	Count             int64  `gorm:"not null;default:0;check:count >= 0" json:"count"`
	LowStockThreshold int64  `gorm:"not null;default:0" json:"low_stock_threshold"`
	Unit              string `gorm:"type:varchar(32);not null;default:'each'" json:"unit"`
}

func (*ShippingSupply) TableName() string { return "shipping_supply" }

// SupplyTransaction 耗材台账，只增不改，记录扣减前后数量。
type SupplyTransaction struct {
	BaseModel
	SupplyID    int64  `gorm:"not null;index:idx_supply_tx_supply" json:"supply_id"`
	ShipmentID  *int64 `gorm:"index:idx_supply_tx_shipment" json:"shipment_id"`
	Delta       int64  `gorm:"not null" json:"delta"`
	CountBefore int64  `gorm:"not null" json:"count_before"`
	CountAfter  int64  `gorm:"not null" json:"count_after"`
	Actor       string `gorm:"type:varchar(120);not null" json:"actor"`
	Note        string `gorm:"type:varchar(255)" json:"note"`
}

func (*SupplyTransaction) TableName() string { return "supply_transaction" }
