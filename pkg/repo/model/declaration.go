package model

import (
	"time"
)

// DangerousGoodsDeclaration 每个 hazmat 发运单对应一份 DG 申报，
// 警示标签字段在后续打印步骤才会被回填。
type DangerousGoodsDeclaration struct {
	BaseModel
	ShipmentID         int64  `gorm:"not null;uniqueIndex:idx_dg_shipment" json:"shipment_id"`
	UNNumber           string `gorm:"type:varchar(16);not null" json:"un_number"`
	ProperShippingName string `gorm:"type:varchar(255);not null" json:"proper_shipping_name"`
	HazardClass        string `gorm:"type:varchar(16);not null" json:"hazard_class"`
	PackingGroup       string `gorm:"type:varchar(8)" json:"packing_group"`
	PackagingType      string `gorm:"type:varchar(64);not null;default:'4G combination'" json:"packaging_type"`
	Quantity           float64 `gorm:"type:numeric(12,3);not null" json:"quantity"`
	Unit               string `gorm:"type:varchar(32);not null" json:"unit"`

	LabelsRequired bool       `gorm:"not null;default:true" json:"labels_required"`
	LabelsPrinted  bool       `gorm:"not null;default:false" json:"labels_printed"`
	PrintedBy      *string    `gorm:"type:varchar(120)" json:"printed_by"`
	PrintedAt      *time.Time `gorm:"type:timestamptz" json:"printed_at"`
}

func (*DangerousGoodsDeclaration) TableName() string { return "dangerous_goods_declaration" }
