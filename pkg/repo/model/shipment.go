package model

import (
	"time"
)

type ShipmentStatus string

const (
	ShipmentInitiated  ShipmentStatus = "initiated"
	ShipmentPending    ShipmentStatus = "pending" // 旧单样品通道的遗留初始态
	ShipmentProcessing ShipmentStatus = "processing"
	ShipmentShipped    ShipmentStatus = "shipped"
	ShipmentDelivered  ShipmentStatus = "delivered"
	ShipmentCancelled  ShipmentStatus = "cancelled" // 词汇表保留，当前没有任何路径写入
)

// NotYetProcessed 判断发运单是否尚未被认领处理。
// initiated 与遗留 pending 等价。
func (s ShipmentStatus) NotYetProcessed() bool {
	return s == ShipmentInitiated || s == ShipmentPending
}

// Shipment 一次发运请求，可包含 1~10 个样品行。
type Shipment struct {
	BaseModel
	ShipmentNumber string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_shipment_number" json:"shipment_number"`
	Status         ShipmentStatus `gorm:"type:varchar(32);not null;default:'initiated';index:idx_shipment_status" json:"status"`

	AmountShipped float64 `gorm:"type:numeric(12,3);not null" json:"amount_shipped"`
	Unit          string  `gorm:"type:varchar(32);not null" json:"unit"`

	RecipientName    string  `gorm:"type:varchar(255);not null" json:"recipient_name"`
	RecipientCompany *string `gorm:"type:varchar(255)" json:"recipient_company"`
	RecipientPhone   string  `gorm:"type:varchar(64);not null" json:"recipient_phone"`
	RecipientEmail   *string `gorm:"type:varchar(255)" json:"recipient_email"`

	AddressLine1 string  `gorm:"type:varchar(255);not null" json:"address_line1"`
	AddressLine2 *string `gorm:"type:varchar(255)" json:"address_line2"`
	City         string  `gorm:"type:varchar(128);not null" json:"city"`
	State        string  `gorm:"type:varchar(64);not null" json:"state"`
	PostalCode   string  `gorm:"type:varchar(32);not null" json:"postal_code"`
	Country      string  `gorm:"type:varchar(64);not null;default:'US'" json:"country"`

	IsHazmat            bool `gorm:"not null;default:false" json:"is_hazmat"`
	RequiresDeclaration bool `gorm:"not null;default:false" json:"requires_declaration"`

	TrackingNumber *string  `gorm:"type:varchar(128);index:idx_shipment_tracking" json:"tracking_number"`
	CarrierService *string  `gorm:"type:varchar(64)" json:"carrier_service"`
	ShippingCost   *float64 `gorm:"type:numeric(10,2)" json:"shipping_cost"`
	LabelPath      *string  `gorm:"type:text" json:"label_path"`

	RequestedBy string  `gorm:"type:varchar(120);not null" json:"requested_by"`
	ProcessedBy *string `gorm:"type:varchar(120)" json:"processed_by"`

	ShippedAt   *time.Time `gorm:"type:timestamptz" json:"shipped_at"`
	DeliveredAt *time.Time `gorm:"type:timestamptz" json:"delivered_at"`
}

func (*Shipment) TableName() string { return "shipment" }

// ShipmentSample 发运单与样品的关联行，一个样品在一单内至多出现一次。
type ShipmentSample struct {
	BaseModel
	ShipmentID        int64   `gorm:"not null;uniqueIndex:idx_shipment_sample,priority:1" json:"shipment_id"`
	SampleID          int64   `gorm:"not null;uniqueIndex:idx_shipment_sample,priority:2" json:"sample_id"`
	QuantityRequested float64 `gorm:"type:numeric(12,3);not null" json:"quantity_requested"`
	Unit              string  `gorm:"type:varchar(32);not null" json:"unit"`
}

func (*ShipmentSample) TableName() string { return "shipment_sample" }
