package shipment

import (
	// 外部依赖
	"time"

	datatypes "gorm.io/datatypes"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

// ItemReq 发运单中的一个样品行，危险品字段非空时覆盖样品主数据。
type ItemReq struct {
	SampleUUID uuid.UUID `json:"sample_uuid" binding:"required"`
	Amount     float64   `json:"amount" binding:"required,gt=0"`

	UNNumber           string `json:"un_number"`
	HazardClass        string `json:"hazard_class"`
	PackingGroup       string `json:"packing_group"`
	ProperShippingName string `json:"proper_shipping_name"`
}

// AddressReq 收件地址。优先使用结构化字段；
// 只有 Legacy 时按 "line1, city, state zip[, country]" 尽力拆分。
type AddressReq struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Legacy     string `json:"legacy"`
}

type CreateReq struct {
	RecipientName    string     `json:"recipient_name" binding:"required"`
	RecipientCompany string     `json:"recipient_company"`
	RecipientPhone   string     `json:"recipient_phone" binding:"required"`
	RecipientEmail   string     `json:"recipient_email"`
	Address          AddressReq `json:"address" binding:"required"`
	Items            []ItemReq  `json:"items" binding:"required"`
	CarrierService   string     `json:"carrier_service"`
}

type ItemResp struct {
	SampleUUID   uuid.UUID `json:"sample_uuid"`
	LotNumber    string    `json:"lot_number"`
	ChemicalName string    `json:"chemical_name"`
	Amount       float64   `json:"amount"`
	Unit         string    `json:"unit"`
}

type ShipmentResp struct {
	UUID           uuid.UUID            `json:"uuid"`
	ShipmentNumber string               `json:"shipment_number"`
	Status         model.ShipmentStatus `json:"status"`
	AmountShipped  float64              `json:"amount_shipped"`
	Unit           string               `json:"unit"`
	RecipientName  string               `json:"recipient_name"`
	City           string               `json:"city"`
	State          string               `json:"state"`
	IsHazmat       bool                 `json:"is_hazmat"`
	TrackingNumber *string              `json:"tracking_number,omitempty"`
	RequestedBy    string               `json:"requested_by"`
	ProcessedBy    *string              `json:"processed_by,omitempty"`
	ShippedAt      *time.Time           `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time           `json:"delivered_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

type CreateResp struct {
	ShipmentResp
	Items []*ItemResp `json:"items"`
}

type GetReq struct {
	UUID uuid.UUID `uri:"uuid" binding:"required"`
}

type DeclarationResp struct {
	UNNumber           string     `json:"un_number"`
	ProperShippingName string     `json:"proper_shipping_name"`
	HazardClass        string     `json:"hazard_class"`
	PackingGroup       string     `json:"packing_group"`
	PackagingType      string     `json:"packaging_type"`
	Quantity           float64    `json:"quantity"`
	Unit               string     `json:"unit"`
	LabelsRequired     bool       `json:"labels_required"`
	LabelsPrinted      bool       `json:"labels_printed"`
	PrintedBy          *string    `json:"printed_by,omitempty"`
	PrintedAt          *time.Time `json:"printed_at,omitempty"`
}

type DetailResp struct {
	ShipmentResp
	RecipientCompany *string          `json:"recipient_company,omitempty"`
	RecipientPhone   string           `json:"recipient_phone"`
	RecipientEmail   *string          `json:"recipient_email,omitempty"`
	AddressLine1     string           `json:"address_line1"`
	AddressLine2     *string          `json:"address_line2,omitempty"`
	PostalCode       string           `json:"postal_code"`
	Country          string           `json:"country"`
	CarrierService   *string          `json:"carrier_service,omitempty"`
	ShippingCost     *float64         `json:"shipping_cost,omitempty"`
	LabelPath        *string          `json:"label_path,omitempty"`
	Items            []*ItemResp      `json:"items"`
	Declaration      *DeclarationResp `json:"declaration,omitempty"`
}

type ListReq struct {
	common.PageReq
	Status      string `form:"status"`
	RequestedBy string `form:"requested_by"`
}

type ProcessReq struct {
	UUID uuid.UUID `uri:"uuid" binding:"required"`
}

// SupplyUseReq 本次打包消耗的一种耗材。
type SupplyUseReq struct {
	SupplyUUID uuid.UUID `json:"supply_uuid" binding:"required"`
	Quantity   int64     `json:"quantity" binding:"required,gt=0"`
}

type ShipReq struct {
	UUID     uuid.UUID       `json:"-"`
	Weight   float64         `json:"weight" binding:"required,gt=0"`
	Service  string          `json:"service"`
	Supplies []*SupplyUseReq `json:"supplies"`
}

type ShipResp struct {
	ShipmentResp
	ShippingCost      float64    `json:"shipping_cost"`
	LabelPath         string     `json:"label_path"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}

type TrackReq struct {
	UUID uuid.UUID `uri:"uuid" binding:"required"`
}

type TrackResp struct {
	UUID              uuid.UUID            `json:"uuid"`
	Status            model.ShipmentStatus `json:"status"`
	TrackingStatus    string               `json:"tracking_status"`
	Location          string               `json:"location,omitempty"`
	EstimatedDelivery *time.Time           `json:"estimated_delivery,omitempty"`
	DeliveredAt       *time.Time           `json:"delivered_at,omitempty"`
}

type PrintLabelsReq struct {
	UUID uuid.UUID `uri:"uuid" binding:"required"`
}

type CustodyReq struct {
	UUID uuid.UUID `uri:"uuid" binding:"required"`
}

type CustodyEventResp struct {
	UUID      uuid.UUID              `json:"uuid"`
	EventType model.CustodyEventType `json:"event_type"`
	Actor     string                 `json:"actor"`
	Note      string                 `json:"note,omitempty"`
	Detail    datatypes.JSON         `json:"detail,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type CustodyResp struct {
	ShipmentNumber string              `json:"shipment_number"`
	Events         []*CustodyEventResp `json:"events"`
}
