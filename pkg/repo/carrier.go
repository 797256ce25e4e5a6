package repo

import (
	// 外部依赖
	"context"
	"time"
)

// 承运商侧的归一化轨迹状态。
const (
	TrackingStatusInTransit = "in_transit"
	TrackingStatusDelivered = "delivered"
	TrackingStatusException = "exception"
)

type CarrierAddress struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type AddressValidation struct {
	Valid     bool            `json:"valid"`
	Corrected *CarrierAddress `json:"corrected,omitempty"`
}

type RateRequest struct {
	To      *CarrierAddress `json:"to"`
	Weight  float64         `json:"weight"`
	Service string          `json:"service"`
}

type RateQuote struct {
	Rate float64 `json:"rate"`
}

type HazmatDetails struct {
	UNNumber           string `json:"un_number"`
	ProperShippingName string `json:"proper_shipping_name"`
	HazardClass        string `json:"hazard_class"`
	PackingGroup       string `json:"packing_group"`
}

type LabelRequest struct {
	To      *CarrierAddress `json:"to"`
	Weight  float64         `json:"weight"`
	Service string          `json:"service"`
	Hazmat  *HazmatDetails  `json:"hazmat,omitempty"`
}

type Label struct {
	TrackingNumber    string     `json:"tracking_number"`
	LabelURL          string     `json:"label_url"`
	Cost              float64    `json:"cost"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

type TrackingInfo struct {
	Status            string     `json:"status"`
	Location          string     `json:"location"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

// Carrier 外部承运商集成。所有调用都是可失败的同步请求，
// 调用方必须把失败视为可重试且不得在数据库事务内发起。
type Carrier interface {
	ValidateAddress(ctx context.Context, addr *CarrierAddress) (*AddressValidation, error)
	QuoteRate(ctx context.Context, req *RateRequest) (*RateQuote, error)
	GenerateLabel(ctx context.Context, req *LabelRequest) (*Label, error)
	GetTracking(ctx context.Context, trackingNumber string) (*TrackingInfo, error)
}
