package sample

import (
	// 外部依赖
	"time"

	datatypes "gorm.io/datatypes"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

type RegisterReq struct {
	LotNumber    string `json:"lot_number" binding:"required"`
	ChemicalName string `json:"chemical_name" binding:"required"`
	CAS          string `json:"cas"`
	Quantity     string `json:"quantity" binding:"required"`
	Unit         string `json:"unit"`
	Location     string `json:"location"`

	UNNumber           string `json:"un_number"`
	HazardClass        string `json:"hazard_class"`
	PackingGroup       string `json:"packing_group"`
	ProperShippingName string `json:"proper_shipping_name"`
}

type SampleResp struct {
	UUID         uuid.UUID          `json:"uuid"`
	LotNumber    string             `json:"lot_number"`
	ChemicalName string             `json:"chemical_name"`
	CAS          *string            `json:"cas,omitempty"`
	Quantity     string             `json:"quantity"`
	Total        float64            `json:"total"`
	Unit         string             `json:"unit"`
	Status       model.SampleStatus `json:"status"`
	Location     *string            `json:"location,omitempty"`
	IsHazmat     bool               `json:"is_hazmat"`
	UNNumber     *string            `json:"un_number,omitempty"`
	HazardClass  *string            `json:"hazard_class,omitempty"`
	ReceivedAt   *time.Time         `json:"received_at,omitempty"`
	ReceivedBy   string             `json:"received_by,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

type GetReq struct {
	UUID uuid.UUID `uri:"uuid" binding:"required"`
}

type QueryReq struct {
	common.PageReq
	Status     string `form:"status"`
	Name       string `form:"name"`
	LotNumber  string `form:"lot_number"`
	CAS        string `form:"cas"`
	HazmatOnly bool   `form:"hazmat_only"`
}

type ConsumeReq struct {
	UUID   uuid.UUID `json:"-"`
	Amount float64   `json:"amount" binding:"required,gt=0"`
	Note   string    `json:"note"`
}

type EventResp struct {
	UUID      uuid.UUID              `json:"uuid"`
	EventType model.CustodyEventType `json:"event_type"`
	Actor     string                 `json:"actor"`
	Note      string                 `json:"note,omitempty"`
	Detail    datatypes.JSON         `json:"detail,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
