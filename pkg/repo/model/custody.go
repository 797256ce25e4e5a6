package model

import (
	datatypes "gorm.io/datatypes"
)

type CustodyEventType string

const (
	EventCreated           CustodyEventType = "created"
	EventProcessingStarted CustodyEventType = "processing_started"
	EventPacked            CustodyEventType = "packed"
	EventLabelGenerated    CustodyEventType = "label_generated"
	EventHazmatFlagged     CustodyEventType = "hazmat_flagged"
	EventStatusChanged     CustodyEventType = "status_changed"
	EventDelivered         CustodyEventType = "delivered"
	EventSampleReceived    CustodyEventType = "sample_received"
	EventSampleConsumed    CustodyEventType = "sample_consumed"
	EventLabelsPrinted     CustodyEventType = "dg_labels_printed"
)

// CustodyEvent 链式监管事件，只插入，任何路径不得更新或删除。
type CustodyEvent struct {
	BaseModel
	ShipmentID *int64           `gorm:"index:idx_custody_shipment" json:"shipment_id"`
	SampleID   *int64           `gorm:"index:idx_custody_sample" json:"sample_id"`
	EventType  CustodyEventType `gorm:"type:varchar(64);not null" json:"event_type"`
	Actor      string           `gorm:"type:varchar(120);not null" json:"actor"`
	Note       string           `gorm:"type:varchar(512)" json:"note"`
	Detail     datatypes.JSON   `gorm:"type:jsonb" json:"detail"`
}

func (*CustodyEvent) TableName() string { return "custody_event" }
