package notify

import (
	"context"

	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
)

type Action string

const (
	ShipmentCreated   Action = "shipment-created"
	ShipmentFulfilled Action = "shipment-fulfilled"
	ShipmentDelivered Action = "shipment-delivered"
	SupplyLowStock    Action = "supply-low-stock"
)

type SendMsg struct {
	Channel        Action    `json:"action"`
	ShipmentUUID   uuid.UUID `json:"shipment_uuid"`
	ShipmentNumber string    `json:"shipment_number"`
	Status         string    `json:"status"`
	Actor          string    `json:"actor"`
	Data           any       `json:"data"`
	UUID           uuid.UUID `json:"uuid"`
	Timestamp      int64     `json:"timestamp"`
}

type HandleFunc func(ctx context.Context, msg string) error

type MsgCenter interface {
	Registry(ctx context.Context, msgName Action, handleFunc HandleFunc) error
	Broadcast(ctx context.Context, msg *SendMsg) error
	Close(ctx context.Context) error
}
