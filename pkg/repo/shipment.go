package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

// ShipmentQuery 过滤条件
type ShipmentQuery struct {
	Status      *model.ShipmentStatus
	RequestedBy *string
	OrderBy     string
	Offset      int
	Limit       int
}

// ShipmentLine 发运行及其样品主数据。
type ShipmentLine struct {
	Line   *model.ShipmentSample
	Sample *model.Sample
}

type ShipmentRepo interface {
	TxExecutor

	CreateShipment(ctx context.Context, data *model.Shipment) error
	CreateShipmentSamples(ctx context.Context, lines []*model.ShipmentSample) error
	GetShipmentByUUID(ctx context.Context, id uuid.UUID) (*model.Shipment, error)
	// GetShipmentForUpdate 行级锁读取，履约状态推进时使用，必须在事务内调用。
	GetShipmentForUpdate(ctx context.Context, id uuid.UUID) (*model.Shipment, error)
	// UpdateShipment 按字段更新，data 只包含需要更新的列。
	UpdateShipment(ctx context.Context, id int64, data map[string]any) error
	ListShipments(ctx context.Context, q ShipmentQuery) ([]*model.Shipment, int64, error)
	// ListShippedWithTracking 轨迹轮询 worker 的扫描查询。
	ListShippedWithTracking(ctx context.Context, limit int) ([]*model.Shipment, error)
	GetShipmentLines(ctx context.Context, shipmentID int64) ([]*ShipmentLine, error)

	CreateDeclaration(ctx context.Context, data *model.DangerousGoodsDeclaration) error
	GetDeclarationByShipmentID(ctx context.Context, shipmentID int64) (*model.DangerousGoodsDeclaration, error)
	UpdateDeclaration(ctx context.Context, id int64, data map[string]any) error
}
