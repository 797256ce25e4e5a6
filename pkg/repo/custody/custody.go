package custody

import (
	// 外部依赖
	"context"

	// 内部引用
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	db "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/db"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

type custodyImpl struct {
	*db.Datastore
}

func New() repo.CustodyRepo {
	return &custodyImpl{Datastore: db.DB()}
}

func (c *custodyImpl) Append(ctx context.Context, event *model.CustodyEvent) error {
	if err := c.DBWithContext(ctx).Create(event).Error; err != nil {
		logger.Errorf(ctx, "Append custody event err: %+v", err)
		return code.CustodyAppendErr.WithErr(err)
	}
	return nil
}

// ListByShipment 按时间升序返回，保证事件历史可按因果重建。
func (c *custodyImpl) ListByShipment(ctx context.Context, shipmentID int64) ([]*model.CustodyEvent, error) {
	var events []*model.CustodyEvent
	err := c.DBWithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("created_at asc, id asc").
		Find(&events).Error
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return events, nil
}

func (c *custodyImpl) ListBySample(ctx context.Context, sampleID int64) ([]*model.CustodyEvent, error) {
	var events []*model.CustodyEvent
	err := c.DBWithContext(ctx).
		Where("sample_id = ?", sampleID).
		Order("created_at asc, id asc").
		Find(&events).Error
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return events, nil
}
