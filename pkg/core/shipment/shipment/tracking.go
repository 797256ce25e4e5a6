package shipment

import (
	// 外部依赖
	"context"
	"time"

	// 内部引用
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	notify "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify"
	shipment "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/shipment"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

func (s *shipmentImpl) PollTracking(ctx context.Context, req *shipment.TrackReq) (*shipment.TrackResp, error) {
	actor, err := fulfillActor(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.shipmentStore.GetShipmentByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}

	// 已送达的单子不再打承运商接口，直接回终态
	if data.Status == model.ShipmentDelivered {
		return &shipment.TrackResp{
			UUID:           data.UUID,
			Status:         data.Status,
			TrackingStatus: repo.TrackingStatusDelivered,
			DeliveredAt:    data.DeliveredAt,
		}, nil
	}
	if data.Status != model.ShipmentShipped {
		return nil, code.ShipmentStateErr.WithMsgf("shipment %s has not been shipped", data.ShipmentNumber)
	}
	if data.TrackingNumber == nil || *data.TrackingNumber == "" {
		return nil, code.ShipmentTrackingErr.WithMsgf("shipment %s has no tracking number", data.ShipmentNumber)
	}

	// 承运商查询在事务之外
	info, err := s.carrier.GetTracking(ctx, *data.TrackingNumber)
	if err != nil {
		logger.Errorf(ctx, "get tracking fail shipment: %s, err: %+v", data.ShipmentNumber, err)
		return nil, err
	}

	resp := &shipment.TrackResp{
		UUID:              data.UUID,
		Status:            data.Status,
		TrackingStatus:    info.Status,
		Location:          info.Location,
		EstimatedDelivery: info.EstimatedDelivery,
	}
	if info.Status != repo.TrackingStatusDelivered {
		return resp, nil
	}

	now := time.Now()
	applied := false
	var raced *model.Shipment
	err = s.shipmentStore.ExecTx(ctx, func(txCtx context.Context) error {
		locked, err := s.shipmentStore.GetShipmentForUpdate(txCtx, req.UUID)
		if err != nil {
			return err
		}
		// 并发轮询下只允许一次 shipped -> delivered 落账
		if locked.Status != model.ShipmentShipped {
			raced = locked
			return nil
		}
		if err := s.shipmentStore.UpdateShipment(txCtx, locked.ID, map[string]any{
			"status":       model.ShipmentDelivered,
			"delivered_at": now,
		}); err != nil {
			return err
		}
		applied = true
		return s.appendEvent(txCtx, locked.ID, nil, model.EventDelivered, actor.Name,
			"carrier reported delivery", map[string]any{"location": info.Location})
	})
	if err != nil {
		logger.Errorf(ctx, "mark delivered fail shipment: %s, err: %+v", data.ShipmentNumber, err)
		return nil, err
	}

	// 并发轮询已抢先落账时回库里的真实状态与时间，不重复广播
	if !applied {
		resp.Status = raced.Status
		resp.DeliveredAt = raced.DeliveredAt
		return resp, nil
	}

	data.Status = model.ShipmentDelivered
	data.DeliveredAt = &now
	s.broadcast(ctx, notify.ShipmentDelivered, data, actor.Name)

	resp.Status = model.ShipmentDelivered
	resp.DeliveredAt = &now
	return resp, nil
}
