package shipment

import (
	// 外部依赖
	"context"
	"fmt"
	"time"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	hazmat "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/hazmat"
	notify "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify"
	shipment "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/shipment"
	auth "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/auth"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
	utils "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/utils"
)

func fulfillActor(ctx context.Context) (*auth.Actor, error) {
	actor := auth.GetCurrentUser(ctx)
	if actor == nil {
		return nil, code.UnLogin
	}
	if !common.CanFulfill(actor.Role) {
		return nil, code.Forbidden.WithMsgf("role %s cannot run fulfillment transitions", actor.Role)
	}
	return actor, nil
}

func (s *shipmentImpl) StartProcessing(ctx context.Context, req *shipment.ProcessReq) (*shipment.ShipmentResp, error) {
	actor, err := fulfillActor(ctx)
	if err != nil {
		return nil, err
	}

	var data *model.Shipment
	err = s.shipmentStore.ExecTx(ctx, func(txCtx context.Context) error {
		data, err = s.shipmentStore.GetShipmentForUpdate(txCtx, req.UUID)
		if err != nil {
			return err
		}
		// 重复认领按幂等处理，不追加事件
		if data.Status == model.ShipmentProcessing {
			return nil
		}
		if !data.Status.NotYetProcessed() {
			return code.ShipmentStateErr.WithMsgf("cannot start processing from %s", data.Status)
		}

		if err := s.shipmentStore.UpdateShipment(txCtx, data.ID, map[string]any{
			"status":       model.ShipmentProcessing,
			"processed_by": actor.Name,
		}); err != nil {
			return err
		}
		data.Status = model.ShipmentProcessing
		data.ProcessedBy = &actor.Name

		return s.appendEvent(txCtx, data.ID, nil, model.EventProcessingStarted, actor.Name,
			fmt.Sprintf("shipment %s claimed for processing", data.ShipmentNumber), nil)
	})
	if err != nil {
		logger.Errorf(ctx, "start processing fail uuid: %s, err: %+v", req.UUID, err)
		return nil, err
	}
	return toShipmentResp(data), nil
}

func (s *shipmentImpl) MarkShipped(ctx context.Context, req *shipment.ShipReq) (*shipment.ShipResp, error) {
	actor, err := fulfillActor(ctx)
	if err != nil {
		return nil, err
	}

	// 预检不落锁：面单一旦生成就退不回去，先把明显的状态错误挡在承运商调用之前。
	data, err := s.shipmentStore.GetShipmentByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}
	if data.Status != model.ShipmentProcessing {
		return nil, code.ShipmentStateErr.WithMsgf("cannot ship from %s", data.Status)
	}

	var hz *repo.HazmatDetails
	var dgAttrs hazmat.Attributes
	if data.IsHazmat {
		dgAttrs, err = s.declarationAttributes(ctx, data)
		if err != nil {
			return nil, err
		}
		hz = &repo.HazmatDetails{
			UNNumber:           dgAttrs.UNNumber,
			ProperShippingName: dgAttrs.ProperShippingName,
			HazardClass:        dgAttrs.HazardClass,
			PackingGroup:       dgAttrs.PackingGroup,
		}
	}

	to := &repo.CarrierAddress{
		Name:       data.RecipientName,
		Phone:      data.RecipientPhone,
		Line1:      data.AddressLine1,
		Line2:      utils.PtrVal(data.AddressLine2),
		City:       data.City,
		State:      data.State,
		PostalCode: data.PostalCode,
		Country:    data.Country,
	}
	service := utils.Or(req.Service, utils.PtrVal(data.CarrierService))

	// 承运商调用在事务之外：外部副作用先行，数据库落账在后。
	// 先询价再出面单，询价失败说明承运商侧不可用，不再往下走。
	// 事务失败会留下一张孤儿面单，按可重试处理，绝不反过来。
	quote, err := s.carrier.QuoteRate(ctx, &repo.RateRequest{
		To:      to,
		Weight:  req.Weight,
		Service: service,
	})
	if err != nil {
		logger.Errorf(ctx, "quote rate fail shipment: %s, err: %+v", data.ShipmentNumber, err)
		return nil, err
	}

	label, err := s.carrier.GenerateLabel(ctx, &repo.LabelRequest{
		To:      to,
		Weight:  req.Weight,
		Service: service,
		Hazmat:  hz,
	})
	if err != nil {
		logger.Errorf(ctx, "generate label fail shipment: %s, err: %+v", data.ShipmentNumber, err)
		return nil, err
	}
	if label.Cost > quote.Rate {
		logger.Warnf(ctx, "label cost %.2f exceeds quoted rate %.2f shipment: %s",
			label.Cost, quote.Rate, data.ShipmentNumber)
	}

	now := time.Now()
	err = s.shipmentStore.ExecTx(ctx, func(txCtx context.Context) error {
		locked, err := s.shipmentStore.GetShipmentForUpdate(txCtx, req.UUID)
		if err != nil {
			return err
		}
		// 预检到此刻之间可能被并发推进，加锁后再验一次
		if locked.Status != model.ShipmentProcessing {
			return code.ShipmentStateErr.WithMsgf("cannot ship from %s", locked.Status)
		}

		for _, use := range req.Supplies {
			before, after, supplyID, err := s.supplyStore.ConsumeSupply(txCtx, use.SupplyUUID, use.Quantity)
			if err != nil {
				return err
			}
			if err := s.supplyStore.CreateSupplyTransaction(txCtx, &model.SupplyTransaction{
				SupplyID:    supplyID,
				ShipmentID:  &locked.ID,
				Delta:       -use.Quantity,
				CountBefore: before,
				CountAfter:  after,
				Actor:       actor.Name,
				Note:        fmt.Sprintf("consumed for shipment %s", locked.ShipmentNumber),
			}); err != nil {
				return err
			}
		}

		if locked.IsHazmat {
			if err := s.ensureDeclaration(txCtx, locked, dgAttrs); err != nil {
				return err
			}
		}

		if err := s.shipmentStore.UpdateShipment(txCtx, locked.ID, map[string]any{
			"status":          model.ShipmentShipped,
			"tracking_number": label.TrackingNumber,
			"carrier_service": utils.Or(req.Service, utils.PtrVal(locked.CarrierService)),
			"shipping_cost":   label.Cost,
			"label_path":      label.LabelURL,
			"shipped_at":      now,
		}); err != nil {
			return err
		}

		if err := s.appendEvent(txCtx, locked.ID, nil, model.EventPacked, actor.Name,
			fmt.Sprintf("packed with %d supply type(s), weight %.3f", len(req.Supplies), req.Weight), nil); err != nil {
			return err
		}
		if err := s.appendEvent(txCtx, locked.ID, nil, model.EventLabelGenerated, actor.Name,
			fmt.Sprintf("carrier label generated, tracking %s", label.TrackingNumber),
			map[string]any{"cost": label.Cost, "quoted_rate": quote.Rate, "label_url": label.LabelURL}); err != nil {
			return err
		}

		data = locked
		data.Status = model.ShipmentShipped
		data.TrackingNumber = &label.TrackingNumber
		data.ShippingCost = &label.Cost
		data.LabelPath = &label.LabelURL
		data.ShippedAt = &now
		return nil
	})
	if err != nil {
		logger.Errorf(ctx, "mark shipped fail shipment: %s, err: %+v", data.ShipmentNumber, err)
		return nil, err
	}

	s.broadcast(ctx, notify.ShipmentFulfilled, data, actor.Name)
	s.notifyLowSupplies(ctx, req.Supplies, actor.Name)

	return &shipment.ShipResp{
		ShipmentResp:      *toShipmentResp(data),
		ShippingCost:      label.Cost,
		LabelPath:         label.LabelURL,
		EstimatedDelivery: label.EstimatedDelivery,
	}, nil
}

// notifyLowSupplies 打包扣减后检查耗材水位，低于阈值的广播提醒。
func (s *shipmentImpl) notifyLowSupplies(ctx context.Context, uses []*shipment.SupplyUseReq, actor string) {
	if s.msgCenter == nil {
		return
	}
	for _, use := range uses {
		sup, err := s.supplyStore.GetSupplyByUUID(ctx, use.SupplyUUID)
		if err != nil || sup.Count > sup.LowStockThreshold {
			continue
		}
		msg := &notify.SendMsg{
			Channel: notify.SupplyLowStock,
			Actor:   actor,
			Data: map[string]any{
				"supply":    sup.Name,
				"count":     sup.Count,
				"threshold": sup.LowStockThreshold,
			},
		}
		utils.SafelyGo(func() {
			if err := s.msgCenter.Broadcast(context.WithoutCancel(ctx), msg); err != nil {
				logger.Warnf(ctx, "broadcast low stock fail supply: %s, err: %+v", sup.Name, err)
			}
		}, func(err error) {
			logger.Errorf(ctx, "broadcast low stock panic err: %+v", err)
		})
	}
}

// declarationAttributes 申报属性来源：已有申报单优先，
// 否则取第一条受管制发运行的有效属性，全单无管制行（纯体积触发）时给兜底描述。
func (s *shipmentImpl) declarationAttributes(ctx context.Context, data *model.Shipment) (hazmat.Attributes, error) {
	decl, err := s.shipmentStore.GetDeclarationByShipmentID(ctx, data.ID)
	if err == nil {
		return hazmat.Attributes{
			UNNumber:           decl.UNNumber,
			HazardClass:        decl.HazardClass,
			PackingGroup:       decl.PackingGroup,
			ProperShippingName: decl.ProperShippingName,
		}, nil
	}
	if !code.DeclarationNotFound.Is(err) {
		return hazmat.Attributes{}, err
	}

	lines, err := s.shipmentStore.GetShipmentLines(ctx, data.ID)
	if err != nil {
		return hazmat.Attributes{}, err
	}
	for _, ln := range lines {
		attrs := sampleAttributes(ln.Sample)
		if attrs.Regulated() {
			return attrs, nil
		}
	}
	return hazmat.Attributes{
		ProperShippingName: "Chemicals, n.o.s.",
		HazardClass:        "9",
	}, nil
}

func (s *shipmentImpl) ensureDeclaration(ctx context.Context, data *model.Shipment, attrs hazmat.Attributes) error {
	_, err := s.shipmentStore.GetDeclarationByShipmentID(ctx, data.ID)
	if err == nil {
		return nil
	}
	if !code.DeclarationNotFound.Is(err) {
		return err
	}
	return s.shipmentStore.CreateDeclaration(ctx, &model.DangerousGoodsDeclaration{
		ShipmentID:         data.ID,
		UNNumber:           attrs.UNNumber,
		ProperShippingName: attrs.ProperShippingName,
		HazardClass:        attrs.HazardClass,
		PackingGroup:       attrs.PackingGroup,
		Quantity:           data.AmountShipped,
		Unit:               data.Unit,
		LabelsRequired:     true,
	})
}

func (s *shipmentImpl) MarkLabelsPrinted(ctx context.Context, req *shipment.PrintLabelsReq) error {
	actor, err := fulfillActor(ctx)
	if err != nil {
		return err
	}

	data, err := s.shipmentStore.GetShipmentByUUID(ctx, req.UUID)
	if err != nil {
		return err
	}
	if !data.IsHazmat {
		return code.ShipmentStateErr.WithMsg("shipment is not dangerous goods")
	}

	return s.shipmentStore.ExecTx(ctx, func(txCtx context.Context) error {
		decl, err := s.shipmentStore.GetDeclarationByShipmentID(txCtx, data.ID)
		if err != nil {
			return err
		}
		if decl.LabelsPrinted {
			return nil
		}

		now := time.Now()
		if err := s.shipmentStore.UpdateDeclaration(txCtx, decl.ID, map[string]any{
			"labels_printed": true,
			"printed_by":     actor.Name,
			"printed_at":     now,
		}); err != nil {
			return err
		}
		return s.appendEvent(txCtx, data.ID, nil, model.EventLabelsPrinted, actor.Name,
			fmt.Sprintf("DG warning labels printed for %s", data.ShipmentNumber),
			map[string]any{"un_number": decl.UNNumber, "hazard_class": decl.HazardClass})
	})
}
