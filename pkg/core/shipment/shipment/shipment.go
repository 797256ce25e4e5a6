package shipment

import (
	// 外部依赖
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	datatypes "gorm.io/datatypes"

	// 内部引用
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	hazmat "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/hazmat"
	notify "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify"
	quantity "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/quantity"
	shipment "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/shipment"
	auth "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/auth"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
	custodyStore "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/custody"
	sStore "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/sample"
	shipStore "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/shipment"
	supplyStore "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/supply"
	utils "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/utils"
)

const (
	maxItemsPerShipment = 10
	numberPrefix        = "TLS"
)

type shipmentImpl struct {
	sampleStore   repo.SampleRepo
	shipmentStore repo.ShipmentRepo
	supplyStore   repo.SupplyRepo
	custodyStore  repo.CustodyRepo
	carrier       repo.Carrier
	msgCenter     notify.MsgCenter
}

func NewShipment(carrier repo.Carrier, msgCenter notify.MsgCenter) shipment.Service {
	return &shipmentImpl{
		sampleStore:   sStore.New(),
		shipmentStore: shipStore.New(),
		supplyStore:   supplyStore.New(),
		custodyStore:  custodyStore.New(),
		carrier:       carrier,
		msgCenter:     msgCenter,
	}
}

// NewWithStores 供测试注入仓储实现。
func NewWithStores(
	sampleStore repo.SampleRepo,
	shipmentStore repo.ShipmentRepo,
	supplyStore repo.SupplyRepo,
	custodyStore repo.CustodyRepo,
	carrier repo.Carrier,
	msgCenter notify.MsgCenter,
) shipment.Service {
	return &shipmentImpl{
		sampleStore:   sampleStore,
		shipmentStore: shipmentStore,
		supplyStore:   supplyStore,
		custodyStore:  custodyStore,
		carrier:       carrier,
		msgCenter:     msgCenter,
	}
}

func (s *shipmentImpl) Create(ctx context.Context, req *shipment.CreateReq) (*shipment.CreateResp, error) {
	actor := auth.GetCurrentUser(ctx)
	if actor == nil {
		return nil, code.UnLogin
	}

	if err := validateItems(req.Items); err != nil {
		return nil, err
	}
	addr, err := resolveAddress(&req.Address)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.RecipientPhone) == "" {
		return nil, code.ShipmentPhoneErr
	}

	// 地址校验是尽力而为：承运商返回修正地址则采纳，
	// 服务不可用不阻塞建单。严禁放进下面的事务里。
	s.correctAddress(ctx, req.RecipientName, req.RecipientPhone, addr)

	data := &model.Shipment{
		Status:           model.ShipmentInitiated,
		RecipientName:    req.RecipientName,
		RecipientCompany: optional(req.RecipientCompany),
		RecipientPhone:   req.RecipientPhone,
		RecipientEmail:   optional(req.RecipientEmail),
		AddressLine1:     addr.Line1,
		AddressLine2:     optional(addr.Line2),
		City:             addr.City,
		State:            addr.State,
		PostalCode:       addr.PostalCode,
		Country:          utils.Or(addr.Country, "US"),
		CarrierService:   optional(req.CarrierService),
		RequestedBy:      actor.Name,
	}

	items := make([]*shipment.ItemResp, 0, len(req.Items))
	err = s.shipmentStore.ExecTx(ctx, func(txCtx context.Context) error {
		type debitPlan struct {
			sample *model.Sample
			req    *shipment.ItemReq
			debit  *quantity.DebitResult
		}

		plans := make([]*debitPlan, 0, len(req.Items))
		attrs := make([]hazmat.Attributes, 0, len(req.Items))
		var aggregate float64
		for i := range req.Items {
			item := &req.Items[i]
			sample, err := s.sampleStore.GetSampleForUpdate(txCtx, item.SampleUUID)
			if err != nil {
				return err
			}
			if sample.Status != model.SampleActive {
				return code.SampleNotActiveErr.WithMsgf("lot %s is %s", sample.LotNumber, sample.Status)
			}

			debit, err := quantity.Debit(sample.Quantity, item.Amount, sample.Unit)
			if err != nil {
				// 错误信息点名批号，方便申请人定位是哪一行不满足
				var c *code.Code
				if errors.As(err, &c) {
					return c.WithMsgf("lot %s: %s", sample.LotNumber, c.Msg)
				}
				return err
			}

			plans = append(plans, &debitPlan{sample: sample, req: item, debit: debit})
			attrs = append(attrs, hazmat.Effective(sampleAttributes(sample), hazmat.Attributes{
				UNNumber:           item.UNNumber,
				HazardClass:        item.HazardClass,
				PackingGroup:       item.PackingGroup,
				ProperShippingName: item.ProperShippingName,
			}))
			aggregate += item.Amount
		}

		cls := hazmat.Classify(attrs, aggregate)
		data.AmountShipped = aggregate
		data.Unit = utils.Or(plans[0].sample.Unit, hazmat.DefaultUnit)
		data.IsHazmat = cls.IsHazmat
		data.RequiresDeclaration = cls.RequiresDeclaration
		data.ShipmentNumber = newShipmentNumber(time.Now().UTC())

		if err := s.shipmentStore.CreateShipment(txCtx, data); err != nil {
			return err
		}

		lines := make([]*model.ShipmentSample, 0, len(plans))
		for _, p := range plans {
			lines = append(lines, &model.ShipmentSample{
				ShipmentID:        data.ID,
				SampleID:          p.sample.ID,
				QuantityRequested: p.req.Amount,
				Unit:              p.sample.Unit,
			})
		}
		if err := s.shipmentStore.CreateShipmentSamples(txCtx, lines); err != nil {
			return err
		}

		for _, p := range plans {
			status := model.SampleActive
			if p.debit.Depleted {
				status = model.SampleDepleted
			}
			if err := s.sampleStore.UpdateQuantity(txCtx, p.sample.ID, p.debit.Serialized, status); err != nil {
				return err
			}
			items = append(items, &shipment.ItemResp{
				SampleUUID:   p.sample.UUID,
				LotNumber:    p.sample.LotNumber,
				ChemicalName: p.sample.ChemicalName,
				Amount:       p.req.Amount,
				Unit:         p.sample.Unit,
			})
		}

		if err := s.appendEvent(txCtx, data.ID, nil, model.EventCreated, actor.Name,
			fmt.Sprintf("shipment %s created with %d sample(s)", data.ShipmentNumber, len(plans)),
			map[string]any{"amount": aggregate, "unit": data.Unit}); err != nil {
			return err
		}
		if cls.IsHazmat {
			detail := map[string]any{"aggregate": aggregate, "threshold": hazmat.VolumeThreshold}
			if len(cls.Regulated) > 0 {
				detail["un_number"] = cls.Regulated[0].UNNumber
				detail["hazard_class"] = cls.Regulated[0].HazardClass
			}
			if err := s.appendEvent(txCtx, data.ID, nil, model.EventHazmatFlagged, actor.Name,
				"shipment classified as dangerous goods", detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Errorf(ctx, "create shipment fail err: %+v", err)
		return nil, err
	}

	s.broadcast(ctx, notify.ShipmentCreated, data, actor.Name)

	return &shipment.CreateResp{
		ShipmentResp: *toShipmentResp(data),
		Items:        items,
	}, nil
}

func validateItems(items []shipment.ItemReq) error {
	if len(items) == 0 || len(items) > maxItemsPerShipment {
		return code.ShipmentItemLimitErr.WithMsgf("shipment must contain 1 to %d samples, got %d",
			maxItemsPerShipment, len(items))
	}
	seen := make(map[uuid.UUID]struct{}, len(items))
	for i := range items {
		if items[i].Amount <= 0 {
			return code.ParamErr.WithMsg("item amount must be positive")
		}
		if _, ok := seen[items[i].SampleUUID]; ok {
			return code.DuplicateSampleLineErr.WithMsg(items[i].SampleUUID.String())
		}
		seen[items[i].SampleUUID] = struct{}{}
	}
	return nil
}

// resolveAddress 结构化字段优先；仅有旧格式整串时按
// "line1, city, state zip[, country]" 尽力拆分。
func resolveAddress(req *shipment.AddressReq) (*shipment.AddressReq, error) {
	if req.Line1 != "" && req.City != "" && req.State != "" && req.PostalCode != "" {
		out := *req
		return &out, nil
	}
	if strings.TrimSpace(req.Legacy) == "" {
		return nil, code.ShipmentAddressErr.WithMsg("structured address or legacy address line required")
	}

	parts := strings.Split(req.Legacy, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 {
		return nil, code.ShipmentAddressErr.WithMsgf("cannot parse legacy address %q", req.Legacy)
	}

	out := &shipment.AddressReq{Line1: parts[0], City: parts[1]}
	stateZip := strings.Fields(parts[2])
	if len(stateZip) < 2 {
		return nil, code.ShipmentAddressErr.WithMsgf("cannot parse state and postal code from %q", parts[2])
	}
	out.State = stateZip[0]
	out.PostalCode = stateZip[1]
	if len(parts) > 3 {
		out.Country = parts[3]
	}
	return out, nil
}

func (s *shipmentImpl) correctAddress(ctx context.Context, name, phone string, addr *shipment.AddressReq) {
	res, err := s.carrier.ValidateAddress(ctx, &repo.CarrierAddress{
		Name:       name,
		Phone:      phone,
		Line1:      addr.Line1,
		Line2:      addr.Line2,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
	})
	if err != nil {
		logger.Warnf(ctx, "address validate unavailable, keep as submitted err: %+v", err)
		return
	}
	if res.Corrected == nil {
		return
	}
	addr.Line1 = res.Corrected.Line1
	addr.Line2 = res.Corrected.Line2
	addr.City = res.Corrected.City
	addr.State = res.Corrected.State
	addr.PostalCode = res.Corrected.PostalCode
	addr.Country = res.Corrected.Country
}

// newShipmentNumber TLS-<UTC 时间戳>-<3 位毫秒>。
// 同秒并发建单靠唯一索引兜底，冲突返回 code.ShipmentConflictErr。
func newShipmentNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%03d", numberPrefix, now.Format("20060102150405"), now.Nanosecond()/1e6)
}

func sampleAttributes(m *model.Sample) hazmat.Attributes {
	return hazmat.Attributes{
		UNNumber:           utils.PtrVal(m.UNNumber),
		HazardClass:        utils.PtrVal(m.HazardClass),
		PackingGroup:       utils.PtrVal(m.PackingGroup),
		ProperShippingName: utils.PtrVal(m.ProperShippingName),
	}
}

func (s *shipmentImpl) appendEvent(ctx context.Context,
	shipmentID int64, sampleID *int64,
	eventType model.CustodyEventType, actor, note string, detail map[string]any,
) error {
	ev := &model.CustodyEvent{
		ShipmentID: &shipmentID,
		SampleID:   sampleID,
		EventType:  eventType,
		Actor:      actor,
		Note:       note,
	}
	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			return code.CustodyAppendErr.WithErr(err)
		}
		ev.Detail = datatypes.JSON(raw)
	}
	return s.custodyStore.Append(ctx, ev)
}

// broadcast 事务提交后的尽力通知，失败只记日志。
func (s *shipmentImpl) broadcast(ctx context.Context, action notify.Action, data *model.Shipment, actor string) {
	if s.msgCenter == nil {
		return
	}
	msg := &notify.SendMsg{
		Channel:        action,
		ShipmentUUID:   data.UUID,
		ShipmentNumber: data.ShipmentNumber,
		Status:         string(data.Status),
		Actor:          actor,
	}
	utils.SafelyGo(func() {
		if err := s.msgCenter.Broadcast(context.WithoutCancel(ctx), msg); err != nil {
			logger.Warnf(ctx, "broadcast %s fail err: %+v", action, err)
		}
	}, func(err error) {
		logger.Errorf(ctx, "broadcast %s panic err: %+v", action, err)
	})
}

func toShipmentResp(m *model.Shipment) *shipment.ShipmentResp {
	return &shipment.ShipmentResp{
		UUID:           m.UUID,
		ShipmentNumber: m.ShipmentNumber,
		Status:         m.Status,
		AmountShipped:  m.AmountShipped,
		Unit:           m.Unit,
		RecipientName:  m.RecipientName,
		City:           m.City,
		State:          m.State,
		IsHazmat:       m.IsHazmat,
		TrackingNumber: m.TrackingNumber,
		RequestedBy:    m.RequestedBy,
		ProcessedBy:    m.ProcessedBy,
		ShippedAt:      m.ShippedAt,
		DeliveredAt:    m.DeliveredAt,
		CreatedAt:      m.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
