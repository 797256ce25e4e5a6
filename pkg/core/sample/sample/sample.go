package sample

import (
	// 外部依赖
	"context"
	"encoding/json"
	"fmt"
	"time"

	datatypes "gorm.io/datatypes"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	quantity "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/quantity"
	sample "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/sample"
	auth "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/auth"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
	custodyStore "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/custody"
	sStore "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/sample"
	utils "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/utils"
)

type sampleImpl struct {
	sampleStore  repo.SampleRepo
	custodyStore repo.CustodyRepo
}

func NewSample() sample.Service {
	return &sampleImpl{
		sampleStore:  sStore.New(),
		custodyStore: custodyStore.New(),
	}
}

// NewWithStores 供测试注入仓储实现。
func NewWithStores(sampleStore repo.SampleRepo, custodyStore repo.CustodyRepo) sample.Service {
	return &sampleImpl{sampleStore: sampleStore, custodyStore: custodyStore}
}

func (s *sampleImpl) Register(ctx context.Context, req *sample.RegisterReq) (*sample.SampleResp, error) {
	actor := auth.GetCurrentUser(ctx)
	if actor == nil {
		return nil, code.UnLogin
	}

	// 入库即校验数量串可解析，拒绝写入无法扣减的脏数据
	total, err := quantity.Total(req.Quantity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	data := &model.Sample{
		LotNumber:          req.LotNumber,
		ChemicalName:       req.ChemicalName,
		CAS:                optional(req.CAS),
		Quantity:           req.Quantity,
		Unit:               utils.Or(req.Unit, "g"),
		Status:             model.SampleActive,
		Location:           optional(req.Location),
		UNNumber:           optional(req.UNNumber),
		HazardClass:        optional(req.HazardClass),
		PackingGroup:       optional(req.PackingGroup),
		ProperShippingName: optional(req.ProperShippingName),
		ReceivedAt:         &now,
		ReceivedBy:         actor.Name,
	}

	err = s.sampleStore.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.sampleStore.CreateSample(txCtx, data); err != nil {
			return err
		}
		return s.appendSampleEvent(txCtx, data.ID, model.EventSampleReceived, actor.Name,
			fmt.Sprintf("lot %s received into inventory", data.LotNumber),
			map[string]any{"quantity": data.Quantity, "total": total, "unit": data.Unit})
	})
	if err != nil {
		logger.Errorf(ctx, "register sample fail lot: %s, err: %+v", req.LotNumber, err)
		return nil, err
	}
	return toSampleResp(data), nil
}

func (s *sampleImpl) Get(ctx context.Context, req *sample.GetReq) (*sample.SampleResp, error) {
	if auth.GetCurrentUser(ctx) == nil {
		return nil, code.UnLogin
	}
	data, err := s.sampleStore.GetSampleByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}
	return toSampleResp(data), nil
}

func (s *sampleImpl) Query(ctx context.Context, req *sample.QueryReq) (*common.PageResp[[]*sample.SampleResp], error) {
	if auth.GetCurrentUser(ctx) == nil {
		return nil, code.UnLogin
	}
	req.Normalize()

	q := repo.SampleQuery{
		HazmatOnly: req.HazmatOnly,
		Offset:     req.Offset(),
		Limit:      req.PageSize,
	}
	if req.Status != "" {
		st := model.SampleStatus(req.Status)
		q.Status = &st
	}
	if req.Name != "" {
		q.NameLike = &req.Name
	}
	if req.LotNumber != "" {
		q.LotNumber = &req.LotNumber
	}
	if req.CAS != "" {
		q.CAS = &req.CAS
	}

	rows, total, err := s.sampleStore.ListSamples(ctx, q)
	if err != nil {
		return nil, err
	}
	return &common.PageResp[[]*sample.SampleResp]{
		Data: utils.FilterSlice(rows, func(m *model.Sample) (*sample.SampleResp, bool) {
			return toSampleResp(m), true
		}),
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *sampleImpl) Consume(ctx context.Context, req *sample.ConsumeReq) (*sample.SampleResp, error) {
	actor := auth.GetCurrentUser(ctx)
	if actor == nil {
		return nil, code.UnLogin
	}

	var data *model.Sample
	err := s.sampleStore.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		data, err = s.sampleStore.GetSampleForUpdate(txCtx, req.UUID)
		if err != nil {
			return err
		}
		if data.Status != model.SampleActive {
			return code.SampleNotActiveErr.WithMsgf("lot %s is %s", data.LotNumber, data.Status)
		}

		debit, err := quantity.Debit(data.Quantity, req.Amount, data.Unit)
		if err != nil {
			return err
		}
		status := model.SampleActive
		if debit.Depleted {
			status = model.SampleDepleted
		}
		if err := s.sampleStore.UpdateQuantity(txCtx, data.ID, debit.Serialized, status); err != nil {
			return err
		}
		data.Quantity = debit.Serialized
		data.Status = status

		return s.appendSampleEvent(txCtx, data.ID, model.EventSampleConsumed, actor.Name,
			utils.Or(req.Note, fmt.Sprintf("consumed %s in-lab", quantity.Format(req.Amount, data.Unit))),
			map[string]any{"amount": req.Amount, "remaining": debit.Remaining})
	})
	if err != nil {
		logger.Errorf(ctx, "consume sample fail uuid: %s, err: %+v", req.UUID, err)
		return nil, err
	}
	return toSampleResp(data), nil
}

func (s *sampleImpl) Custody(ctx context.Context, req *sample.GetReq) ([]*sample.EventResp, error) {
	if auth.GetCurrentUser(ctx) == nil {
		return nil, code.UnLogin
	}
	data, err := s.sampleStore.GetSampleByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}
	events, err := s.custodyStore.ListBySample(ctx, data.ID)
	if err != nil {
		return nil, err
	}
	return utils.FilterSlice(events, func(ev *model.CustodyEvent) (*sample.EventResp, bool) {
		return &sample.EventResp{
			UUID:      ev.UUID,
			EventType: ev.EventType,
			Actor:     ev.Actor,
			Note:      ev.Note,
			Detail:    ev.Detail,
			CreatedAt: ev.CreatedAt,
		}, true
	}), nil
}

func (s *sampleImpl) appendSampleEvent(ctx context.Context,
	sampleID int64, eventType model.CustodyEventType, actor, note string, detail map[string]any,
) error {
	ev := &model.CustodyEvent{
		SampleID:  &sampleID,
		EventType: eventType,
		Actor:     actor,
		Note:      note,
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

func toSampleResp(m *model.Sample) *sample.SampleResp {
	total, _ := quantity.Total(m.Quantity)
	return &sample.SampleResp{
		UUID:         m.UUID,
		LotNumber:    m.LotNumber,
		ChemicalName: m.ChemicalName,
		CAS:          m.CAS,
		Quantity:     m.Quantity,
		Total:        total,
		Unit:         m.Unit,
		Status:       m.Status,
		Location:     m.Location,
		IsHazmat:     m.IsHazmat(),
		UNNumber:     m.UNNumber,
		HazardClass:  m.HazardClass,
		ReceivedAt:   m.ReceivedAt,
		ReceivedBy:   m.ReceivedBy,
		CreatedAt:    m.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
