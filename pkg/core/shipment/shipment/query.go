package shipment

import (
	// 外部依赖
	"context"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	shipment "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/shipment"
	auth "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/auth"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
	utils "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/utils"
)

func (s *shipmentImpl) Get(ctx context.Context, req *shipment.GetReq) (*shipment.DetailResp, error) {
	if auth.GetCurrentUser(ctx) == nil {
		return nil, code.UnLogin
	}

	data, err := s.shipmentStore.GetShipmentByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}
	lines, err := s.shipmentStore.GetShipmentLines(ctx, data.ID)
	if err != nil {
		return nil, err
	}

	resp := &shipment.DetailResp{
		ShipmentResp:     *toShipmentResp(data),
		RecipientCompany: data.RecipientCompany,
		RecipientPhone:   data.RecipientPhone,
		RecipientEmail:   data.RecipientEmail,
		AddressLine1:     data.AddressLine1,
		AddressLine2:     data.AddressLine2,
		PostalCode:       data.PostalCode,
		Country:          data.Country,
		CarrierService:   data.CarrierService,
		ShippingCost:     data.ShippingCost,
		LabelPath:        data.LabelPath,
		Items: utils.FilterSlice(lines, func(ln *repo.ShipmentLine) (*shipment.ItemResp, bool) {
			return &shipment.ItemResp{
				SampleUUID:   ln.Sample.UUID,
				LotNumber:    ln.Sample.LotNumber,
				ChemicalName: ln.Sample.ChemicalName,
				Amount:       ln.Line.QuantityRequested,
				Unit:         ln.Line.Unit,
			}, true
		}),
	}

	if data.RequiresDeclaration {
		decl, err := s.shipmentStore.GetDeclarationByShipmentID(ctx, data.ID)
		if err == nil {
			resp.Declaration = &shipment.DeclarationResp{
				UNNumber:           decl.UNNumber,
				ProperShippingName: decl.ProperShippingName,
				HazardClass:        decl.HazardClass,
				PackingGroup:       decl.PackingGroup,
				PackagingType:      decl.PackagingType,
				Quantity:           decl.Quantity,
				Unit:               decl.Unit,
				LabelsRequired:     decl.LabelsRequired,
				LabelsPrinted:      decl.LabelsPrinted,
				PrintedBy:          decl.PrintedBy,
				PrintedAt:          decl.PrintedAt,
			}
		} else if !code.DeclarationNotFound.Is(err) {
			return nil, err
		}
	}
	return resp, nil
}

func (s *shipmentImpl) List(ctx context.Context, req *shipment.ListReq) (*common.PageResp[[]*shipment.ShipmentResp], error) {
	if auth.GetCurrentUser(ctx) == nil {
		return nil, code.UnLogin
	}
	req.Normalize()

	q := repo.ShipmentQuery{
		Offset: req.Offset(),
		Limit:  req.PageSize,
	}
	if req.Status != "" {
		st := model.ShipmentStatus(req.Status)
		q.Status = &st
	}
	if req.RequestedBy != "" {
		q.RequestedBy = &req.RequestedBy
	}

	rows, total, err := s.shipmentStore.ListShipments(ctx, q)
	if err != nil {
		return nil, err
	}
	return &common.PageResp[[]*shipment.ShipmentResp]{
		Data: utils.FilterSlice(rows, func(m *model.Shipment) (*shipment.ShipmentResp, bool) {
			return toShipmentResp(m), true
		}),
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *shipmentImpl) Custody(ctx context.Context, req *shipment.CustodyReq) (*shipment.CustodyResp, error) {
	if auth.GetCurrentUser(ctx) == nil {
		return nil, code.UnLogin
	}

	data, err := s.shipmentStore.GetShipmentByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}
	events, err := s.custodyStore.ListByShipment(ctx, data.ID)
	if err != nil {
		return nil, err
	}

	return &shipment.CustodyResp{
		ShipmentNumber: data.ShipmentNumber,
		Events: utils.FilterSlice(events, func(ev *model.CustodyEvent) (*shipment.CustodyEventResp, bool) {
			return &shipment.CustodyEventResp{
				UUID:      ev.UUID,
				EventType: ev.EventType,
				Actor:     ev.Actor,
				Note:      ev.Note,
				Detail:    ev.Detail,
				CreatedAt: ev.CreatedAt,
			}, true
		}),
	}, nil
}
