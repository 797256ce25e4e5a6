package shipment

import (
	// 外部依赖
	"context"
	"errors"
	"strings"

	gorm "gorm.io/gorm"
	clause "gorm.io/gorm/clause"

	// 内部引用
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	db "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/db"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

type shipmentImpl struct {
	*db.Datastore
}

func New() repo.ShipmentRepo {
	return &shipmentImpl{Datastore: db.DB()}
}

func (s *shipmentImpl) CreateShipment(ctx context.Context, data *model.Shipment) error {
	if err := s.DBWithContext(ctx).Create(data).Error; err != nil {
		if isUniqueViolation(err) {
			// 发运单号按时间构造，撞号视为硬错误而不是静默覆盖
			return code.ShipmentConflictErr.WithErr(err)
		}
		logger.Errorf(ctx, "CreateShipment err: %+v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (s *shipmentImpl) CreateShipmentSamples(ctx context.Context, lines []*model.ShipmentSample) error {
	if len(lines) == 0 {
		return nil
	}
	if err := s.DBWithContext(ctx).Create(&lines).Error; err != nil {
		if isUniqueViolation(err) {
			return code.DuplicateSampleLineErr.WithErr(err)
		}
		logger.Errorf(ctx, "CreateShipmentSamples err: %+v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (s *shipmentImpl) GetShipmentByUUID(ctx context.Context, id uuid.UUID) (*model.Shipment, error) {
	data := &model.Shipment{}
	err := s.DBWithContext(ctx).Where("uuid = ?", id).First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ShipmentNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (s *shipmentImpl) GetShipmentForUpdate(ctx context.Context, id uuid.UUID) (*model.Shipment, error) {
	data := &model.Shipment{}
	err := s.DBWithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("uuid = ?", id).First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ShipmentNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (s *shipmentImpl) UpdateShipment(ctx context.Context, id int64, data map[string]any) error {
	res := s.DBWithContext(ctx).Model(&model.Shipment{}).Where("id = ?", id).Updates(data)
	if res.Error != nil {
		logger.Errorf(ctx, "UpdateShipment err: %+v", res.Error)
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.ShipmentNotFound
	}
	return nil
}

func (s *shipmentImpl) ListShipments(ctx context.Context, q repo.ShipmentQuery) ([]*model.Shipment, int64, error) {
	d := s.DBWithContext(ctx).Model(&model.Shipment{})

	if q.Status != nil {
		d = d.Where("status = ?", *q.Status)
	}
	if q.RequestedBy != nil && *q.RequestedBy != "" {
		d = d.Where("requested_by = ?", *q.RequestedBy)
	}

	var total int64
	if err := d.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	order := q.OrderBy
	if order == "" {
		order = "id desc"
	}
	if q.Limit == 0 {
		q.Limit = 20
	}

	list := make([]*model.Shipment, 0, q.Limit)
	if err := d.Order(order).Offset(q.Offset).Limit(q.Limit).Find(&list).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}

func (s *shipmentImpl) ListShippedWithTracking(ctx context.Context, limit int) ([]*model.Shipment, error) {
	if limit <= 0 {
		limit = 50
	}
	list := make([]*model.Shipment, 0, limit)
	err := s.DBWithContext(ctx).
		Where("status = ? AND tracking_number IS NOT NULL", model.ShipmentShipped).
		Order("shipped_at asc").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}

func (s *shipmentImpl) GetShipmentLines(ctx context.Context, shipmentID int64) ([]*repo.ShipmentLine, error) {
	var lines []*model.ShipmentSample
	if err := s.DBWithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}

	sampleIDs := make([]int64, 0, len(lines))
	for _, l := range lines {
		sampleIDs = append(sampleIDs, l.SampleID)
	}

	samples := make([]*model.Sample, 0, len(sampleIDs))
	if len(sampleIDs) > 0 {
		if err := s.DBWithContext(ctx).
			Where("id IN ?", sampleIDs).
			Find(&samples).Error; err != nil {
			return nil, code.QueryRecordErr.WithErr(err)
		}
	}

	byID := make(map[int64]*model.Sample, len(samples))
	for _, sm := range samples {
		byID[sm.ID] = sm
	}

	out := make([]*repo.ShipmentLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, &repo.ShipmentLine{Line: l, Sample: byID[l.SampleID]})
	}
	return out, nil
}

func (s *shipmentImpl) CreateDeclaration(ctx context.Context, data *model.DangerousGoodsDeclaration) error {
	if err := s.DBWithContext(ctx).Create(data).Error; err != nil {
		logger.Errorf(ctx, "CreateDeclaration err: %+v", err)
		return code.DeclarationCreateErr.WithErr(err)
	}
	return nil
}

func (s *shipmentImpl) GetDeclarationByShipmentID(ctx context.Context, shipmentID int64) (*model.DangerousGoodsDeclaration, error) {
	data := &model.DangerousGoodsDeclaration{}
	err := s.DBWithContext(ctx).Where("shipment_id = ?", shipmentID).First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.DeclarationNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (s *shipmentImpl) UpdateDeclaration(ctx context.Context, id int64, data map[string]any) error {
	res := s.DBWithContext(ctx).Model(&model.DangerousGoodsDeclaration{}).Where("id = ?", id).Updates(data)
	if res.Error != nil {
		logger.Errorf(ctx, "UpdateDeclaration err: %+v", res.Error)
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.DeclarationNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// pg 23505
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
