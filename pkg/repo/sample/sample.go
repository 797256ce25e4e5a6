package sample

import (
	// 外部依赖
	"context"
	"errors"

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

type sampleImpl struct {
	*db.Datastore
}

func New() repo.SampleRepo {
	return &sampleImpl{Datastore: db.DB()}
}

func (s *sampleImpl) CreateSample(ctx context.Context, data *model.Sample) error {
	if err := s.DBWithContext(ctx).Create(data).Error; err != nil {
		logger.Errorf(ctx, "CreateSample err: %+v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (s *sampleImpl) GetSampleByUUID(ctx context.Context, id uuid.UUID) (*model.Sample, error) {
	data := &model.Sample{}
	err := s.DBWithContext(ctx).Where("uuid = ?", id).First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.SampleNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (s *sampleImpl) GetSampleByLot(ctx context.Context, lotNumber string) (*model.Sample, error) {
	data := &model.Sample{}
	err := s.DBWithContext(ctx).Where("lot_number = ?", lotNumber).First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.SampleNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

// GetSampleForUpdate 加 FOR UPDATE 行锁，封堵并发发运对同一样品的读改写竞争。
func (s *sampleImpl) GetSampleForUpdate(ctx context.Context, id uuid.UUID) (*model.Sample, error) {
	data := &model.Sample{}
	err := s.DBWithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("uuid = ?", id).First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.SampleNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (s *sampleImpl) UpdateQuantity(ctx context.Context, id int64, quantity string, status model.SampleStatus) error {
	res := s.DBWithContext(ctx).Model(&model.Sample{}).
		Where("id = ?", id).
		Updates(map[string]any{"quantity": quantity, "status": status})
	if res.Error != nil {
		logger.Errorf(ctx, "UpdateQuantity err: %+v", res.Error)
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.SampleNotFound
	}
	return nil
}

func (s *sampleImpl) ListSamples(ctx context.Context, q repo.SampleQuery) ([]*model.Sample, int64, error) {
	d := s.DBWithContext(ctx).Model(&model.Sample{})

	if q.Status != nil {
		d = d.Where("status = ?", *q.Status)
	}
	if q.NameLike != nil && *q.NameLike != "" {
		d = d.Where("chemical_name ILIKE ?", "%"+*q.NameLike+"%")
	}
	if q.LotNumber != nil && *q.LotNumber != "" {
		d = d.Where("lot_number = ?", *q.LotNumber)
	}
	if q.CAS != nil && *q.CAS != "" {
		d = d.Where("cas = ?", *q.CAS)
	}
	if q.HazmatOnly {
		d = d.Where("(un_number IS NOT NULL AND un_number <> '') OR (hazard_class IS NOT NULL AND hazard_class <> '')")
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

	list := make([]*model.Sample, 0, q.Limit)
	if err := d.Order(order).Offset(q.Offset).Limit(q.Limit).Find(&list).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}
