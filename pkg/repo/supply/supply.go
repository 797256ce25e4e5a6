package supply

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

type supplyImpl struct {
	*db.Datastore
}

func New() repo.SupplyRepo {
	return &supplyImpl{Datastore: db.DB()}
}

func (s *supplyImpl) CreateSupply(ctx context.Context, data *model.ShippingSupply) error {
	if err := s.DBWithContext(ctx).Create(data).Error; err != nil {
		logger.Errorf(ctx, "CreateSupply err: %+v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (s *supplyImpl) GetSupplyByUUID(ctx context.Context, id uuid.UUID) (*model.ShippingSupply, error) {
	data := &model.ShippingSupply{}
	err := s.DBWithContext(ctx).Where("uuid = ?", id).First(data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.SupplyNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return data, nil
}

func (s *supplyImpl) ListSupplies(ctx context.Context, q repo.SupplyQuery) ([]*model.ShippingSupply, int64, error) {
	d := s.DBWithContext(ctx).Model(&model.ShippingSupply{})

	if q.Category != nil && *q.Category != "" {
		d = d.Where("category = ?", *q.Category)
	}
	if q.LowStockOnly {
		d = d.Where("count <= low_stock_threshold")
	}

	var total int64
	if err := d.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	order := q.OrderBy
	if order == "" {
		order = "name asc"
	}
	if q.Limit == 0 {
		q.Limit = 50
	}

	list := make([]*model.ShippingSupply, 0, q.Limit)
	if err := d.Order(order).Offset(q.Offset).Limit(q.Limit).Find(&list).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}

// ConsumeSupply 单条语句完成充足性判断与扣减，RETURNING 取回新值，
// 避免读后写竞争导致库存为负。
func (s *supplyImpl) ConsumeSupply(ctx context.Context, id uuid.UUID, qty int64) (int64, int64, int64, error) {
	if qty <= 0 {
		return 0, 0, 0, code.ParamErr.WithMsg("consume quantity must be positive")
	}

	updated := &model.ShippingSupply{}
	res := s.DBWithContext(ctx).Model(updated).
		Clauses(clause.Returning{}).
		Where("uuid = ? AND count >= ?", id, qty).
		UpdateColumn("count", gorm.Expr("count - ?", qty))
	if res.Error != nil {
		logger.Errorf(ctx, "ConsumeSupply err: %+v", res.Error)
		return 0, 0, 0, code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		// 可能是不存在，也可能是库存不足，区分后报错
		if _, err := s.GetSupplyByUUID(ctx, id); err != nil {
			return 0, 0, 0, err
		}
		return 0, 0, 0, code.InsufficientSupplyErr
	}

	after := updated.Count
	return after + qty, after, updated.ID, nil
}

func (s *supplyImpl) RestockSupply(ctx context.Context, id uuid.UUID, qty int64) (int64, int64, int64, error) {
	if qty <= 0 {
		return 0, 0, 0, code.ParamErr.WithMsg("restock quantity must be positive")
	}

	updated := &model.ShippingSupply{}
	res := s.DBWithContext(ctx).Model(updated).
		Clauses(clause.Returning{}).
		Where("uuid = ?", id).
		UpdateColumn("count", gorm.Expr("count + ?", qty))
	if res.Error != nil {
		logger.Errorf(ctx, "RestockSupply err: %+v", res.Error)
		return 0, 0, 0, code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, 0, 0, code.SupplyNotFound
	}

	after := updated.Count
	return after - qty, after, updated.ID, nil
}

func (s *supplyImpl) CreateSupplyTransaction(ctx context.Context, data *model.SupplyTransaction) error {
	if err := s.DBWithContext(ctx).Create(data).Error; err != nil {
		logger.Errorf(ctx, "CreateSupplyTransaction err: %+v", err)
		return code.SupplyTransactionErr.WithErr(err)
	}
	return nil
}

func (s *supplyImpl) ListSupplyTransactions(ctx context.Context, supplyID int64, offset, limit int) ([]*model.SupplyTransaction, int64, error) {
	d := s.DBWithContext(ctx).Model(&model.SupplyTransaction{}).Where("supply_id = ?", supplyID)

	var total int64
	if err := d.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}

	if limit == 0 {
		limit = 50
	}
	list := make([]*model.SupplyTransaction, 0, limit)
	if err := d.Order("id desc").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}
