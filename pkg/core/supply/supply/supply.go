package supply

import (
	// 外部依赖
	"context"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	notify "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify"
	supply "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/supply"
	auth "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/auth"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
	supplyStore "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/supply"
	utils "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/utils"
)

type supplyImpl struct {
	supplyStore repo.SupplyRepo
	msgCenter   notify.MsgCenter
}

func NewSupply(msgCenter notify.MsgCenter) supply.Service {
	return &supplyImpl{
		supplyStore: supplyStore.New(),
		msgCenter:   msgCenter,
	}
}

// NewWithStores 供测试注入仓储实现。
func NewWithStores(store repo.SupplyRepo, msgCenter notify.MsgCenter) supply.Service {
	return &supplyImpl{supplyStore: store, msgCenter: msgCenter}
}

func (s *supplyImpl) Create(ctx context.Context, req *supply.CreateReq) (*supply.SupplyResp, error) {
	actor := auth.GetCurrentUser(ctx)
	if actor == nil {
		return nil, code.UnLogin
	}
	if !common.CanFulfill(actor.Role) {
		return nil, code.Forbidden
	}

	data := &model.ShippingSupply{
		Name:              req.Name,
		Category:          utils.Or(req.Category, "packaging"),
		Count:             req.Count,
		LowStockThreshold: req.LowStockThreshold,
		Unit:              utils.Or(req.Unit, "each"),
	}
	err := s.supplyStore.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.supplyStore.CreateSupply(txCtx, data); err != nil {
			return err
		}
		if req.Count == 0 {
			return nil
		}
		// 初始库存也走台账，保证 count 可由流水复算
		return s.supplyStore.CreateSupplyTransaction(txCtx, &model.SupplyTransaction{
			SupplyID:    data.ID,
			Delta:       req.Count,
			CountBefore: 0,
			CountAfter:  req.Count,
			Actor:       actor.Name,
			Note:        "initial stock",
		})
	})
	if err != nil {
		logger.Errorf(ctx, "create supply fail name: %s, err: %+v", req.Name, err)
		return nil, err
	}
	return toSupplyResp(data), nil
}

func (s *supplyImpl) Query(ctx context.Context, req *supply.QueryReq) (*common.PageResp[[]*supply.SupplyResp], error) {
	if auth.GetCurrentUser(ctx) == nil {
		return nil, code.UnLogin
	}
	req.Normalize()

	q := repo.SupplyQuery{
		LowStockOnly: req.LowStockOnly,
		Offset:       req.Offset(),
		Limit:        req.PageSize,
	}
	if req.Category != "" {
		q.Category = &req.Category
	}

	rows, total, err := s.supplyStore.ListSupplies(ctx, q)
	if err != nil {
		return nil, err
	}
	return &common.PageResp[[]*supply.SupplyResp]{
		Data: utils.FilterSlice(rows, func(m *model.ShippingSupply) (*supply.SupplyResp, bool) {
			return toSupplyResp(m), true
		}),
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *supplyImpl) Restock(ctx context.Context, req *supply.RestockReq) (*supply.SupplyResp, error) {
	actor := auth.GetCurrentUser(ctx)
	if actor == nil {
		return nil, code.UnLogin
	}
	if !common.CanFulfill(actor.Role) {
		return nil, code.Forbidden
	}

	var data *model.ShippingSupply
	err := s.supplyStore.ExecTx(ctx, func(txCtx context.Context) error {
		before, after, supplyID, err := s.supplyStore.RestockSupply(txCtx, req.UUID, req.Quantity)
		if err != nil {
			return err
		}
		if err := s.supplyStore.CreateSupplyTransaction(txCtx, &model.SupplyTransaction{
			SupplyID:    supplyID,
			Delta:       req.Quantity,
			CountBefore: before,
			CountAfter:  after,
			Actor:       actor.Name,
			Note:        utils.Or(req.Note, "restock"),
		}); err != nil {
			return err
		}
		data, err = s.supplyStore.GetSupplyByUUID(txCtx, req.UUID)
		return err
	})
	if err != nil {
		logger.Errorf(ctx, "restock supply fail uuid: %s, err: %+v", req.UUID, err)
		return nil, err
	}
	// 补货不足以回到阈值之上时继续提醒
	s.notifyLowStock(ctx, data, actor.Name)
	return toSupplyResp(data), nil
}

func (s *supplyImpl) Transactions(ctx context.Context, req *supply.TransactionsReq) (*common.PageResp[[]*supply.TransactionResp], error) {
	if auth.GetCurrentUser(ctx) == nil {
		return nil, code.UnLogin
	}
	req.Normalize()

	data, err := s.supplyStore.GetSupplyByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.supplyStore.ListSupplyTransactions(ctx, data.ID, req.Offset(), req.PageSize)
	if err != nil {
		return nil, err
	}
	return &common.PageResp[[]*supply.TransactionResp]{
		Data: utils.FilterSlice(rows, func(m *model.SupplyTransaction) (*supply.TransactionResp, bool) {
			return &supply.TransactionResp{
				UUID:        m.UUID,
				Delta:       m.Delta,
				CountBefore: m.CountBefore,
				CountAfter:  m.CountAfter,
				Actor:       m.Actor,
				Note:        m.Note,
				CreatedAt:   m.CreatedAt,
			}, true
		}),
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// notifyLowStock 库存处于阈值之下时广播提醒，高于阈值为空操作。
func (s *supplyImpl) notifyLowStock(ctx context.Context, data *model.ShippingSupply, actor string) {
	if s.msgCenter == nil || data.Count > data.LowStockThreshold {
		return
	}
	msg := &notify.SendMsg{
		Channel: notify.SupplyLowStock,
		Actor:   actor,
		Data: map[string]any{
			"supply":    data.Name,
			"count":     data.Count,
			"threshold": data.LowStockThreshold,
		},
	}
	utils.SafelyGo(func() {
		if err := s.msgCenter.Broadcast(context.WithoutCancel(ctx), msg); err != nil {
			logger.Warnf(ctx, "broadcast low stock fail supply: %s, err: %+v", data.Name, err)
		}
	}, func(err error) {
		logger.Errorf(ctx, "broadcast low stock panic err: %+v", err)
	})
}

func toSupplyResp(m *model.ShippingSupply) *supply.SupplyResp {
	return &supply.SupplyResp{
		UUID:              m.UUID,
		Name:              m.Name,
		Category:          m.Category,
		Count:             m.Count,
		LowStockThreshold: m.LowStockThreshold,
		LowStock:          m.Count <= m.LowStockThreshold,
		Unit:              m.Unit,
		CreatedAt:         m.CreatedAt,
	}
}
