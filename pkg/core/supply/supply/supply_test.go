package supply

import (
	// 外部依赖
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	supply "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/supply"
	auth "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/auth"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

type memStore struct {
	supplies map[uuid.UUID]*model.ShippingSupply
	txs      []*model.SupplyTransaction
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{supplies: map[uuid.UUID]*model.ShippingSupply{}}
}

func (db *memStore) ExecTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (db *memStore) CreateSupply(_ context.Context, data *model.ShippingSupply) error {
	db.nextID++
	data.ID = db.nextID
	data.UUID = uuid.NewV4()
	data.CreatedAt = time.Now()
	db.supplies[data.UUID] = data
	return nil
}

func (db *memStore) GetSupplyByUUID(_ context.Context, id uuid.UUID) (*model.ShippingSupply, error) {
	if m, ok := db.supplies[id]; ok {
		c := *m
		return &c, nil
	}
	return nil, code.SupplyNotFound
}

func (db *memStore) ListSupplies(_ context.Context, q repo.SupplyQuery) ([]*model.ShippingSupply, int64, error) {
	out := []*model.ShippingSupply{}
	for _, m := range db.supplies {
		if q.LowStockOnly && m.Count > m.LowStockThreshold {
			continue
		}
		if q.Category != nil && m.Category != *q.Category {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	return out, int64(len(out)), nil
}

func (db *memStore) ConsumeSupply(_ context.Context, id uuid.UUID, qty int64) (int64, int64, int64, error) {
	m, ok := db.supplies[id]
	if !ok {
		return 0, 0, 0, code.SupplyNotFound
	}
	if m.Count < qty {
		return 0, 0, 0, code.InsufficientSupplyErr
	}
	before := m.Count
	m.Count -= qty
	return before, m.Count, m.ID, nil
}

func (db *memStore) RestockSupply(_ context.Context, id uuid.UUID, qty int64) (int64, int64, int64, error) {
	m, ok := db.supplies[id]
	if !ok {
		return 0, 0, 0, code.SupplyNotFound
	}
	before := m.Count
	m.Count += qty
	return before, m.Count, m.ID, nil
}

func (db *memStore) CreateSupplyTransaction(_ context.Context, data *model.SupplyTransaction) error {
	db.nextID++
	data.ID = db.nextID
	data.UUID = uuid.NewV4()
	data.CreatedAt = time.Now()
	db.txs = append(db.txs, data)
	return nil
}

func (db *memStore) ListSupplyTransactions(_ context.Context, supplyID int64, offset, limit int) ([]*model.SupplyTransaction, int64, error) {
	out := []*model.SupplyTransaction{}
	for _, m := range db.txs {
		if m.SupplyID == supplyID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, int64(len(out)), nil
}

func newSvc() (supply.Service, *memStore) {
	db := newMemStore()
	return NewWithStores(db, nil), db
}

func logisticsCtx() context.Context {
	return auth.WithActor(context.Background(), &auth.Actor{ID: "u1", Name: "carol", Role: common.Logistics})
}

func requesterCtx() context.Context {
	return auth.WithActor(context.Background(), &auth.Actor{ID: "u2", Name: "bob", Role: common.Requester})
}

func assertCode(t *testing.T, err error, want *code.Code) {
	t.Helper()
	require.Error(t, err)
	var c *code.Code
	require.True(t, errors.As(err, &c), "err: %v", err)
	assert.Equal(t, want.Value, c.Value, "err: %v", err)
}

func TestCreateLedgersInitialStock(t *testing.T) {
	svc, db := newSvc()

	resp, err := svc.Create(logisticsCtx(), &supply.CreateReq{
		Name: "small box", Count: 25, LowStockThreshold: 5,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 25, resp.Count)
	assert.False(t, resp.LowStock)
	assert.Equal(t, "packaging", resp.Category)

	// 初始库存也入台账，count 可由流水复算
	require.Len(t, db.txs, 1)
	assert.EqualValues(t, 25, db.txs[0].Delta)
	assert.EqualValues(t, 0, db.txs[0].CountBefore)
	assert.EqualValues(t, 25, db.txs[0].CountAfter)
	assert.Equal(t, "initial stock", db.txs[0].Note)
}

func TestCreateZeroCountSkipsLedger(t *testing.T) {
	svc, db := newSvc()

	resp, err := svc.Create(logisticsCtx(), &supply.CreateReq{Name: "cold pack", LowStockThreshold: 3})
	require.NoError(t, err)
	assert.True(t, resp.LowStock)
	assert.Empty(t, db.txs)
}

func TestCreateRoleGate(t *testing.T) {
	svc, _ := newSvc()

	_, err := svc.Create(requesterCtx(), &supply.CreateReq{Name: "box"})
	assertCode(t, err, code.Forbidden)
}

func TestRestock(t *testing.T) {
	svc, db := newSvc()
	created, err := svc.Create(logisticsCtx(), &supply.CreateReq{Name: "vial rack", Count: 2, LowStockThreshold: 5})
	require.NoError(t, err)

	resp, err := svc.Restock(logisticsCtx(), &supply.RestockReq{UUID: created.UUID, Quantity: 10, Note: "PO-1187"})
	require.NoError(t, err)
	assert.EqualValues(t, 12, resp.Count)
	assert.False(t, resp.LowStock)

	require.Len(t, db.txs, 2)
	last := db.txs[1]
	assert.EqualValues(t, 10, last.Delta)
	assert.EqualValues(t, 2, last.CountBefore)
	assert.EqualValues(t, 12, last.CountAfter)
	assert.Equal(t, "PO-1187", last.Note)
}

func TestRestockUnknownSupply(t *testing.T) {
	svc, _ := newSvc()

	_, err := svc.Restock(logisticsCtx(), &supply.RestockReq{UUID: uuid.NewV4(), Quantity: 1})
	assertCode(t, err, code.SupplyNotFound)
}

func TestQueryLowStockOnly(t *testing.T) {
	svc, _ := newSvc()
	_, err := svc.Create(logisticsCtx(), &supply.CreateReq{Name: "box", Count: 100, LowStockThreshold: 5})
	require.NoError(t, err)
	_, err = svc.Create(logisticsCtx(), &supply.CreateReq{Name: "labels", Count: 3, LowStockThreshold: 5})
	require.NoError(t, err)

	page, err := svc.Query(logisticsCtx(), &supply.QueryReq{LowStockOnly: true})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, "labels", page.Data[0].Name)
	assert.True(t, page.Data[0].LowStock)
}

func TestTransactionsHistory(t *testing.T) {
	svc, _ := newSvc()
	created, err := svc.Create(logisticsCtx(), &supply.CreateReq{Name: "dry ice", Count: 4, LowStockThreshold: 2})
	require.NoError(t, err)
	_, err = svc.Restock(logisticsCtx(), &supply.RestockReq{UUID: created.UUID, Quantity: 6})
	require.NoError(t, err)

	page, err := svc.Transactions(logisticsCtx(), &supply.TransactionsReq{UUID: created.UUID})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	assert.Equal(t, "initial stock", page.Data[0].Note)
	assert.Equal(t, "restock", page.Data[1].Note)
}
