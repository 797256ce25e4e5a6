package shipment

import (
	// 外部依赖
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// 内部引用
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	shipment "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/shipment"
	auth "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/auth"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	fake "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/carrier/fake"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
	utils "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/utils"
)

type fixture struct {
	db      *memDB
	carrier *fake.FakeCarrier
	svc     shipment.Service
}

func newFixture() *fixture {
	db := newMemDB()
	fc := fake.New()
	svc := NewWithStores(
		&memSampleRepo{db}, &memShipmentRepo{db}, &memSupplyRepo{db}, &memCustodyRepo{db},
		fc, nil,
	)
	return &fixture{db: db, carrier: fc, svc: svc}
}

func staffCtx() context.Context {
	return auth.WithActor(context.Background(), &auth.Actor{ID: "u1", Name: "alice", Role: common.LabStaff})
}

func requesterCtx() context.Context {
	return auth.WithActor(context.Background(), &auth.Actor{ID: "u2", Name: "bob", Role: common.Requester})
}

func (f *fixture) seedSample(lot, qty string, hazmat bool) *model.Sample {
	m := &model.Sample{
		LotNumber:    lot,
		ChemicalName: "Methanol Reference",
		Quantity:     qty,
		Unit:         "g",
		Status:       model.SampleActive,
	}
	if hazmat {
		m.UNNumber = utils.Ptr("UN1230")
		m.HazardClass = utils.Ptr("3")
		m.PackingGroup = utils.Ptr("II")
		m.ProperShippingName = utils.Ptr("Methanol")
	}
	return f.db.addSample(m)
}

func (f *fixture) seedSupply(name string, count int64) *model.ShippingSupply {
	return f.db.addSupply(&model.ShippingSupply{Name: name, Count: count, LowStockThreshold: 2})
}

func goodAddress() shipment.AddressReq {
	return shipment.AddressReq{
		Line1: "400 Summit Dr", City: "Burlington", State: "NC", PostalCode: "27215",
	}
}

func (f *fixture) createReq(items ...shipment.ItemReq) *shipment.CreateReq {
	return &shipment.CreateReq{
		RecipientName:  "Dr. Chen",
		RecipientPhone: "555-0100",
		Address:        goodAddress(),
		Items:          items,
	}
}

func eventTypes(events []*model.CustodyEvent) []model.CustodyEventType {
	out := make([]model.CustodyEventType, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.EventType)
	}
	return out
}

func assertCode(t *testing.T, err error, want *code.Code) {
	t.Helper()
	require.Error(t, err)
	var c *code.Code
	require.True(t, errors.As(err, &c), "err: %v", err)
	assert.Equal(t, want.Value, c.Value, "err: %v", err)
}

func TestCreateShipment(t *testing.T) {
	f := newFixture()
	s := f.seedSample("L-001", "12.86g", false)

	resp, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 2.86},
	))
	require.NoError(t, err)

	assert.Equal(t, model.ShipmentInitiated, resp.Status)
	assert.True(t, strings.HasPrefix(resp.ShipmentNumber, "TLS-"))
	assert.Equal(t, "bob", resp.RequestedBy)
	assert.False(t, resp.IsHazmat)
	assert.InDelta(t, 2.86, resp.AmountShipped, 1e-9)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "L-001", resp.Items[0].LotNumber)

	assert.Equal(t, "10g", f.db.samples[s.UUID].Quantity)
	assert.Equal(t, model.SampleActive, f.db.samples[s.UUID].Status)

	stored := f.db.shipments[resp.UUID]
	require.NotNil(t, stored)
	evs, _ := (&memCustodyRepo{f.db}).ListByShipment(context.Background(), stored.ID)
	assert.Equal(t, []model.CustodyEventType{model.EventCreated}, eventTypes(evs))
}

func TestCreateMixedOutcomeLots(t *testing.T) {
	f := newFixture()
	a := f.seedSample("L-A", "5g", false)
	b := f.seedSample("L-B", "2g", false)

	resp, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: a.UUID, Amount: 3},
		shipment.ItemReq{SampleUUID: b.UUID, Amount: 2},
	))
	require.NoError(t, err)
	assert.InDelta(t, 5, resp.AmountShipped, 1e-9)
	require.Len(t, resp.Items, 2)

	// 同一单内部分扣减与扣空并存，互不影响
	assert.Equal(t, "2g", f.db.samples[a.UUID].Quantity)
	assert.Equal(t, model.SampleActive, f.db.samples[a.UUID].Status)
	assert.Equal(t, "0", f.db.samples[b.UUID].Quantity)
	assert.Equal(t, model.SampleDepleted, f.db.samples[b.UUID].Status)
}

func TestCreateDepletesSample(t *testing.T) {
	f := newFixture()
	s := f.seedSample("L-002", "5g", false)

	_, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 5},
	))
	require.NoError(t, err)
	assert.Equal(t, model.SampleDepleted, f.db.samples[s.UUID].Status)
	assert.Equal(t, "0", f.db.samples[s.UUID].Quantity)
}

func TestCreateHazmatByAttribute(t *testing.T) {
	f := newFixture()
	s := f.seedSample("L-003", "10g", true)

	resp, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 1},
	))
	require.NoError(t, err)
	assert.True(t, resp.IsHazmat)

	stored := f.db.shipments[resp.UUID]
	assert.True(t, stored.RequiresDeclaration)
	evs, _ := (&memCustodyRepo{f.db}).ListByShipment(context.Background(), stored.ID)
	assert.Equal(t, []model.CustodyEventType{model.EventCreated, model.EventHazmatFlagged}, eventTypes(evs))
}

func TestCreateHazmatByVolume(t *testing.T) {
	f := newFixture()
	a := f.seedSample("L-004", "100g", false)
	b := f.seedSample("L-005", "100g", false)

	resp, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: a.UUID, Amount: 15},
		shipment.ItemReq{SampleUUID: b.UUID, Amount: 15},
	))
	require.NoError(t, err)
	assert.True(t, resp.IsHazmat, "aggregate 30 reaches the volume threshold")
}

func TestCreateBelowVolumeThresholdNotHazmat(t *testing.T) {
	f := newFixture()
	s := f.seedSample("L-006", "100g", false)

	resp, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 29.999},
	))
	require.NoError(t, err)
	assert.False(t, resp.IsHazmat)
}

func TestCreateLineOverrideTriggersHazmat(t *testing.T) {
	f := newFixture()
	s := f.seedSample("L-007", "10g", false)

	resp, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 1, UNNumber: "UN1993"},
	))
	require.NoError(t, err)
	assert.True(t, resp.IsHazmat)
}

func TestCreateInsufficientRollsBackAllDebits(t *testing.T) {
	f := newFixture()
	a := f.seedSample("L-010", "10g", false)
	b := f.seedSample("L-011", "1g", false)

	_, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: a.UUID, Amount: 5},
		shipment.ItemReq{SampleUUID: b.UUID, Amount: 5},
	))
	assertCode(t, err, code.InsufficientQuantityErr)
	assert.Contains(t, err.Error(), "L-011")

	// 任何一行失败整单回滚，第一行不能留下扣减
	assert.Equal(t, "10g", f.db.samples[a.UUID].Quantity)
	assert.Equal(t, "1g", f.db.samples[b.UUID].Quantity)
	assert.Empty(t, f.db.shipments)
	assert.Empty(t, f.db.events)
}

func TestCreateUnparseableQuantityFailsClosed(t *testing.T) {
	f := newFixture()
	s := f.seedSample("L-012", "on request", false)

	_, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 1},
	))
	assertCode(t, err, code.InvalidQuantityFormat)
	assert.Empty(t, f.db.shipments)
}

func TestCreateItemLimit(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(requesterCtx(), f.createReq())
	assertCode(t, err, code.ShipmentItemLimitErr)

	items := make([]shipment.ItemReq, 11)
	for i := range items {
		s := f.seedSample("L-1"+string(rune('a'+i)), "100g", false)
		items[i] = shipment.ItemReq{SampleUUID: s.UUID, Amount: 1}
	}
	_, err = f.svc.Create(requesterCtx(), f.createReq(items...))
	assertCode(t, err, code.ShipmentItemLimitErr)
}

func TestCreateDuplicateSampleLine(t *testing.T) {
	f := newFixture()
	s := f.seedSample("L-013", "10g", false)

	_, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 1},
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 2},
	))
	assertCode(t, err, code.DuplicateSampleLineErr)
}

func TestCreateInactiveSample(t *testing.T) {
	f := newFixture()
	s := f.seedSample("L-014", "0", false)
	f.db.samples[s.UUID].Status = model.SampleDepleted

	_, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 1},
	))
	assertCode(t, err, code.SampleNotActiveErr)
}

func TestCreateCorrectedAddressAdopted(t *testing.T) {
	f := newFixture()
	f.carrier.Corrected = &repo.CarrierAddress{
		Line1: "400 SUMMIT DR", City: "BURLINGTON", State: "NC", PostalCode: "27215-0001", Country: "US",
	}
	s := f.seedSample("L-015", "10g", false)

	resp, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 1},
	))
	require.NoError(t, err)
	assert.Equal(t, "27215-0001", f.db.shipments[resp.UUID].PostalCode)
}

func TestCreateValidationOutageDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.carrier.ValidateErr = code.CarrierServiceErr
	s := f.seedSample("L-016", "10g", false)

	_, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 1},
	))
	require.NoError(t, err)
}

func TestCreateRequiresLogin(t *testing.T) {
	f := newFixture()
	s := f.seedSample("L-017", "10g", false)

	_, err := f.svc.Create(context.Background(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 1},
	))
	assertCode(t, err, code.UnLogin)
}

func TestResolveLegacyAddress(t *testing.T) {
	addr, err := resolveAddress(&shipment.AddressReq{Legacy: "400 Summit Dr, Burlington, NC 27215, US"})
	require.NoError(t, err)
	assert.Equal(t, "400 Summit Dr", addr.Line1)
	assert.Equal(t, "Burlington", addr.City)
	assert.Equal(t, "NC", addr.State)
	assert.Equal(t, "27215", addr.PostalCode)
	assert.Equal(t, "US", addr.Country)

	_, err = resolveAddress(&shipment.AddressReq{Legacy: "somewhere"})
	assertCode(t, err, code.ShipmentAddressErr)

	_, err = resolveAddress(&shipment.AddressReq{})
	assertCode(t, err, code.ShipmentAddressErr)
}

func (f *fixture) createShipment(t *testing.T, hazmat bool) *shipment.CreateResp {
	t.Helper()
	s := f.seedSample("L-S-"+t.Name(), "100g", hazmat)
	resp, err := f.svc.Create(requesterCtx(), f.createReq(
		shipment.ItemReq{SampleUUID: s.UUID, Amount: 5},
	))
	require.NoError(t, err)
	return resp
}

func TestStartProcessing(t *testing.T) {
	f := newFixture()
	created := f.createShipment(t, false)

	resp, err := f.svc.StartProcessing(staffCtx(), &shipment.ProcessReq{UUID: created.UUID})
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentProcessing, resp.Status)
	require.NotNil(t, resp.ProcessedBy)
	assert.Equal(t, "alice", *resp.ProcessedBy)

	// 重复认领幂等，不追加事件
	_, err = f.svc.StartProcessing(staffCtx(), &shipment.ProcessReq{UUID: created.UUID})
	require.NoError(t, err)

	evs, _ := (&memCustodyRepo{f.db}).ListByShipment(context.Background(), f.db.shipments[created.UUID].ID)
	assert.Equal(t, []model.CustodyEventType{model.EventCreated, model.EventProcessingStarted}, eventTypes(evs))
}

func TestStartProcessingRoleGate(t *testing.T) {
	f := newFixture()
	created := f.createShipment(t, false)

	_, err := f.svc.StartProcessing(requesterCtx(), &shipment.ProcessReq{UUID: created.UUID})
	assertCode(t, err, code.Forbidden)
}

func TestMarkShipped(t *testing.T) {
	f := newFixture()
	created := f.createShipment(t, false)
	box := f.seedSupply("small box", 10)
	ice := f.seedSupply("cold pack", 10)

	_, err := f.svc.StartProcessing(staffCtx(), &shipment.ProcessReq{UUID: created.UUID})
	require.NoError(t, err)

	resp, err := f.svc.MarkShipped(staffCtx(), &shipment.ShipReq{
		UUID: created.UUID, Weight: 1.2, Service: "ground",
		Supplies: []*shipment.SupplyUseReq{
			{SupplyUUID: box.UUID, Quantity: 1},
			{SupplyUUID: ice.UUID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentShipped, resp.Status)
	require.NotNil(t, resp.TrackingNumber)
	assert.NotEmpty(t, *resp.TrackingNumber)
	assert.Equal(t, 18.75, resp.ShippingCost)
	assert.NotNil(t, resp.ShippedAt)
	assert.Equal(t, 1, f.carrier.QuoteCalls, "出面单前先询价")

	assert.EqualValues(t, 9, f.db.supplies[box.UUID].Count)
	assert.EqualValues(t, 8, f.db.supplies[ice.UUID].Count)
	require.Len(t, f.db.supplyTxs, 2)
	assert.EqualValues(t, -1, f.db.supplyTxs[0].Delta)
	assert.EqualValues(t, 10, f.db.supplyTxs[0].CountBefore)
	assert.EqualValues(t, 9, f.db.supplyTxs[0].CountAfter)

	evs, _ := (&memCustodyRepo{f.db}).ListByShipment(context.Background(), f.db.shipments[created.UUID].ID)
	assert.Equal(t, []model.CustodyEventType{
		model.EventCreated, model.EventProcessingStarted, model.EventPacked, model.EventLabelGenerated,
	}, eventTypes(evs))
}

func TestMarkShippedCreatesDeclaration(t *testing.T) {
	f := newFixture()
	created := f.createShipment(t, true)
	box := f.seedSupply("hazmat box", 10)

	_, err := f.svc.StartProcessing(staffCtx(), &shipment.ProcessReq{UUID: created.UUID})
	require.NoError(t, err)
	_, err = f.svc.MarkShipped(staffCtx(), &shipment.ShipReq{
		UUID: created.UUID, Weight: 1, Supplies: []*shipment.SupplyUseReq{{SupplyUUID: box.UUID, Quantity: 1}},
	})
	require.NoError(t, err)

	decl := f.db.declarations[f.db.shipments[created.UUID].ID]
	require.NotNil(t, decl)
	assert.Equal(t, "UN1230", decl.UNNumber)
	assert.Equal(t, "Methanol", decl.ProperShippingName)
	assert.True(t, decl.LabelsRequired)
	assert.False(t, decl.LabelsPrinted)
}

func TestMarkShippedWrongState(t *testing.T) {
	f := newFixture()
	created := f.createShipment(t, false)

	// initiated 不能直接发出
	_, err := f.svc.MarkShipped(staffCtx(), &shipment.ShipReq{UUID: created.UUID, Weight: 1})
	assertCode(t, err, code.ShipmentStateErr)
	assert.Zero(t, f.carrier.QuoteCalls, "状态预检必须挡在承运商调用之前")
	assert.Zero(t, f.carrier.LabelCalls, "状态预检必须挡在面单生成之前")
}

func TestMarkShippedQuoteFailureBlocksLabel(t *testing.T) {
	f := newFixture()
	created := f.createShipment(t, false)
	f.carrier.QuoteErr = code.CarrierRateQuoteErr

	_, err := f.svc.StartProcessing(staffCtx(), &shipment.ProcessReq{UUID: created.UUID})
	require.NoError(t, err)

	_, err = f.svc.MarkShipped(staffCtx(), &shipment.ShipReq{UUID: created.UUID, Weight: 1})
	assertCode(t, err, code.CarrierRateQuoteErr)

	// 询价失败不出面单也不落账
	assert.Zero(t, f.carrier.LabelCalls)
	assert.Equal(t, model.ShipmentProcessing, f.db.shipments[created.UUID].Status)
}

func TestMarkShippedInsufficientSupplyRollsBack(t *testing.T) {
	f := newFixture()
	created := f.createShipment(t, false)
	box := f.seedSupply("scarce box", 1)

	_, err := f.svc.StartProcessing(staffCtx(), &shipment.ProcessReq{UUID: created.UUID})
	require.NoError(t, err)

	_, err = f.svc.MarkShipped(staffCtx(), &shipment.ShipReq{
		UUID: created.UUID, Weight: 1,
		Supplies: []*shipment.SupplyUseReq{{SupplyUUID: box.UUID, Quantity: 5}},
	})
	assertCode(t, err, code.InsufficientSupplyErr)

	// 数据库侧全部回滚，发运单停留在 processing 可重试
	assert.Equal(t, model.ShipmentProcessing, f.db.shipments[created.UUID].Status)
	assert.EqualValues(t, 1, f.db.supplies[box.UUID].Count)
	assert.Empty(t, f.db.supplyTxs)
	assert.Equal(t, 1, f.carrier.LabelCalls)
}

func (f *fixture) shipIt(t *testing.T, hazmat bool) *shipment.CreateResp {
	t.Helper()
	created := f.createShipment(t, hazmat)
	box := f.seedSupply("box-"+t.Name(), 10)
	_, err := f.svc.StartProcessing(staffCtx(), &shipment.ProcessReq{UUID: created.UUID})
	require.NoError(t, err)
	_, err = f.svc.MarkShipped(staffCtx(), &shipment.ShipReq{
		UUID: created.UUID, Weight: 1, Supplies: []*shipment.SupplyUseReq{{SupplyUUID: box.UUID, Quantity: 1}},
	})
	require.NoError(t, err)
	return created
}

func TestPollTrackingInTransit(t *testing.T) {
	f := newFixture()
	f.carrier.Status = repo.TrackingStatusInTransit
	created := f.shipIt(t, false)

	resp, err := f.svc.PollTracking(staffCtx(), &shipment.TrackReq{UUID: created.UUID})
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentShipped, resp.Status)
	assert.Equal(t, repo.TrackingStatusInTransit, resp.TrackingStatus)
	assert.Nil(t, f.db.shipments[created.UUID].DeliveredAt)
}

func TestPollTrackingDelivered(t *testing.T) {
	f := newFixture()
	f.carrier.Status = repo.TrackingStatusDelivered
	created := f.shipIt(t, false)

	resp, err := f.svc.PollTracking(staffCtx(), &shipment.TrackReq{UUID: created.UUID})
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentDelivered, resp.Status)
	assert.NotNil(t, resp.DeliveredAt)

	stored := f.db.shipments[created.UUID]
	assert.Equal(t, model.ShipmentDelivered, stored.Status)
	evs, _ := (&memCustodyRepo{f.db}).ListByShipment(context.Background(), stored.ID)
	assert.Equal(t, model.EventDelivered, evs[len(evs)-1].EventType)

	// 终态后再轮询不再调承运商
	calls := f.carrier.TrackCalls
	again, err := f.svc.PollTracking(staffCtx(), &shipment.TrackReq{UUID: created.UUID})
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentDelivered, again.Status)
	assert.Equal(t, calls, f.carrier.TrackCalls)
}

// racingShipmentRepo 在第一次加锁读取前把发运单改成已送达，
// 模拟并发轮询抢先落账的时序。
type racingShipmentRepo struct {
	*memShipmentRepo
	deliveredAt time.Time
	raced       bool
}

func (r *racingShipmentRepo) GetShipmentForUpdate(ctx context.Context, id uuid.UUID) (*model.Shipment, error) {
	if !r.raced {
		r.raced = true
		if m, ok := r.shipments[id]; ok {
			m.Status = model.ShipmentDelivered
			when := r.deliveredAt
			m.DeliveredAt = &when
		}
	}
	return r.memShipmentRepo.GetShipmentForUpdate(ctx, id)
}

func TestPollTrackingConcurrentDeliveryAppliesOnce(t *testing.T) {
	f := newFixture()
	f.carrier.Status = repo.TrackingStatusDelivered
	created := f.shipIt(t, false)

	when := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	racing := &racingShipmentRepo{memShipmentRepo: &memShipmentRepo{f.db}, deliveredAt: when}
	svc := NewWithStores(&memSampleRepo{f.db}, racing, &memSupplyRepo{f.db}, &memCustodyRepo{f.db}, f.carrier, nil)

	resp, err := svc.PollTracking(staffCtx(), &shipment.TrackReq{UUID: created.UUID})
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentDelivered, resp.Status)
	require.NotNil(t, resp.DeliveredAt)
	assert.True(t, resp.DeliveredAt.Equal(when), "沿用抢先落账的送达时间")

	// 输掉竞争的轮询不追加第二条送达事件
	evs, _ := (&memCustodyRepo{f.db}).ListByShipment(context.Background(), f.db.shipments[created.UUID].ID)
	for _, ev := range evs {
		assert.NotEqual(t, model.EventDelivered, ev.EventType)
	}
}

func TestPollTrackingNotShipped(t *testing.T) {
	f := newFixture()
	created := f.createShipment(t, false)

	_, err := f.svc.PollTracking(staffCtx(), &shipment.TrackReq{UUID: created.UUID})
	assertCode(t, err, code.ShipmentStateErr)
}

func TestMarkLabelsPrinted(t *testing.T) {
	f := newFixture()
	created := f.shipIt(t, true)

	require.NoError(t, f.svc.MarkLabelsPrinted(staffCtx(), &shipment.PrintLabelsReq{UUID: created.UUID}))

	decl := f.db.declarations[f.db.shipments[created.UUID].ID]
	assert.True(t, decl.LabelsPrinted)
	require.NotNil(t, decl.PrintedBy)
	assert.Equal(t, "alice", *decl.PrintedBy)

	// 幂等
	require.NoError(t, f.svc.MarkLabelsPrinted(staffCtx(), &shipment.PrintLabelsReq{UUID: created.UUID}))
}

func TestMarkLabelsPrintedNonHazmat(t *testing.T) {
	f := newFixture()
	created := f.createShipment(t, false)

	err := f.svc.MarkLabelsPrinted(staffCtx(), &shipment.PrintLabelsReq{UUID: created.UUID})
	assertCode(t, err, code.ShipmentStateErr)
}

func TestGetAndCustody(t *testing.T) {
	f := newFixture()
	created := f.shipIt(t, true)

	detail, err := f.svc.Get(staffCtx(), &shipment.GetReq{UUID: created.UUID})
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	require.NotNil(t, detail.Declaration)
	assert.Equal(t, "UN1230", detail.Declaration.UNNumber)

	custody, err := f.svc.Custody(staffCtx(), &shipment.CustodyReq{UUID: created.UUID})
	require.NoError(t, err)
	assert.Equal(t, detail.ShipmentNumber, custody.ShipmentNumber)
	// 监管链按时间升序，首条必是 created
	require.NotEmpty(t, custody.Events)
	assert.Equal(t, model.EventCreated, custody.Events[0].EventType)
}

func TestListFilters(t *testing.T) {
	f := newFixture()
	f.createShipment(t, false)

	page, err := f.svc.List(staffCtx(), &shipment.ListReq{Status: string(model.ShipmentInitiated)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	page, err = f.svc.List(staffCtx(), &shipment.ListReq{Status: string(model.ShipmentDelivered)})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
}
