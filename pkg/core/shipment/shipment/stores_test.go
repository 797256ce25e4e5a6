package shipment

import (
	// 外部依赖
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	// 内部引用
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

// memDB 内存版仓储，事务用全量快照模拟回滚，
// 只为业务层测试服务，不追求 SQL 语义的完备。
type memDB struct {
	mu sync.Mutex

	samples      map[uuid.UUID]*model.Sample
	shipments    map[uuid.UUID]*model.Shipment
	lines        []*model.ShipmentSample
	supplies     map[uuid.UUID]*model.ShippingSupply
	supplyTxs    []*model.SupplyTransaction
	declarations map[int64]*model.DangerousGoodsDeclaration
	events       []*model.CustodyEvent

	nextID int64
}

func newMemDB() *memDB {
	return &memDB{
		samples:      map[uuid.UUID]*model.Sample{},
		shipments:    map[uuid.UUID]*model.Shipment{},
		supplies:     map[uuid.UUID]*model.ShippingSupply{},
		declarations: map[int64]*model.DangerousGoodsDeclaration{},
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) snapshot() *memDB {
	out := newMemDB()
	out.nextID = db.nextID
	for k, v := range db.samples {
		c := *v
		out.samples[k] = &c
	}
	for k, v := range db.shipments {
		c := *v
		out.shipments[k] = &c
	}
	for _, v := range db.lines {
		c := *v
		out.lines = append(out.lines, &c)
	}
	for k, v := range db.supplies {
		c := *v
		out.supplies[k] = &c
	}
	for _, v := range db.supplyTxs {
		c := *v
		out.supplyTxs = append(out.supplyTxs, &c)
	}
	for k, v := range db.declarations {
		c := *v
		out.declarations[k] = &c
	}
	for _, v := range db.events {
		c := *v
		out.events = append(out.events, &c)
	}
	return out
}

func (db *memDB) restore(s *memDB) {
	db.samples = s.samples
	db.shipments = s.shipments
	db.lines = s.lines
	db.supplies = s.supplies
	db.supplyTxs = s.supplyTxs
	db.declarations = s.declarations
	db.events = s.events
	db.nextID = s.nextID
}

func (db *memDB) ExecTx(ctx context.Context, fn func(ctx context.Context) error) error {
	db.mu.Lock()
	snap := db.snapshot()
	db.mu.Unlock()

	if err := fn(ctx); err != nil {
		db.mu.Lock()
		db.restore(snap)
		db.mu.Unlock()
		return err
	}
	return nil
}

func (db *memDB) addSample(m *model.Sample) *model.Sample {
	m.ID = db.id()
	if m.UUID.IsNil() {
		m.UUID = uuid.NewV4()
	}
	m.CreatedAt = time.Now()
	db.samples[m.UUID] = m
	return m
}

func (db *memDB) addSupply(m *model.ShippingSupply) *model.ShippingSupply {
	m.ID = db.id()
	if m.UUID.IsNil() {
		m.UUID = uuid.NewV4()
	}
	db.supplies[m.UUID] = m
	return m
}

// ---- SampleRepo ----

type memSampleRepo struct{ *memDB }

func (r *memSampleRepo) CreateSample(_ context.Context, data *model.Sample) error {
	r.addSample(data)
	return nil
}

func (r *memSampleRepo) GetSampleByUUID(_ context.Context, id uuid.UUID) (*model.Sample, error) {
	if m, ok := r.samples[id]; ok {
		c := *m
		return &c, nil
	}
	return nil, code.SampleNotFound
}

func (r *memSampleRepo) GetSampleByLot(_ context.Context, lot string) (*model.Sample, error) {
	for _, m := range r.samples {
		if m.LotNumber == lot {
			c := *m
			return &c, nil
		}
	}
	return nil, code.SampleNotFound
}

func (r *memSampleRepo) GetSampleForUpdate(ctx context.Context, id uuid.UUID) (*model.Sample, error) {
	return r.GetSampleByUUID(ctx, id)
}

func (r *memSampleRepo) UpdateQuantity(_ context.Context, id int64, quantity string, status model.SampleStatus) error {
	for _, m := range r.samples {
		if m.ID == id {
			m.Quantity = quantity
			m.Status = status
			return nil
		}
	}
	return code.SampleNotFound
}

func (r *memSampleRepo) ListSamples(_ context.Context, q repo.SampleQuery) ([]*model.Sample, int64, error) {
	out := []*model.Sample{}
	for _, m := range r.samples {
		if q.Status != nil && m.Status != *q.Status {
			continue
		}
		if q.NameLike != nil && !strings.Contains(strings.ToLower(m.ChemicalName), strings.ToLower(*q.NameLike)) {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

// ---- ShipmentRepo ----

type memShipmentRepo struct{ *memDB }

func (r *memShipmentRepo) CreateShipment(_ context.Context, data *model.Shipment) error {
	for _, m := range r.shipments {
		if m.ShipmentNumber == data.ShipmentNumber {
			return code.ShipmentConflictErr
		}
	}
	data.ID = r.id()
	if data.UUID.IsNil() {
		data.UUID = uuid.NewV4()
	}
	data.CreatedAt = time.Now()
	r.shipments[data.UUID] = data
	return nil
}

func (r *memShipmentRepo) CreateShipmentSamples(_ context.Context, lines []*model.ShipmentSample) error {
	for _, ln := range lines {
		ln.ID = r.id()
		r.lines = append(r.lines, ln)
	}
	return nil
}

func (r *memShipmentRepo) GetShipmentByUUID(_ context.Context, id uuid.UUID) (*model.Shipment, error) {
	if m, ok := r.shipments[id]; ok {
		c := *m
		return &c, nil
	}
	return nil, code.ShipmentNotFound
}

func (r *memShipmentRepo) GetShipmentForUpdate(ctx context.Context, id uuid.UUID) (*model.Shipment, error) {
	return r.GetShipmentByUUID(ctx, id)
}

func (r *memShipmentRepo) UpdateShipment(_ context.Context, id int64, data map[string]any) error {
	for _, m := range r.shipments {
		if m.ID != id {
			continue
		}
		for k, v := range data {
			switch k {
			case "status":
				m.Status = v.(model.ShipmentStatus)
			case "processed_by":
				s := v.(string)
				m.ProcessedBy = &s
			case "tracking_number":
				s := v.(string)
				m.TrackingNumber = &s
			case "carrier_service":
				s := v.(string)
				m.CarrierService = &s
			case "shipping_cost":
				f := v.(float64)
				m.ShippingCost = &f
			case "label_path":
				s := v.(string)
				m.LabelPath = &s
			case "shipped_at":
				t := v.(time.Time)
				m.ShippedAt = &t
			case "delivered_at":
				t := v.(time.Time)
				m.DeliveredAt = &t
			}
		}
		return nil
	}
	return code.ShipmentNotFound
}

func (r *memShipmentRepo) ListShipments(_ context.Context, q repo.ShipmentQuery) ([]*model.Shipment, int64, error) {
	out := []*model.Shipment{}
	for _, m := range r.shipments {
		if q.Status != nil && m.Status != *q.Status {
			continue
		}
		if q.RequestedBy != nil && m.RequestedBy != *q.RequestedBy {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (r *memShipmentRepo) ListShippedWithTracking(_ context.Context, limit int) ([]*model.Shipment, error) {
	out := []*model.Shipment{}
	for _, m := range r.shipments {
		if m.Status == model.ShipmentShipped && m.TrackingNumber != nil {
			c := *m
			out = append(out, &c)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *memShipmentRepo) GetShipmentLines(_ context.Context, shipmentID int64) ([]*repo.ShipmentLine, error) {
	out := []*repo.ShipmentLine{}
	for _, ln := range r.lines {
		if ln.ShipmentID != shipmentID {
			continue
		}
		for _, s := range r.samples {
			if s.ID == ln.SampleID {
				lc, sc := *ln, *s
				out = append(out, &repo.ShipmentLine{Line: &lc, Sample: &sc})
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Line.ID < out[j].Line.ID })
	return out, nil
}

func (r *memShipmentRepo) CreateDeclaration(_ context.Context, data *model.DangerousGoodsDeclaration) error {
	data.ID = r.id()
	if data.UUID.IsNil() {
		data.UUID = uuid.NewV4()
	}
	if data.PackagingType == "" {
		data.PackagingType = "4G combination"
	}
	r.declarations[data.ShipmentID] = data
	return nil
}

func (r *memShipmentRepo) GetDeclarationByShipmentID(_ context.Context, shipmentID int64) (*model.DangerousGoodsDeclaration, error) {
	if m, ok := r.declarations[shipmentID]; ok {
		c := *m
		return &c, nil
	}
	return nil, code.DeclarationNotFound
}

func (r *memShipmentRepo) UpdateDeclaration(_ context.Context, id int64, data map[string]any) error {
	for _, m := range r.declarations {
		if m.ID != id {
			continue
		}
		for k, v := range data {
			switch k {
			case "labels_printed":
				m.LabelsPrinted = v.(bool)
			case "printed_by":
				s := v.(string)
				m.PrintedBy = &s
			case "printed_at":
				t := v.(time.Time)
				m.PrintedAt = &t
			}
		}
		return nil
	}
	return code.DeclarationNotFound
}

// ---- SupplyRepo ----

type memSupplyRepo struct{ *memDB }

func (r *memSupplyRepo) CreateSupply(_ context.Context, data *model.ShippingSupply) error {
	r.addSupply(data)
	return nil
}

func (r *memSupplyRepo) GetSupplyByUUID(_ context.Context, id uuid.UUID) (*model.ShippingSupply, error) {
	if m, ok := r.supplies[id]; ok {
		c := *m
		return &c, nil
	}
	return nil, code.SupplyNotFound
}

func (r *memSupplyRepo) ListSupplies(_ context.Context, q repo.SupplyQuery) ([]*model.ShippingSupply, int64, error) {
	out := []*model.ShippingSupply{}
	for _, m := range r.supplies {
		if q.LowStockOnly && m.Count > m.LowStockThreshold {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	return out, int64(len(out)), nil
}

func (r *memSupplyRepo) ConsumeSupply(_ context.Context, id uuid.UUID, qty int64) (int64, int64, int64, error) {
	m, ok := r.supplies[id]
	if !ok {
		return 0, 0, 0, code.SupplyNotFound
	}
	if m.Count < qty {
		return 0, 0, 0, code.InsufficientSupplyErr.WithMsgf("%s: requested %d, available %d", m.Name, qty, m.Count)
	}
	before := m.Count
	m.Count -= qty
	return before, m.Count, m.ID, nil
}

func (r *memSupplyRepo) RestockSupply(_ context.Context, id uuid.UUID, qty int64) (int64, int64, int64, error) {
	m, ok := r.supplies[id]
	if !ok {
		return 0, 0, 0, code.SupplyNotFound
	}
	before := m.Count
	m.Count += qty
	return before, m.Count, m.ID, nil
}

func (r *memSupplyRepo) CreateSupplyTransaction(_ context.Context, data *model.SupplyTransaction) error {
	data.ID = r.id()
	data.CreatedAt = time.Now()
	r.supplyTxs = append(r.supplyTxs, data)
	return nil
}

func (r *memSupplyRepo) ListSupplyTransactions(_ context.Context, supplyID int64, offset, limit int) ([]*model.SupplyTransaction, int64, error) {
	out := []*model.SupplyTransaction{}
	for _, m := range r.supplyTxs {
		if m.SupplyID == supplyID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, int64(len(out)), nil
}

// ---- CustodyRepo ----

type memCustodyRepo struct{ *memDB }

func (r *memCustodyRepo) Append(_ context.Context, ev *model.CustodyEvent) error {
	ev.ID = r.id()
	if ev.UUID.IsNil() {
		ev.UUID = uuid.NewV4()
	}
	ev.CreatedAt = time.Now()
	r.events = append(r.events, ev)
	return nil
}

func (r *memCustodyRepo) ListByShipment(_ context.Context, shipmentID int64) ([]*model.CustodyEvent, error) {
	out := []*model.CustodyEvent{}
	for _, ev := range r.events {
		if ev.ShipmentID != nil && *ev.ShipmentID == shipmentID {
			c := *ev
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCustodyRepo) ListBySample(_ context.Context, sampleID int64) ([]*model.CustodyEvent, error) {
	out := []*model.CustodyEvent{}
	for _, ev := range r.events {
		if ev.SampleID != nil && *ev.SampleID == sampleID {
			c := *ev
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
