// Package memory is an in-process implementation of repository.Store used in
// demo mode (STORE_DRIVER=memory) and by service tests.
package memory

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/repository"

	"github.com/google/uuid"
)

// ErrDuplicate mirrors a unique index violation
var ErrDuplicate = errors.New("memory: duplicate key")

type dataset struct {
	suppliers      map[uuid.UUID]model.Supplier
	storePoints    map[uuid.UUID]model.StorePoint
	registers      map[uuid.UUID]model.CashRegister
	sellers        map[uuid.UUID]model.Seller
	equipment      map[uuid.UUID]model.Equipment
	sales          map[uuid.UUID]model.Sale
	saleItems      map[uuid.UUID]model.SaleItem
	customerOrders map[uuid.UUID]model.CustomerOrder
	supplierOrders map[uuid.UUID]model.SupplierOrder
	violations     map[uuid.UUID]model.CashLimitViolation
	schedules      map[uuid.UUID]model.SellerSchedule
}

func newDataset() *dataset {
	return &dataset{
		suppliers:      make(map[uuid.UUID]model.Supplier),
		storePoints:    make(map[uuid.UUID]model.StorePoint),
		registers:      make(map[uuid.UUID]model.CashRegister),
		sellers:        make(map[uuid.UUID]model.Seller),
		equipment:      make(map[uuid.UUID]model.Equipment),
		sales:          make(map[uuid.UUID]model.Sale),
		saleItems:      make(map[uuid.UUID]model.SaleItem),
		customerOrders: make(map[uuid.UUID]model.CustomerOrder),
		supplierOrders: make(map[uuid.UUID]model.SupplierOrder),
		violations:     make(map[uuid.UUID]model.CashLimitViolation),
		schedules:      make(map[uuid.UUID]model.SellerSchedule),
	}
}

// Rows are stored without their relations, so a shallow copy of every map is a full snapshot.
func (d *dataset) clone() *dataset {
	return &dataset{
		suppliers:      maps.Clone(d.suppliers),
		storePoints:    maps.Clone(d.storePoints),
		registers:      maps.Clone(d.registers),
		sellers:        maps.Clone(d.sellers),
		equipment:      maps.Clone(d.equipment),
		sales:          maps.Clone(d.sales),
		saleItems:      maps.Clone(d.saleItems),
		customerOrders: maps.Clone(d.customerOrders),
		supplierOrders: maps.Clone(d.supplierOrders),
		violations:     maps.Clone(d.violations),
		schedules:      maps.Clone(d.schedules),
	}
}

// Store keeps every table in maps behind one mutex. Transactions run on a
// snapshot while holding the mutex and replace the live data on success, so
// they are serialized and a failed callback leaves no trace.
type Store struct {
	mu   sync.Mutex
	data *dataset
	now  func() time.Time
}

func New() *Store {
	return &Store{data: newDataset(), now: time.Now}
}

// view is what the repositories operate on. The root view locks the store
// per call; a transaction view already holds the lock and works on its snapshot.
type view struct {
	store *Store
	tx    *dataset
}

func (v *view) read(fn func(d *dataset) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

// write is read with audit timestamps at hand
func (v *view) write(fn func(d *dataset, now time.Time) error) error {
	return v.read(func(d *dataset) error {
		return fn(d, v.store.now())
	})
}

func stamp(base *model.BaseModel, now time.Time) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

func (s *Store) root() *view { return &view{store: s} }

func (s *Store) Suppliers() repository.SupplierRepository         { return &supplierRepo{s.root()} }
func (s *Store) StorePoints() repository.StorePointRepository     { return &storePointRepo{s.root()} }
func (s *Store) CashRegisters() repository.CashRegisterRepository { return &cashRegisterRepo{s.root()} }
func (s *Store) Sellers() repository.SellerRepository             { return &sellerRepo{s.root()} }
func (s *Store) Equipment() repository.EquipmentRepository        { return &equipmentRepo{s.root()} }
func (s *Store) Sales() repository.SaleRepository                 { return &saleRepo{s.root()} }
func (s *Store) CustomerOrders() repository.CustomerOrderRepository {
	return &customerOrderRepo{s.root()}
}
func (s *Store) SupplierOrders() repository.SupplierOrderRepository {
	return &supplierOrderRepo{s.root()}
}
func (s *Store) Violations() repository.ViolationRepository { return &violationRepo{s.root()} }
func (s *Store) Schedules() repository.ScheduleRepository   { return &scheduleRepo{s.root()} }
func (s *Store) Reports() repository.ReportRepository       { return &reportRepo{s.root()} }

func (s *Store) WithContext(ctx context.Context) repository.Store {
	return s
}

func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(&txStore{view: &view{store: s, tx: snapshot}}); err != nil {
		return err
	}
	s.data = snapshot
	return nil
}

// txStore exposes the repositories of one running transaction
type txStore struct {
	view *view
}

func (t *txStore) Suppliers() repository.SupplierRepository         { return &supplierRepo{t.view} }
func (t *txStore) StorePoints() repository.StorePointRepository     { return &storePointRepo{t.view} }
func (t *txStore) CashRegisters() repository.CashRegisterRepository { return &cashRegisterRepo{t.view} }
func (t *txStore) Sellers() repository.SellerRepository             { return &sellerRepo{t.view} }
func (t *txStore) Equipment() repository.EquipmentRepository        { return &equipmentRepo{t.view} }
func (t *txStore) Sales() repository.SaleRepository                 { return &saleRepo{t.view} }
func (t *txStore) CustomerOrders() repository.CustomerOrderRepository {
	return &customerOrderRepo{t.view}
}
func (t *txStore) SupplierOrders() repository.SupplierOrderRepository {
	return &supplierOrderRepo{t.view}
}
func (t *txStore) Violations() repository.ViolationRepository { return &violationRepo{t.view} }
func (t *txStore) Schedules() repository.ScheduleRepository   { return &scheduleRepo{t.view} }
func (t *txStore) Reports() repository.ReportRepository       { return &reportRepo{t.view} }

func (t *txStore) WithContext(ctx context.Context) repository.Store {
	return t
}

// Nested transactions join the running one
func (t *txStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(t)
}

// SetClock replaces the audit timestamp source
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
