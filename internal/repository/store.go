package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by finders when no row matches
	ErrNotFound = errors.New("record not found")
	// ErrStaleUpdate is returned when a guarded update matched no row
	ErrStaleUpdate = errors.New("row was changed by another transaction")
)

// Store is the persistence collaborator of the services. Repositories obtained
// from a Store passed to Transaction's callback share that transaction.
type Store interface {
	Suppliers() SupplierRepository
	StorePoints() StorePointRepository
	CashRegisters() CashRegisterRepository
	Sellers() SellerRepository
	Equipment() EquipmentRepository
	Sales() SaleRepository
	CustomerOrders() CustomerOrderRepository
	SupplierOrders() SupplierOrderRepository
	Violations() ViolationRepository
	Schedules() ScheduleRepository
	Reports() ReportRepository

	WithContext(ctx context.Context) Store
	// Transaction commits when fn returns nil and rolls back otherwise
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Suppliers() SupplierRepository           { return NewSupplierRepo(s.db) }
func (s *gormStore) StorePoints() StorePointRepository       { return NewStorePointRepo(s.db) }
func (s *gormStore) CashRegisters() CashRegisterRepository   { return NewCashRegisterRepo(s.db) }
func (s *gormStore) Sellers() SellerRepository               { return NewSellerRepo(s.db) }
func (s *gormStore) Equipment() EquipmentRepository          { return NewEquipmentRepo(s.db) }
func (s *gormStore) Sales() SaleRepository                   { return NewSaleRepo(s.db) }
func (s *gormStore) CustomerOrders() CustomerOrderRepository { return NewCustomerOrderRepo(s.db) }
func (s *gormStore) SupplierOrders() SupplierOrderRepository { return NewSupplierOrderRepo(s.db) }
func (s *gormStore) Violations() ViolationRepository         { return NewViolationRepo(s.db) }
func (s *gormStore) Schedules() ScheduleRepository           { return NewScheduleRepo(s.db) }
func (s *gormStore) Reports() ReportRepository               { return NewReportRepo(s.db) }

func (s *gormStore) WithContext(ctx context.Context) Store {
	return &gormStore{db: s.db.WithContext(ctx)}
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// translate maps gorm sentinels to repository ones
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
