package repository

import (
	"time"

	"computer-store-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerOrderRepository interface {
	Create(order *model.CustomerOrder) error
	// FindUnprocessed returns pending orders with from <= order_date < to
	FindUnprocessed(from, to time.Time) ([]model.CustomerOrder, error)
	FindBySeller(sellerID uuid.UUID, from, to time.Time) ([]model.CustomerOrder, error)
	MarkProcessed(ids []uuid.UUID) error
}

type customerOrderRepo struct {
	db *gorm.DB
}

func NewCustomerOrderRepo(db *gorm.DB) CustomerOrderRepository {
	return &customerOrderRepo{db}
}

func (r *customerOrderRepo) Create(order *model.CustomerOrder) error {
	return r.db.Create(order).Error
}

func (r *customerOrderRepo) FindUnprocessed(from, to time.Time) ([]model.CustomerOrder, error) {
	var orders []model.CustomerOrder
	err := r.db.
		Where("is_processed = ? AND order_date >= ? AND order_date < ?", false, from, to).
		Order("order_date ASC").
		Find(&orders).Error
	return orders, err
}

func (r *customerOrderRepo) FindBySeller(sellerID uuid.UUID, from, to time.Time) ([]model.CustomerOrder, error) {
	var orders []model.CustomerOrder
	err := r.db.
		Where("seller_id = ? AND order_date >= ? AND order_date < ?", sellerID, from, to).
		Order("order_date ASC").
		Find(&orders).Error
	return orders, err
}

func (r *customerOrderRepo) MarkProcessed(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&model.CustomerOrder{}).
		Where("id IN ?", ids).
		Update("is_processed", true).Error
}

type SupplierOrderRepository interface {
	CreateBatch(orders []model.SupplierOrder) error
	// FindByWeek returns orders whose week lies within [from, to]
	FindByWeek(from, to time.Time) ([]model.SupplierOrder, error)
}

type supplierOrderRepo struct {
	db *gorm.DB
}

func NewSupplierOrderRepo(db *gorm.DB) SupplierOrderRepository {
	return &supplierOrderRepo{db}
}

func (r *supplierOrderRepo) CreateBatch(orders []model.SupplierOrder) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.Create(&orders).Error
}

func (r *supplierOrderRepo) FindByWeek(from, to time.Time) ([]model.SupplierOrder, error) {
	var orders []model.SupplierOrder
	err := r.db.
		Preload("Supplier").
		Where("week_start_date >= ? AND week_end_date <= ?", from, to).
		Order("order_date ASC").
		Find(&orders).Error
	return orders, err
}
