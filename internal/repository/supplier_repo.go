package repository

import (
	"computer-store-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	FindAll() ([]model.Supplier, error)
	FindByID(id uuid.UUID) (*model.Supplier, error)
	// FindFirst returns the oldest registered supplier
	FindFirst() (*model.Supplier, error)
	// FindByEquipmentName returns the supplier of the earliest received unit with that name
	FindByEquipmentName(name string) (*model.Supplier, error)
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepo) FindAll() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.First(&supplier, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &supplier, nil
}

func (r *supplierRepo) FindFirst() (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.Order("created_at ASC").First(&supplier).Error; err != nil {
		return nil, translate(err)
	}
	return &supplier, nil
}

func (r *supplierRepo) FindByEquipmentName(name string) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.
		Joins("JOIN equipment ON equipment.supplier_id = suppliers.id").
		Where("equipment.name = ?", name).
		Order("equipment.receipt_date ASC").
		First(&supplier).Error
	if err != nil {
		return nil, translate(err)
	}
	return &supplier, nil
}
