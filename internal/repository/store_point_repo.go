package repository

import (
	"computer-store-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StorePointRepository interface {
	Create(storePoint *model.StorePoint) error
	FindAll() ([]model.StorePoint, error)
	FindByID(id uuid.UUID) (*model.StorePoint, error)
}

type storePointRepo struct {
	db *gorm.DB
}

func NewStorePointRepo(db *gorm.DB) StorePointRepository {
	return &storePointRepo{db}
}

func (r *storePointRepo) Create(storePoint *model.StorePoint) error {
	return r.db.Create(storePoint).Error
}

func (r *storePointRepo) FindAll() ([]model.StorePoint, error) {
	var points []model.StorePoint
	err := r.db.Preload("CashRegisters").Order("name ASC").Find(&points).Error
	return points, err
}

func (r *storePointRepo) FindByID(id uuid.UUID) (*model.StorePoint, error) {
	var point model.StorePoint
	if err := r.db.First(&point, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &point, nil
}

type CashRegisterRepository interface {
	Create(register *model.CashRegister) error
	FindAll() ([]model.CashRegister, error)
	FindByID(id uuid.UUID) (*model.CashRegister, error)
	// LockForStorePoint loads the register only if it belongs to the store point and
	// holds a row lock on it until the surrounding transaction ends
	LockForStorePoint(id, storePointID uuid.UUID) (*model.CashRegister, error)
	Lock(id uuid.UUID) (*model.CashRegister, error)
}

type cashRegisterRepo struct {
	db *gorm.DB
}

func NewCashRegisterRepo(db *gorm.DB) CashRegisterRepository {
	return &cashRegisterRepo{db}
}

func (r *cashRegisterRepo) Create(register *model.CashRegister) error {
	return r.db.Create(register).Error
}

func (r *cashRegisterRepo) FindAll() ([]model.CashRegister, error) {
	var registers []model.CashRegister
	err := r.db.Preload("StorePoint").Order("registration_number ASC").Find(&registers).Error
	return registers, err
}

func (r *cashRegisterRepo) FindByID(id uuid.UUID) (*model.CashRegister, error) {
	var register model.CashRegister
	if err := r.db.First(&register, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &register, nil
}

// NO KEY UPDATE still lets violation and sale inserts take their FK share lock
func (r *cashRegisterRepo) LockForStorePoint(id, storePointID uuid.UUID) (*model.CashRegister, error) {
	var register model.CashRegister
	err := r.db.Clauses(clause.Locking{Strength: "NO KEY UPDATE"}).
		First(&register, "id = ? AND store_point_id = ?", id, storePointID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &register, nil
}

func (r *cashRegisterRepo) Lock(id uuid.UUID) (*model.CashRegister, error) {
	var register model.CashRegister
	err := r.db.Clauses(clause.Locking{Strength: "NO KEY UPDATE"}).
		First(&register, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &register, nil
}
