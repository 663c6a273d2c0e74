package repository

import (
	"time"

	"computer-store-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EquipmentFilter narrows FindAll. Zero value lists every unsold unit.
type EquipmentFilter struct {
	StorePointID *uuid.UUID
	CentralOnly  bool
	IncludeSold  bool
	ReceivedFrom *time.Time
	ReceivedTo   *time.Time
}

type EquipmentRepository interface {
	Create(equipment *model.Equipment) error
	FindByID(id uuid.UUID) (*model.Equipment, error)
	FindAll(filter EquipmentFilter) ([]model.Equipment, error)
	// Lock loads the unit with a row lock held until the transaction ends
	Lock(id uuid.UUID) (*model.Equipment, error)
	// MarkSold flips the sold flag; ErrStaleUpdate if the unit was already sold
	MarkSold(id uuid.UUID, soldAt time.Time) error
	// MoveToStorePoint relocates an unsold unit; ErrStaleUpdate if it is sold or gone
	MoveToStorePoint(id, storePointID uuid.UUID) error
}

type equipmentRepo struct {
	db *gorm.DB
}

func NewEquipmentRepo(db *gorm.DB) EquipmentRepository {
	return &equipmentRepo{db}
}

func (r *equipmentRepo) Create(equipment *model.Equipment) error {
	return r.db.Create(equipment).Error
}

func (r *equipmentRepo) FindByID(id uuid.UUID) (*model.Equipment, error) {
	var equipment model.Equipment
	if err := r.db.Preload("Supplier").Preload("StorePoint").First(&equipment, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &equipment, nil
}

func (r *equipmentRepo) FindAll(filter EquipmentFilter) ([]model.Equipment, error) {
	query := r.db.Preload("Supplier").Preload("StorePoint")
	if !filter.IncludeSold {
		query = query.Where("is_sold = ?", false)
	}
	if filter.StorePointID != nil {
		query = query.Where("store_point_id = ?", *filter.StorePointID)
	}
	if filter.CentralOnly {
		query = query.Where("is_on_central_warehouse = ?", true)
	}
	if filter.ReceivedFrom != nil {
		query = query.Where("receipt_date >= ?", *filter.ReceivedFrom)
	}
	if filter.ReceivedTo != nil {
		query = query.Where("receipt_date <= ?", *filter.ReceivedTo)
	}

	var items []model.Equipment
	err := query.Order("receipt_date ASC, name ASC").Find(&items).Error
	return items, err
}

func (r *equipmentRepo) Lock(id uuid.UUID) (*model.Equipment, error) {
	var equipment model.Equipment
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&equipment, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &equipment, nil
}

func (r *equipmentRepo) MarkSold(id uuid.UUID, soldAt time.Time) error {
	res := r.db.Model(&model.Equipment{}).
		Where("id = ? AND is_sold = ?", id, false).
		Updates(map[string]interface{}{
			"is_sold":   true,
			"sold_date": soldAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleUpdate
	}
	return nil
}

func (r *equipmentRepo) MoveToStorePoint(id, storePointID uuid.UUID) error {
	res := r.db.Model(&model.Equipment{}).
		Where("id = ? AND is_sold = ?", id, false).
		Updates(map[string]interface{}{
			"is_on_central_warehouse": false,
			"store_point_id":          storePointID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleUpdate
	}
	return nil
}
