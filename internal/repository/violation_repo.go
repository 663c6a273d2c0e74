package repository

import (
	"time"

	"computer-store-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ViolationRepository interface {
	Create(violation *model.CashLimitViolation) error
	// ExistsBetween reports whether the register has a violation with from <= date < to
	ExistsBetween(registerID uuid.UUID, from, to time.Time) (bool, error)
	FindAll() ([]model.CashLimitViolation, error)
}

type violationRepo struct {
	db *gorm.DB
}

func NewViolationRepo(db *gorm.DB) ViolationRepository {
	return &violationRepo{db}
}

func (r *violationRepo) Create(violation *model.CashLimitViolation) error {
	return r.db.Create(violation).Error
}

func (r *violationRepo) ExistsBetween(registerID uuid.UUID, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.CashLimitViolation{}).
		Where("cash_register_id = ? AND violation_date >= ? AND violation_date < ?", registerID, from, to).
		Count(&count).Error
	return count > 0, err
}

func (r *violationRepo) FindAll() ([]model.CashLimitViolation, error) {
	var violations []model.CashLimitViolation
	err := r.db.
		Preload("CashRegister.StorePoint").
		Order("violation_date DESC").
		Find(&violations).Error
	return violations, err
}
