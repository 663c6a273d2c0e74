package repository

import (
	"time"

	"computer-store-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Create(schedule *model.SellerSchedule) error
	FindByID(id uuid.UUID) (*model.SellerSchedule, error)
	Delete(id uuid.UUID) error
	// FindBySeller returns entries with from <= work_date < to, ordered by date
	FindBySeller(sellerID uuid.UUID, from, to time.Time) ([]model.SellerSchedule, error)
	FindOverlapping(sellerID uuid.UUID, workDate time.Time, startTime, endTime string) ([]model.SellerSchedule, error)
}

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db}
}

func (r *scheduleRepo) Create(schedule *model.SellerSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *scheduleRepo) FindByID(id uuid.UUID) (*model.SellerSchedule, error) {
	var schedule model.SellerSchedule
	err := r.db.Preload("Seller").Preload("StorePoint").First(&schedule, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &schedule, nil
}

func (r *scheduleRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.SellerSchedule{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *scheduleRepo) FindBySeller(sellerID uuid.UUID, from, to time.Time) ([]model.SellerSchedule, error) {
	var schedules []model.SellerSchedule
	err := r.db.
		Preload("Seller").
		Preload("StorePoint").
		Where("seller_id = ? AND work_date >= ? AND work_date < ?", sellerID, from, to).
		Order("work_date ASC, start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

// HH:MM strings compare correctly as text
func (r *scheduleRepo) FindOverlapping(sellerID uuid.UUID, workDate time.Time, startTime, endTime string) ([]model.SellerSchedule, error) {
	var schedules []model.SellerSchedule
	err := r.db.
		Where("seller_id = ? AND work_date = ?", sellerID, workDate).
		Where("start_time < ? AND end_time > ?", endTime, startTime).
		Find(&schedules).Error
	return schedules, err
}
