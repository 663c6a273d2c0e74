package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/repository"
	"computer-store-ws/pkg/apperror"
	"computer-store-ws/pkg/validator"

	"github.com/google/uuid"
)

type ScheduleService interface {
	CreateSchedule(ctx context.Context, req *CreateScheduleRequest) (*model.SellerSchedule, error)
	DeleteSchedule(ctx context.Context, id uuid.UUID) error
	GetSellerMonth(ctx context.Context, sellerID uuid.UUID, year int, month time.Month) ([]model.ScheduleResponse, error)
}

type CreateScheduleRequest struct {
	SellerID     uuid.UUID `json:"seller_id" validate:"uuid_required"`
	StorePointID uuid.UUID `json:"store_point_id" validate:"uuid_required"`
	WorkDate     string    `json:"work_date" validate:"required"` // YYYY-MM-DD
	StartTime    string    `json:"start_time" validate:"clock"`   // HH:MM
	EndTime      string    `json:"end_time" validate:"clock"`     // HH:MM
}

type scheduleService struct {
	store    repository.Store
	calendar Calendar
}

func NewScheduleService(store repository.Store, calendar Calendar) ScheduleService {
	return &scheduleService{store: store, calendar: calendar}
}

func (s *scheduleService) CreateSchedule(ctx context.Context, req *CreateScheduleRequest) (*model.SellerSchedule, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	workDate, err := time.ParseInLocation("2006-01-02", req.WorkDate, s.calendar.Location)
	if err != nil {
		return nil, apperror.NewValidation("invalid request",
			apperror.FieldError{Field: "work_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	// HH:MM compares correctly as text
	if req.EndTime <= req.StartTime {
		return nil, apperror.NewValidation("invalid request",
			apperror.FieldError{Field: "end_time", Message: "must be after start_time"})
	}

	schedule := &model.SellerSchedule{
		SellerID:     req.SellerID,
		StorePointID: req.StorePointID,
		WorkDate:     workDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		seller, err := tx.Sellers().FindByID(req.SellerID)
		if err != nil {
			return notFound(err, apperror.EntitySeller, req.SellerID)
		}
		storePoint, err := tx.StorePoints().FindByID(req.StorePointID)
		if err != nil {
			return notFound(err, apperror.EntityStorePoint, req.StorePointID)
		}

		overlapping, err := tx.Schedules().FindOverlapping(seller.ID, workDate, req.StartTime, req.EndTime)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return apperror.NewOverlap(formatOverlap(seller, overlapping))
		}

		if err := tx.Schedules().Create(schedule); err != nil {
			return err
		}
		schedule.Seller = seller
		schedule.StorePoint = storePoint
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

func formatOverlap(seller *model.Seller, overlapping []model.SellerSchedule) string {
	slots := make([]string, 0, len(overlapping))
	for _, o := range overlapping {
		slots = append(slots, fmt.Sprintf("%s-%s", o.StartTime, o.EndTime))
	}
	return fmt.Sprintf("%s already works %s on %s",
		seller.FullName(), strings.Join(slots, ", "), overlapping[0].WorkDate.Format("2006-01-02"))
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	if err := s.store.WithContext(ctx).Schedules().Delete(id); err != nil {
		return notFound(err, apperror.EntitySchedule, id)
	}
	return nil
}

func (s *scheduleService) GetSellerMonth(ctx context.Context, sellerID uuid.UUID, year int, month time.Month) ([]model.ScheduleResponse, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.Sellers().FindByID(sellerID); err != nil {
		return nil, notFound(err, apperror.EntitySeller, sellerID)
	}

	from, to := s.calendar.Month(year, month)
	schedules, err := store.Schedules().FindBySeller(sellerID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]model.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		responses = append(responses, schedules[i].ToResponse())
	}
	return responses, nil
}
