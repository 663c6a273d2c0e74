package model

import (
	"time"

	"github.com/google/uuid"
)

// SellerSchedule is one working day of a seller at a store point
type SellerSchedule struct {
	BaseModel
	SellerID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller       *Seller     `json:"seller,omitempty"`
	StorePointID uuid.UUID   `gorm:"type:uuid;not null;index" json:"store_point_id"`
	StorePoint   *StorePoint `json:"store_point,omitempty"`

	WorkDate time.Time `gorm:"type:date;not null;index" json:"work_date"`
	// HH:MM, EndTime strictly after StartTime
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`
}

func (SellerSchedule) TableName() string {
	return "seller_schedules"
}

// ScheduleResponse for API responses
type ScheduleResponse struct {
	ID             uuid.UUID `json:"id"`
	SellerID       uuid.UUID `json:"seller_id"`
	SellerName     string    `json:"seller_name,omitempty"`
	StorePointID   uuid.UUID `json:"store_point_id"`
	StorePointName string    `json:"store_point_name,omitempty"`
	WorkDate       string    `json:"work_date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
}

// ToResponse converts SellerSchedule to ScheduleResponse
func (s *SellerSchedule) ToResponse() ScheduleResponse {
	response := ScheduleResponse{
		ID:           s.ID,
		SellerID:     s.SellerID,
		StorePointID: s.StorePointID,
		WorkDate:     s.WorkDate.Format("2006-01-02"),
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
	}
	if s.Seller != nil {
		response.SellerName = s.Seller.FullName()
	}
	if s.StorePoint != nil {
		response.StorePointName = s.StorePoint.Name
	}
	return response
}
