package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StorePoint is a retail outlet. Only outlets with CanProcessCashless accept cashless payments.
type StorePoint struct {
	BaseModel
	Name               string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address            string `gorm:"type:varchar(255)" json:"address"`
	CanProcessCashless bool   `gorm:"default:false" json:"can_process_cashless"`

	CashRegisters []CashRegister `json:"cash_registers,omitempty"`
}

// CashRegister belongs to exactly one StorePoint. CashLimit caps the same-day cash revenue.
type CashRegister struct {
	BaseModel
	RegistrationNumber string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"registration_number" validate:"required"`
	CashLimit          decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"cash_limit"`
	StorePointID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_point_id" validate:"uuid_required"`
	StorePoint         *StorePoint     `json:"store_point,omitempty" validate:"-"`
}
