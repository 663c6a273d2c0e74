package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashLimitViolation is an immutable audit record of a register exceeding its daily cash limit
type CashLimitViolation struct {
	BaseModel
	CashRegisterID uuid.UUID       `gorm:"type:uuid;not null;index" json:"cash_register_id"`
	CashRegister   *CashRegister   `json:"cash_register,omitempty"`
	ViolationDate  time.Time       `gorm:"not null;index" json:"violation_date"`
	LimitAmount    decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"limit_amount"`
	ActualAmount   decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"actual_amount"`
}

// Excess is the amount above the limit
func (v *CashLimitViolation) Excess() decimal.Decimal {
	return v.ActualAmount.Sub(v.LimitAmount)
}
