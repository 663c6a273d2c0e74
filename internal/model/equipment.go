package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Equipment is a single sellable unit. It lives either on the central warehouse
// or on a store point; once sold it never changes again.
type Equipment struct {
	BaseModel
	Name           string          `gorm:"type:varchar(255);not null;index" json:"name"`
	PurchasePrice  decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"purchase_price"`
	SupplierMarkup decimal.Decimal `gorm:"type:numeric(6,4);not null" json:"supplier_markup"`
	ReceiptDate    time.Time       `gorm:"not null" json:"receipt_date"`
	InvoiceNumber  string          `gorm:"type:varchar(50)" json:"invoice_number"`
	WarrantyMonths int             `gorm:"default:0" json:"warranty_months"`

	SupplierID uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier   *Supplier `json:"supplier,omitempty"`

	StorePointID         *uuid.UUID  `gorm:"type:uuid;index" json:"store_point_id,omitempty"`
	StorePoint           *StorePoint `json:"store_point,omitempty"`
	IsOnCentralWarehouse bool        `gorm:"default:true" json:"is_on_central_warehouse"`

	IsSold   bool       `gorm:"default:false;index" json:"is_sold"`
	SoldDate *time.Time `json:"sold_date,omitempty"`
}

func (Equipment) TableName() string {
	return "equipment"
}

// Sellable reports whether the unit can be put on a sale right now
func (e *Equipment) Sellable() bool {
	return !e.IsSold && !e.IsOnCentralWarehouse && e.StorePointID != nil
}

const (
	LocationCentralWarehouse = "Central warehouse"
	LocationUnknown          = "Unknown"
)

// Location returns a human readable placement label
func (e *Equipment) Location() string {
	if e.IsOnCentralWarehouse {
		return LocationCentralWarehouse
	}
	if e.StorePoint != nil {
		return e.StorePoint.Name
	}
	return LocationUnknown
}
