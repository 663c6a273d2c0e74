package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerOrder is a seller-logged request for equipment that is not in stock
type CustomerOrder struct {
	BaseModel
	SellerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller        *Seller   `json:"seller,omitempty"`
	OrderDate     time.Time `gorm:"not null;index" json:"order_date"`
	EquipmentName string    `gorm:"type:varchar(255);not null" json:"equipment_name"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Notes         string    `gorm:"type:text" json:"notes"`
	IsProcessed   bool      `gorm:"default:false;index" json:"is_processed"`
}

// SupplierOrder aggregates one week of customer orders for one equipment name
type SupplierOrder struct {
	BaseModel
	SupplierID    uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier      *Supplier `json:"supplier,omitempty"`
	OrderDate     time.Time `gorm:"not null" json:"order_date"`
	WeekStartDate time.Time `gorm:"not null;index" json:"week_start_date"`
	WeekEndDate   time.Time `gorm:"not null" json:"week_end_date"`
	OrderDetails  string    `gorm:"type:text;not null" json:"order_details"`
	IsCompleted   bool      `gorm:"default:false" json:"is_completed"`
}
