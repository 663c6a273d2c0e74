package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentCash     PaymentType = "CASH"
	PaymentCashless PaymentType = "CASHLESS"
)

func (p PaymentType) Valid() bool {
	return p == PaymentCash || p == PaymentCashless
}

// Sale is one committed customer transaction. Exactly one of CheckNumber
// (cash) or PaymentOrderNumber (cashless) is set.
type Sale struct {
	BaseModel
	SaleDate     time.Time   `gorm:"not null;index" json:"sale_date"`
	SellerID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller       *Seller     `json:"seller,omitempty"`
	StorePointID uuid.UUID   `gorm:"type:uuid;not null;index" json:"store_point_id"`
	StorePoint   *StorePoint `json:"store_point,omitempty"`
	PaymentType  PaymentType `gorm:"type:varchar(10);not null" json:"payment_type"`

	CheckNumber        *string       `gorm:"type:varchar(40);uniqueIndex" json:"check_number,omitempty"`
	PaymentOrderNumber *string       `gorm:"type:varchar(40);uniqueIndex" json:"payment_order_number,omitempty"`
	CashRegisterID     *uuid.UUID    `gorm:"type:uuid;index" json:"cash_register_id,omitempty"`
	CashRegister       *CashRegister `json:"cash_register,omitempty"`

	TotalAmount       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"total_amount"`
	TotalWithVAT      decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"total_with_vat"`
	TotalWithSalesTax decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"total_with_sales_tax"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem snapshots the equipment pricing inputs at sale time. The unique
// index on EquipmentID keeps a unit on at most one sale.
type SaleItem struct {
	BaseModel
	SaleID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"sale_id"`
	EquipmentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"equipment_id"`
	Equipment   *Equipment `json:"equipment,omitempty"`

	PurchasePrice    decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"purchase_price"`
	SupplierMarkup   decimal.Decimal `gorm:"type:numeric(6,4);not null" json:"supplier_markup"`
	SellerMarkup     decimal.Decimal `gorm:"type:numeric(6,4);not null" json:"seller_markup"`
	PriceBeforeTaxes decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"price_before_taxes"`
	VAT              decimal.Decimal `gorm:"column:vat;type:numeric(18,4);not null" json:"vat"`
	SalesTax         decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"sales_tax"`
	FinalPrice       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"final_price"`
}
