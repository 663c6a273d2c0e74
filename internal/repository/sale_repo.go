package repository

import (
	"time"

	"computer-store-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// Create inserts the sale together with its items
	Create(sale *model.Sale) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindBySeller(sellerID uuid.UUID) ([]model.Sale, error)
	// SumForRegister totals TotalWithSalesTax of sales on the register with from <= date < to
	SumForRegister(registerID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(sale *model.Sale) error {
	return r.db.Create(sale).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.
		Preload("Seller").
		Preload("StorePoint").
		Preload("CashRegister").
		Preload("Items.Equipment").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &sale, nil
}

func (r *saleRepo) FindBySeller(sellerID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.
		Preload("StorePoint").
		Preload("Items.Equipment").
		Where("seller_id = ?", sellerID).
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) SumForRegister(registerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.Sale{}).
		Select("COALESCE(SUM(total_with_sales_tax), 0)").
		Where("cash_register_id = ? AND sale_date >= ? AND sale_date < ?", registerID, from, to).
		Row().
		Scan(&total)
	return total, err
}
