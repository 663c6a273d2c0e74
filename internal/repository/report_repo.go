package repository

import (
	"time"

	"computer-store-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRepository holds the aggregate queries. All ranges are half-open: from <= date < to.
type ReportRepository interface {
	SellersSales(from, to time.Time) ([]SellerSalesRow, error)
	PopularProducts(from, to time.Time) ([]PopularProductRow, error)
	Revenue(from, to time.Time) (*RevenueRow, error)
	StorePointTurnover(from, to time.Time) ([]TurnoverRow, error)
	ShippedToStorePoint(storePointID uuid.UUID, from, to time.Time) ([]ShippedRow, error)
	SoldAtStorePoint(storePointID uuid.UUID, from, to time.Time) ([]SoldRow, error)
}

// SellerSalesRow is one seller's sales in a period
type SellerSalesRow struct {
	SellerID   uuid.UUID       `json:"seller_id"`
	SellerName string          `json:"seller_name"`
	TotalSales decimal.Decimal `json:"total_sales"`
	SalesCount int64           `json:"sales_count"`
}

// PopularProductRow counts sold units per equipment name
type PopularProductRow struct {
	Name       string `json:"name"`
	SalesCount int64  `json:"sales_count"`
}

// RevenueRow: cash revenue counts totals with sales tax, cashless totals with VAT
type RevenueRow struct {
	CashRevenue     decimal.Decimal `json:"cash_revenue"`
	CashlessRevenue decimal.Decimal `json:"cashless_revenue"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
}

type TurnoverRow struct {
	StorePointID   uuid.UUID       `json:"store_point_id"`
	StorePointName string          `json:"store_point_name"`
	Revenue        decimal.Decimal `json:"revenue"`
	SalesCount     int64           `json:"sales_count"`
}

// ShippedRow groups units delivered to a store point by name
type ShippedRow struct {
	Name         string    `json:"name"`
	Quantity     int64     `json:"quantity"`
	ShipmentDate time.Time `json:"shipment_date"`
}

type SoldRow struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) SellersSales(from, to time.Time) ([]SellerSalesRow, error) {
	rows, err := r.db.Model(&model.Sale{}).
		Select(`
			sales.seller_id,
			concat_ws(' ', sellers.last_name, sellers.first_name, NULLIF(sellers.middle_name, '')) as seller_name,
			COALESCE(SUM(sales.total_with_sales_tax), 0) as total_sales,
			COUNT(*) as sales_count
		`).
		Joins("JOIN sellers ON sellers.id = sales.seller_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", from, to).
		Group("sales.seller_id, sellers.last_name, sellers.first_name, sellers.middle_name").
		Order("total_sales DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []SellerSalesRow{}
	for rows.Next() {
		var row SellerSalesRow
		if err := rows.Scan(&row.SellerID, &row.SellerName, &row.TotalSales, &row.SalesCount); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *reportRepo) PopularProducts(from, to time.Time) ([]PopularProductRow, error) {
	rows, err := r.db.Model(&model.SaleItem{}).
		Select("equipment.name, COUNT(*) as sales_count").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN equipment ON equipment.id = sale_items.equipment_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", from, to).
		Group("equipment.name").
		Order("sales_count DESC, equipment.name ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []PopularProductRow{}
	for rows.Next() {
		var row PopularProductRow
		if err := rows.Scan(&row.Name, &row.SalesCount); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *reportRepo) Revenue(from, to time.Time) (*RevenueRow, error) {
	var report RevenueRow

	err := r.db.Model(&model.Sale{}).
		Select(`
			COALESCE(SUM(CASE WHEN payment_type = ? THEN total_with_sales_tax ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN payment_type = ? THEN total_with_vat ELSE 0 END), 0)
		`, model.PaymentCash, model.PaymentCashless).
		Where("sale_date >= ? AND sale_date < ?", from, to).
		Row().
		Scan(&report.CashRevenue, &report.CashlessRevenue)
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.SaleItem{}).
		Select("COALESCE(SUM(sale_items.final_price - sale_items.purchase_price), 0)").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", from, to).
		Row().
		Scan(&report.TotalProfit)
	if err != nil {
		return nil, err
	}

	report.TotalRevenue = report.CashRevenue.Add(report.CashlessRevenue)
	return &report, nil
}

func (r *reportRepo) StorePointTurnover(from, to time.Time) ([]TurnoverRow, error) {
	rows, err := r.db.Model(&model.Sale{}).
		Select(`
			sales.store_point_id,
			store_points.name,
			COALESCE(SUM(sales.total_with_sales_tax), 0) as revenue,
			COUNT(*) as sales_count
		`).
		Joins("JOIN store_points ON store_points.id = sales.store_point_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", from, to).
		Group("sales.store_point_id, store_points.name").
		Order("revenue DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []TurnoverRow{}
	for rows.Next() {
		var row TurnoverRow
		if err := rows.Scan(&row.StorePointID, &row.StorePointName, &row.Revenue, &row.SalesCount); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *reportRepo) ShippedToStorePoint(storePointID uuid.UUID, from, to time.Time) ([]ShippedRow, error) {
	rows, err := r.db.Model(&model.Equipment{}).
		Select("name, COUNT(*), MIN(receipt_date)").
		Where("store_point_id = ? AND is_on_central_warehouse = ?", storePointID, false).
		Where("receipt_date >= ? AND receipt_date < ?", from, to).
		Group("name").
		Order("name ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []ShippedRow{}
	for rows.Next() {
		var row ShippedRow
		if err := rows.Scan(&row.Name, &row.Quantity, &row.ShipmentDate); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *reportRepo) SoldAtStorePoint(storePointID uuid.UUID, from, to time.Time) ([]SoldRow, error) {
	rows, err := r.db.Model(&model.SaleItem{}).
		Select(`
			equipment.name,
			COUNT(*),
			COALESCE(SUM(sale_items.final_price), 0),
			COALESCE(SUM(sale_items.final_price - sale_items.purchase_price), 0)
		`).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN equipment ON equipment.id = sale_items.equipment_id").
		Where("sales.store_point_id = ? AND sales.sale_date >= ? AND sales.sale_date < ?", storePointID, from, to).
		Group("equipment.name").
		Order("equipment.name ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []SoldRow{}
	for rows.Next() {
		var row SoldRow
		if err := rows.Scan(&row.Name, &row.Quantity, &row.Revenue, &row.Profit); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
