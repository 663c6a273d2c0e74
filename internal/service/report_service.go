package service

import (
	"context"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/repository"
	"computer-store-ws/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportService answers the read-only management reports. Period bounds are
// calendar dates and both ends are inclusive.
type ReportService interface {
	StorePointEquipment(ctx context.Context, storePointID uuid.UUID) ([]EquipmentLine, error)
	CentralWarehouseState(ctx context.Context, date time.Time) ([]EquipmentLine, error)
	TotalWarehouse(ctx context.Context) ([]EquipmentLine, error)
	SellerSales(ctx context.Context, sellerID uuid.UUID) ([]SellerSaleLine, error)
	SellersSales(ctx context.Context, from, to time.Time) ([]repository.SellerSalesRow, error)
	PopularProducts(ctx context.Context, from, to time.Time) ([]repository.PopularProductRow, error)
	Revenue(ctx context.Context, from, to time.Time) (*repository.RevenueRow, error)
	UnsoldProducts(ctx context.Context, from, to time.Time) ([]UnsoldLine, error)
	SellerWeekOrders(ctx context.Context, sellerID uuid.UUID) ([]model.CustomerOrder, error)
	WeeklySupplierOrders(ctx context.Context, weekStart time.Time) ([]SupplierOrderLine, error)
	StorePointTurnover(ctx context.Context, year int, month time.Month) ([]repository.TurnoverRow, error)
	CashLimitViolations(ctx context.Context) ([]ViolationLine, error)
	Monthly(ctx context.Context, year int, month time.Month) ([]MonthlyStorePoint, error)
}

type EquipmentLine struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SupplierMarkup decimal.Decimal `json:"supplier_markup"`
	ReceiptDate    time.Time       `json:"receipt_date"`
	InvoiceNumber  string          `json:"invoice_number"`
	WarrantyMonths int             `json:"warranty_months"`
	SupplierName   string          `json:"supplier_name"`
	Location       string          `json:"location"`
}

type SellerSaleLine struct {
	SaleID         uuid.UUID         `json:"sale_id"`
	SaleDate       time.Time         `json:"sale_date"`
	PaymentType    model.PaymentType `json:"payment_type"`
	Total          decimal.Decimal   `json:"total"`
	StorePointName string            `json:"store_point_name"`
	Items          []string          `json:"items"`
}

type UnsoldLine struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	ReceiptDate time.Time `json:"receipt_date"`
	DaysInStock int       `json:"days_in_stock"`
}

type SupplierOrderLine struct {
	ID           uuid.UUID `json:"id"`
	SupplierName string    `json:"supplier_name"`
	WeekStart    time.Time `json:"week_start"`
	WeekEnd      time.Time `json:"week_end"`
	OrderDetails string    `json:"order_details"`
	IsCompleted  bool      `json:"is_completed"`
}

type ViolationLine struct {
	StorePointName     string          `json:"store_point_name"`
	RegistrationNumber string          `json:"registration_number"`
	ViolationDate      time.Time       `json:"violation_date"`
	LimitAmount        decimal.Decimal `json:"limit_amount"`
	ActualAmount       decimal.Decimal `json:"actual_amount"`
	ExcessAmount       decimal.Decimal `json:"excess_amount"`
}

type MonthlyStorePoint struct {
	StorePointID   uuid.UUID               `json:"store_point_id"`
	StorePointName string                  `json:"store_point_name"`
	Shipped        []repository.ShippedRow `json:"shipped"`
	Sold           []repository.SoldRow    `json:"sold"`
	TotalRevenue   decimal.Decimal         `json:"total_revenue"`
	TotalProfit    decimal.Decimal         `json:"total_profit"`
}

type reportService struct {
	store    repository.Store
	calendar Calendar
}

func NewReportService(store repository.Store, calendar Calendar) ReportService {
	return &reportService{store: store, calendar: calendar}
}

// span turns inclusive calendar dates into a half-open range
func (s *reportService) span(from, to time.Time) (time.Time, time.Time) {
	start, _ := s.calendar.Day(from)
	_, end := s.calendar.Day(to)
	return start, end
}

func equipmentLines(items []model.Equipment) []EquipmentLine {
	lines := make([]EquipmentLine, 0, len(items))
	for i := range items {
		e := &items[i]
		line := EquipmentLine{
			ID:             e.ID,
			Name:           e.Name,
			PurchasePrice:  e.PurchasePrice,
			SupplierMarkup: e.SupplierMarkup,
			ReceiptDate:    e.ReceiptDate,
			InvoiceNumber:  e.InvoiceNumber,
			WarrantyMonths: e.WarrantyMonths,
			Location:       e.Location(),
		}
		if e.Supplier != nil {
			line.SupplierName = e.Supplier.Name
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *reportService) StorePointEquipment(ctx context.Context, storePointID uuid.UUID) ([]EquipmentLine, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.StorePoints().FindByID(storePointID); err != nil {
		return nil, notFound(err, apperror.EntityStorePoint, storePointID)
	}
	items, err := store.Equipment().FindAll(repository.EquipmentFilter{StorePointID: &storePointID})
	if err != nil {
		return nil, err
	}
	return equipmentLines(items), nil
}

func (s *reportService) CentralWarehouseState(ctx context.Context, date time.Time) ([]EquipmentLine, error) {
	_, end := s.calendar.Day(date)
	// ReceivedTo is inclusive
	last := end.Add(-time.Nanosecond)
	items, err := s.store.WithContext(ctx).Equipment().FindAll(repository.EquipmentFilter{
		CentralOnly: true,
		ReceivedTo:  &last,
	})
	if err != nil {
		return nil, err
	}
	return equipmentLines(items), nil
}

func (s *reportService) TotalWarehouse(ctx context.Context) ([]EquipmentLine, error) {
	items, err := s.store.WithContext(ctx).Equipment().FindAll(repository.EquipmentFilter{})
	if err != nil {
		return nil, err
	}
	return equipmentLines(items), nil
}

func (s *reportService) SellerSales(ctx context.Context, sellerID uuid.UUID) ([]SellerSaleLine, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.Sellers().FindByID(sellerID); err != nil {
		return nil, notFound(err, apperror.EntitySeller, sellerID)
	}
	sales, err := store.Sales().FindBySeller(sellerID)
	if err != nil {
		return nil, err
	}

	lines := make([]SellerSaleLine, 0, len(sales))
	for _, sale := range sales {
		line := SellerSaleLine{
			SaleID:      sale.ID,
			SaleDate:    sale.SaleDate,
			PaymentType: sale.PaymentType,
			Total:       sale.TotalWithSalesTax,
			Items:       make([]string, 0, len(sale.Items)),
		}
		if sale.StorePoint != nil {
			line.StorePointName = sale.StorePoint.Name
		}
		for _, item := range sale.Items {
			if item.Equipment != nil {
				line.Items = append(line.Items, item.Equipment.Name)
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *reportService) SellersSales(ctx context.Context, from, to time.Time) ([]repository.SellerSalesRow, error) {
	start, end := s.span(from, to)
	return s.store.WithContext(ctx).Reports().SellersSales(start, end)
}

func (s *reportService) PopularProducts(ctx context.Context, from, to time.Time) ([]repository.PopularProductRow, error) {
	start, end := s.span(from, to)
	return s.store.WithContext(ctx).Reports().PopularProducts(start, end)
}

func (s *reportService) Revenue(ctx context.Context, from, to time.Time) (*repository.RevenueRow, error) {
	start, end := s.span(from, to)
	return s.store.WithContext(ctx).Reports().Revenue(start, end)
}

func (s *reportService) UnsoldProducts(ctx context.Context, from, to time.Time) ([]UnsoldLine, error) {
	start, end := s.span(from, to)
	last := end.Add(-time.Nanosecond)
	items, err := s.store.WithContext(ctx).Equipment().FindAll(repository.EquipmentFilter{
		ReceivedFrom: &start,
		ReceivedTo:   &last,
	})
	if err != nil {
		return nil, err
	}

	now := s.calendar.now()
	lines := make([]UnsoldLine, 0, len(items))
	for i := range items {
		e := &items[i]
		lines = append(lines, UnsoldLine{
			ID:          e.ID,
			Name:        e.Name,
			Location:    e.Location(),
			ReceiptDate: e.ReceiptDate,
			DaysInStock: int(now.Sub(e.ReceiptDate).Hours() / 24),
		})
	}
	return lines, nil
}

func (s *reportService) SellerWeekOrders(ctx context.Context, sellerID uuid.UUID) ([]model.CustomerOrder, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.Sellers().FindByID(sellerID); err != nil {
		return nil, notFound(err, apperror.EntitySeller, sellerID)
	}
	from, to := s.calendar.Week(s.calendar.now())
	return store.CustomerOrders().FindBySeller(sellerID, from, to)
}

func (s *reportService) WeeklySupplierOrders(ctx context.Context, weekStart time.Time) ([]SupplierOrderLine, error) {
	orders, err := s.store.WithContext(ctx).SupplierOrders().FindByWeek(weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	lines := make([]SupplierOrderLine, 0, len(orders))
	for _, o := range orders {
		line := SupplierOrderLine{
			ID:           o.ID,
			WeekStart:    o.WeekStartDate,
			WeekEnd:      o.WeekEndDate,
			OrderDetails: o.OrderDetails,
			IsCompleted:  o.IsCompleted,
		}
		if o.Supplier != nil {
			line.SupplierName = o.Supplier.Name
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *reportService) StorePointTurnover(ctx context.Context, year int, month time.Month) ([]repository.TurnoverRow, error) {
	from, to := s.calendar.Month(year, month)
	return s.store.WithContext(ctx).Reports().StorePointTurnover(from, to)
}

func (s *reportService) CashLimitViolations(ctx context.Context) ([]ViolationLine, error) {
	violations, err := s.store.WithContext(ctx).Violations().FindAll()
	if err != nil {
		return nil, err
	}

	lines := make([]ViolationLine, 0, len(violations))
	for i := range violations {
		v := &violations[i]
		line := ViolationLine{
			ViolationDate: v.ViolationDate,
			LimitAmount:   v.LimitAmount,
			ActualAmount:  v.ActualAmount,
			ExcessAmount:  v.Excess(),
		}
		if v.CashRegister != nil {
			line.RegistrationNumber = v.CashRegister.RegistrationNumber
			if v.CashRegister.StorePoint != nil {
				line.StorePointName = v.CashRegister.StorePoint.Name
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *reportService) Monthly(ctx context.Context, year int, month time.Month) ([]MonthlyStorePoint, error) {
	store := s.store.WithContext(ctx)
	from, to := s.calendar.Month(year, month)

	points, err := store.StorePoints().FindAll()
	if err != nil {
		return nil, err
	}

	reports := make([]MonthlyStorePoint, 0, len(points))
	for _, sp := range points {
		shipped, err := store.Reports().ShippedToStorePoint(sp.ID, from, to)
		if err != nil {
			return nil, err
		}
		sold, err := store.Reports().SoldAtStorePoint(sp.ID, from, to)
		if err != nil {
			return nil, err
		}

		report := MonthlyStorePoint{
			StorePointID:   sp.ID,
			StorePointName: sp.Name,
			Shipped:        shipped,
			Sold:           sold,
			TotalRevenue:   decimal.Zero,
			TotalProfit:    decimal.Zero,
		}
		for _, row := range sold {
			report.TotalRevenue = report.TotalRevenue.Add(row.Revenue)
			report.TotalProfit = report.TotalProfit.Add(row.Profit)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
