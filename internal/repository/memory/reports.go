package memory

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type reportRepo struct{ v *view }

func (r *reportRepo) SellersSales(from, to time.Time) ([]repository.SellerSalesRow, error) {
	var out []repository.SellerSalesRow
	err := r.v.read(func(d *dataset) error {
		bySeller := map[uuid.UUID]*repository.SellerSalesRow{}
		for _, s := range d.sales {
			if !inRange(s.SaleDate, from, to) {
				continue
			}
			row, ok := bySeller[s.SellerID]
			if !ok {
				row = &repository.SellerSalesRow{SellerID: s.SellerID, TotalSales: decimal.Zero}
				if seller, ok := d.sellers[s.SellerID]; ok {
					row.SellerName = seller.FullName()
				}
				bySeller[s.SellerID] = row
			}
			row.TotalSales = row.TotalSales.Add(s.TotalWithSalesTax)
			row.SalesCount++
		}
		out = make([]repository.SellerSalesRow, 0, len(bySeller))
		for _, row := range bySeller {
			out = append(out, *row)
		}
		slices.SortFunc(out, func(a, b repository.SellerSalesRow) int {
			return cmp.Or(b.TotalSales.Cmp(a.TotalSales), strings.Compare(a.SellerName, b.SellerName))
		})
		return nil
	})
	return out, err
}

func (r *reportRepo) PopularProducts(from, to time.Time) ([]repository.PopularProductRow, error) {
	var out []repository.PopularProductRow
	err := r.v.read(func(d *dataset) error {
		counts := map[string]int64{}
		for _, item := range d.saleItems {
			sale, ok := d.sales[item.SaleID]
			if !ok || !inRange(sale.SaleDate, from, to) {
				continue
			}
			counts[d.equipment[item.EquipmentID].Name]++
		}
		out = make([]repository.PopularProductRow, 0, len(counts))
		for name, n := range counts {
			out = append(out, repository.PopularProductRow{Name: name, SalesCount: n})
		}
		slices.SortFunc(out, func(a, b repository.PopularProductRow) int {
			return cmp.Or(cmp.Compare(b.SalesCount, a.SalesCount), strings.Compare(a.Name, b.Name))
		})
		return nil
	})
	return out, err
}

func (r *reportRepo) Revenue(from, to time.Time) (*repository.RevenueRow, error) {
	report := &repository.RevenueRow{
		CashRevenue:     decimal.Zero,
		CashlessRevenue: decimal.Zero,
		TotalProfit:     decimal.Zero,
	}
	err := r.v.read(func(d *dataset) error {
		for _, s := range d.sales {
			if !inRange(s.SaleDate, from, to) {
				continue
			}
			switch s.PaymentType {
			case model.PaymentCash:
				report.CashRevenue = report.CashRevenue.Add(s.TotalWithSalesTax)
			case model.PaymentCashless:
				report.CashlessRevenue = report.CashlessRevenue.Add(s.TotalWithVAT)
			}
		}
		for _, item := range d.saleItems {
			sale, ok := d.sales[item.SaleID]
			if !ok || !inRange(sale.SaleDate, from, to) {
				continue
			}
			report.TotalProfit = report.TotalProfit.Add(item.FinalPrice.Sub(item.PurchasePrice))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	report.TotalRevenue = report.CashRevenue.Add(report.CashlessRevenue)
	return report, nil
}

func (r *reportRepo) StorePointTurnover(from, to time.Time) ([]repository.TurnoverRow, error) {
	var out []repository.TurnoverRow
	err := r.v.read(func(d *dataset) error {
		byPoint := map[uuid.UUID]*repository.TurnoverRow{}
		for _, s := range d.sales {
			if !inRange(s.SaleDate, from, to) {
				continue
			}
			row, ok := byPoint[s.StorePointID]
			if !ok {
				row = &repository.TurnoverRow{StorePointID: s.StorePointID, Revenue: decimal.Zero}
				if sp, ok := d.storePoints[s.StorePointID]; ok {
					row.StorePointName = sp.Name
				}
				byPoint[s.StorePointID] = row
			}
			row.Revenue = row.Revenue.Add(s.TotalWithSalesTax)
			row.SalesCount++
		}
		out = make([]repository.TurnoverRow, 0, len(byPoint))
		for _, row := range byPoint {
			out = append(out, *row)
		}
		slices.SortFunc(out, func(a, b repository.TurnoverRow) int {
			return cmp.Or(b.Revenue.Cmp(a.Revenue), strings.Compare(a.StorePointName, b.StorePointName))
		})
		return nil
	})
	return out, err
}

func (r *reportRepo) ShippedToStorePoint(storePointID uuid.UUID, from, to time.Time) ([]repository.ShippedRow, error) {
	var out []repository.ShippedRow
	err := r.v.read(func(d *dataset) error {
		byName := map[string]*repository.ShippedRow{}
		for _, e := range d.equipment {
			if e.IsOnCentralWarehouse || e.StorePointID == nil || *e.StorePointID != storePointID {
				continue
			}
			if !inRange(e.ReceiptDate, from, to) {
				continue
			}
			row, ok := byName[e.Name]
			if !ok {
				row = &repository.ShippedRow{Name: e.Name, ShipmentDate: e.ReceiptDate}
				byName[e.Name] = row
			}
			row.Quantity++
			if e.ReceiptDate.Before(row.ShipmentDate) {
				row.ShipmentDate = e.ReceiptDate
			}
		}
		out = make([]repository.ShippedRow, 0, len(byName))
		for _, row := range byName {
			out = append(out, *row)
		}
		slices.SortFunc(out, func(a, b repository.ShippedRow) int {
			return strings.Compare(a.Name, b.Name)
		})
		return nil
	})
	return out, err
}

func (r *reportRepo) SoldAtStorePoint(storePointID uuid.UUID, from, to time.Time) ([]repository.SoldRow, error) {
	var out []repository.SoldRow
	err := r.v.read(func(d *dataset) error {
		byName := map[string]*repository.SoldRow{}
		for _, item := range d.saleItems {
			sale, ok := d.sales[item.SaleID]
			if !ok || sale.StorePointID != storePointID || !inRange(sale.SaleDate, from, to) {
				continue
			}
			name := d.equipment[item.EquipmentID].Name
			row, ok := byName[name]
			if !ok {
				row = &repository.SoldRow{Name: name, Revenue: decimal.Zero, Profit: decimal.Zero}
				byName[name] = row
			}
			row.Quantity++
			row.Revenue = row.Revenue.Add(item.FinalPrice)
			row.Profit = row.Profit.Add(item.FinalPrice.Sub(item.PurchasePrice))
		}
		out = make([]repository.SoldRow, 0, len(byName))
		for _, row := range byName {
			out = append(out, *row)
		}
		slices.SortFunc(out, func(a, b repository.SoldRow) int {
			return strings.Compare(a.Name, b.Name)
		})
		return nil
	})
	return out, err
}
