package service

import (
	"context"
	"testing"
	"time"

	"computer-store-ws/internal/model"
)

func TestReports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sales := f.sales()
	reports := NewReportService(f.store, f.calendar)

	laptop := f.equipment(t, "Laptop", "80000", "0.15", f.shop)
	mouse := f.equipment(t, "Mouse", "1000", "0.10", f.shop)
	f.equipment(t, "Mouse", "1000", "0.10", nil)

	if _, err := sales.CreateSale(ctx, f.cashRequest(item(laptop.ID, "0.10"))); err != nil {
		t.Fatal(err)
	}
	if _, err := sales.CreateSale(ctx, &CreateSaleRequest{
		SellerID:     f.seller.ID,
		StorePointID: f.shop.ID,
		PaymentType:  model.PaymentCashless,
		Items:        []SaleItemRequest{item(mouse.ID, "0")},
	}); err != nil {
		t.Fatal(err)
	}

	day := testNow

	t.Run("revenue", func(t *testing.T) {
		r, err := reports.Revenue(ctx, day, day)
		if err != nil {
			t.Fatal(err)
		}
		assertDecimal(t, "cash", r.CashRevenue, "123900")
		// 1000 * 1.1 * 1.18
		assertDecimal(t, "cashless", r.CashlessRevenue, "1298")
		assertDecimal(t, "total", r.TotalRevenue, "125198")
		assertDecimal(t, "profit", r.TotalProfit, "44198")
	})

	t.Run("sellers sales", func(t *testing.T) {
		rows, err := reports.SellersSales(ctx, day, day)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 || rows[0].SalesCount != 2 || rows[0].SellerName != "Petrov Ivan" {
			t.Fatalf("unexpected rows %+v", rows)
		}
		assertDecimal(t, "total", rows[0].TotalSales, "125198")
	})

	t.Run("seller sales", func(t *testing.T) {
		lines, err := reports.SellerSales(ctx, f.seller.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(lines) != 2 {
			t.Fatalf("expected 2 sales, got %d", len(lines))
		}
		for _, l := range lines {
			if len(l.Items) != 1 || l.StorePointName != "Center" {
				t.Errorf("unexpected line %+v", l)
			}
		}
	})

	t.Run("warehouse", func(t *testing.T) {
		total, err := reports.TotalWarehouse(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(total) != 1 || total[0].Location != model.LocationCentralWarehouse || total[0].SupplierName != f.supplier.Name {
			t.Errorf("unexpected warehouse %+v", total)
		}

		central, err := reports.CentralWarehouseState(ctx, day.AddDate(0, 0, -11))
		if err != nil {
			t.Fatal(err)
		}
		if len(central) != 0 {
			t.Errorf("nothing was received yet on that date, got %+v", central)
		}

		unsold, err := reports.UnsoldProducts(ctx, day.AddDate(0, 0, -30), day)
		if err != nil {
			t.Fatal(err)
		}
		if len(unsold) != 1 || unsold[0].DaysInStock != 10 {
			t.Errorf("unexpected unsold %+v", unsold)
		}
	})

	t.Run("monthly", func(t *testing.T) {
		monthly, err := reports.Monthly(ctx, 2024, time.March)
		if err != nil {
			t.Fatal(err)
		}
		var center *MonthlyStorePoint
		for i := range monthly {
			if monthly[i].StorePointID == f.shop.ID {
				center = &monthly[i]
			}
		}
		if center == nil {
			t.Fatal("store point missing from monthly report")
		}
		// both units arrived in February
		if len(center.Shipped) != 0 || len(center.Sold) != 2 {
			t.Errorf("unexpected monthly %+v", center)
		}
		assertDecimal(t, "revenue", center.TotalRevenue, "125198")
		assertDecimal(t, "profit", center.TotalProfit, "44198")

		february, err := reports.Monthly(ctx, 2024, time.February)
		if err != nil {
			t.Fatal(err)
		}
		for _, m := range february {
			if m.StorePointID == f.shop.ID && (len(m.Shipped) != 2 || len(m.Sold) != 0) {
				t.Errorf("unexpected February %+v", m)
			}
		}

		turnover, err := reports.StorePointTurnover(ctx, 2024, time.March)
		if err != nil {
			t.Fatal(err)
		}
		if len(turnover) != 1 || turnover[0].SalesCount != 2 {
			t.Errorf("unexpected turnover %+v", turnover)
		}
	})

	t.Run("seller week orders", func(t *testing.T) {
		f.customerOrder(t, "GPU", 1, testNow.Add(-time.Hour))
		f.customerOrder(t, "GPU", 1, testNow.AddDate(0, 0, -7))
		orders, err := reports.SellerWeekOrders(ctx, f.seller.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(orders) != 1 {
			t.Errorf("expected only this week's order, got %d", len(orders))
		}
	})
}

func TestCalendarWeekStartsOnMonday(t *testing.T) {
	c := Calendar{Location: time.UTC, Now: time.Now}
	tests := []struct {
		at   time.Time
		want time.Time
	}{
		{time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		from, to := c.Week(tt.at)
		if !from.Equal(tt.want) || !to.Equal(tt.want.AddDate(0, 0, 7)) {
			t.Errorf("Week(%s) = %s, %s", tt.at, from, to)
		}
	}
}
