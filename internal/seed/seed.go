// Package seed fills an empty store with a small demo catalogue.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/repository"
	"computer-store-ws/internal/service"

	"github.com/shopspring/decimal"
)

type unit struct {
	name     string
	price    string
	markup   string
	age      time.Duration
	invoice  string
	warranty int
	supplier int
	// -1 keeps the unit on the central warehouse
	storePoint int
}

const day = 24 * time.Hour

var units = []unit{
	{"Lenovo ThinkPad X1 Laptop", "80000", "0.15", 60 * day, "INV-001", 12, 0, -1},
	{"Dell UltraSharp 27\" Monitor", "25000", "0.12", 30 * day, "INV-002", 24, 1, -1},
	{"Logitech MX Keys Keyboard", "8000", "0.10", 15 * day, "INV-003", 12, 2, 0},
	{"Logitech MX Master 3 Mouse", "6000", "0.10", 10 * day, "INV-004", 12, 2, 0},
	{"Samsung 970 EVO 1TB SSD", "12000", "0.15", 20 * day, "INV-005", 60, 0, 1},
	{"Intel Core i7-13700K CPU", "35000", "0.12", 25 * day, "INV-006", 36, 1, 2},
}

// Run seeds the store unless it already holds suppliers. It reports whether anything was written.
func Run(ctx context.Context, store repository.Store, cal service.Calendar) (bool, error) {
	existing, err := store.WithContext(ctx).Suppliers().FindAll()
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		log.Println("seed: store already populated, skipping")
		return false, nil
	}

	ref := service.NewReferenceService(store)
	inv := service.NewInventoryService(store, cal, nil)
	schedules := service.NewScheduleService(store, cal)

	var suppliers []*model.Supplier
	for _, req := range []service.CreateSupplierRequest{
		{Name: "Komp-Service LLC", Address: "Moscow, Lenina st. 10", Phone: "+7 (495) 123-45-67", ContactPerson: "Ivanov I.I."},
		{Name: "TechnoMir JSC", Address: "Saint Petersburg, Nevsky pr. 25", Phone: "+7 (812) 987-65-43", ContactPerson: "Petrov P.P."},
		{Name: "Sidorov Trading", Address: "Kazan, Baumana st. 5", Phone: "+7 (843) 555-12-34", ContactPerson: "Sidorov S.S."},
	} {
		s, err := ref.CreateSupplier(ctx, &req)
		if err != nil {
			return false, fmt.Errorf("seed supplier %q: %w", req.Name, err)
		}
		suppliers = append(suppliers, s)
	}

	var points []*model.StorePoint
	for _, req := range []service.CreateStorePointRequest{
		{Name: "Central", Address: "Moscow, Tverskaya st. 15", CanProcessCashless: true},
		{Name: "North", Address: "Moscow, Polyarnaya st. 8", CanProcessCashless: true},
		{Name: "South", Address: "Moscow, Yuzhnaya st. 22"},
	} {
		sp, err := ref.CreateStorePoint(ctx, &req)
		if err != nil {
			return false, fmt.Errorf("seed store point %q: %w", req.Name, err)
		}
		points = append(points, sp)
	}

	for i, limit := range []int64{500000, 300000, 200000} {
		_, err := ref.CreateCashRegister(ctx, &service.CreateCashRegisterRequest{
			RegistrationNumber: fmt.Sprintf("KKT-%03d-2024", i+1),
			CashLimit:          decimal.NewFromInt(limit),
			StorePointID:       points[i].ID,
		})
		if err != nil {
			return false, fmt.Errorf("seed cash register: %w", err)
		}
	}

	var sellers []*model.Seller
	for _, req := range []service.CreateSellerRequest{
		{FirstName: "Alexey", LastName: "Ivanov", MiddleName: "Petrovich", Phone: "+7 (916) 123-45-67"},
		{FirstName: "Maria", LastName: "Smirnova", MiddleName: "Ivanovna", Phone: "+7 (916) 234-56-78"},
		{FirstName: "Dmitry", LastName: "Kuznetsov", MiddleName: "Alexandrovich", Phone: "+7 (916) 345-67-89"},
		{FirstName: "Elena", LastName: "Popova", MiddleName: "Sergeevna", Phone: "+7 (916) 456-78-90"},
	} {
		s, err := ref.CreateSeller(ctx, &req)
		if err != nil {
			return false, fmt.Errorf("seed seller %q: %w", req.LastName, err)
		}
		sellers = append(sellers, s)
	}

	now := cal.Now().In(cal.Location)
	monthStart, monthEnd := cal.Month(now.Year(), now.Month())
	for d := monthStart; d.Before(monthEnd); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		shifts := []service.CreateScheduleRequest{
			{SellerID: sellers[0].ID, StorePointID: points[d.Day()%2].ID, WorkDate: date, StartTime: "09:00", EndTime: "18:00"},
			{SellerID: sellers[1].ID, StorePointID: points[1].ID, WorkDate: date, StartTime: "10:00", EndTime: "19:00"},
		}
		for i := range shifts {
			if _, err := schedules.CreateSchedule(ctx, &shifts[i]); err != nil {
				return false, fmt.Errorf("seed schedule %s: %w", date, err)
			}
		}
	}

	for _, u := range units {
		received := now.Add(-u.age)
		req := &service.ReceiveEquipmentRequest{
			Name:           u.name,
			PurchasePrice:  decimal.RequireFromString(u.price),
			SupplierMarkup: decimal.RequireFromString(u.markup),
			ReceiptDate:    &received,
			InvoiceNumber:  u.invoice,
			WarrantyMonths: u.warranty,
			SupplierID:     suppliers[u.supplier].ID,
		}
		if u.storePoint >= 0 {
			req.StorePointID = &points[u.storePoint].ID
		}
		if _, err := inv.ReceiveEquipment(ctx, req); err != nil {
			return false, fmt.Errorf("seed equipment %q: %w", u.name, err)
		}
	}

	orders := []model.CustomerOrder{
		{SellerID: sellers[0].ID, OrderDate: now.Add(-3 * day), EquipmentName: "NVIDIA RTX 4080 GPU", Quantity: 2, Notes: "needed for a custom build"},
		{SellerID: sellers[1].ID, OrderDate: now.Add(-2 * day), EquipmentName: "DDR5 32GB RAM", Quantity: 4, Notes: "server upgrade"},
	}
	err = store.Transaction(ctx, func(tx repository.Store) error {
		for i := range orders {
			if err := tx.CustomerOrders().Create(&orders[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed customer orders: %w", err)
	}

	log.Printf("seed: %d suppliers, %d store points, %d sellers, %d units", len(suppliers), len(points), len(sellers), len(units))
	return true, nil
}
