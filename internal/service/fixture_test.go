package service

import (
	"sync"
	"testing"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/pricing"
	"computer-store-ws/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Monday noon
var testNow = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Publish(event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) count(event string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e == event {
			c++
		}
	}
	return c
}

type fixture struct {
	store    *memory.Store
	calendar Calendar
	notifier *recordingNotifier

	seller   *model.Seller
	shop     *model.StorePoint
	kiosk    *model.StorePoint
	register *model.CashRegister
	supplier *model.Supplier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	store.SetClock(func() time.Time { return testNow })
	f := &fixture{
		store:    store,
		calendar: Calendar{Location: time.UTC, Now: func() time.Time { return testNow }},
		notifier: &recordingNotifier{},
		seller:   &model.Seller{FirstName: "Ivan", LastName: "Petrov"},
		shop:     &model.StorePoint{Name: "Center", CanProcessCashless: true},
		kiosk:    &model.StorePoint{Name: "Kiosk"},
		supplier: &model.Supplier{Name: "DNS Wholesale"},
	}

	must(t, store.Sellers().Create(f.seller))
	must(t, store.StorePoints().Create(f.shop))
	must(t, store.StorePoints().Create(f.kiosk))
	must(t, store.Suppliers().Create(f.supplier))

	f.register = &model.CashRegister{
		RegistrationNumber: "KKT-001",
		CashLimit:          dec("200000"),
		StorePointID:       f.shop.ID,
	}
	must(t, store.CashRegisters().Create(f.register))
	return f
}

func (f *fixture) sales() SalesService {
	return NewSalesService(f.store, pricing.DefaultRates(), f.calendar, f.notifier)
}

// equipment puts a unit on the given store point, or on the central warehouse when sp is nil
func (f *fixture) equipment(t *testing.T, name, price, markup string, sp *model.StorePoint) *model.Equipment {
	t.Helper()
	e := &model.Equipment{
		Name:                 name,
		PurchasePrice:        dec(price),
		SupplierMarkup:       dec(markup),
		ReceiptDate:          testNow.AddDate(0, 0, -10),
		SupplierID:           f.supplier.ID,
		IsOnCentralWarehouse: sp == nil,
	}
	if sp != nil {
		e.StorePointID = &sp.ID
	}
	must(t, f.store.Equipment().Create(e))
	return e
}

// priorCashSale records an already committed cash sale on the fixture register
func (f *fixture) priorCashSale(t *testing.T, total string, at time.Time) {
	t.Helper()
	must(t, f.store.Sales().Create(&model.Sale{
		SaleDate:          at,
		SellerID:          f.seller.ID,
		StorePointID:      f.shop.ID,
		PaymentType:       model.PaymentCash,
		CashRegisterID:    &f.register.ID,
		TotalWithSalesTax: dec(total),
	}))
}

func (f *fixture) cashRequest(items ...SaleItemRequest) *CreateSaleRequest {
	return &CreateSaleRequest{
		SellerID:       f.seller.ID,
		StorePointID:   f.shop.ID,
		PaymentType:    model.PaymentCash,
		CashRegisterID: &f.register.ID,
		Items:          items,
	}
}

func item(id uuid.UUID, markup string) SaleItemRequest {
	return SaleItemRequest{EquipmentID: id, SellerMarkup: dec(markup)}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: got %s, want %s", name, got, want)
	}
}
