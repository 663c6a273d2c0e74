package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/pricing"
	"computer-store-ws/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestCreateSaleCash(t *testing.T) {
	f := newFixture(t)
	e := f.equipment(t, "Laptop", "80000", "0.15", f.shop)

	sale, err := f.sales().CreateSale(context.Background(), f.cashRequest(item(e.ID, "0.10")))
	if err != nil {
		t.Fatal(err)
	}

	if len(sale.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(sale.Items))
	}
	it := sale.Items[0]
	assertDecimal(t, "price before taxes", it.PriceBeforeTaxes, "100000")
	assertDecimal(t, "vat", it.VAT, "18000")
	assertDecimal(t, "sales tax", it.SalesTax, "5900")
	assertDecimal(t, "final price", it.FinalPrice, "123900")
	assertDecimal(t, "snapshot purchase price", it.PurchasePrice, "80000")
	assertDecimal(t, "snapshot supplier markup", it.SupplierMarkup, "0.15")

	assertDecimal(t, "total amount", sale.TotalAmount, "100000")
	assertDecimal(t, "total with vat", sale.TotalWithVAT, "118000")
	assertDecimal(t, "total with sales tax", sale.TotalWithSalesTax, "123900")

	if sale.CheckNumber == nil || !strings.HasPrefix(*sale.CheckNumber, "CHK-20240304-") || len(*sale.CheckNumber) != len("CHK-20240304-")+8 {
		t.Errorf("unexpected check number %v", sale.CheckNumber)
	}
	if sale.PaymentOrderNumber != nil {
		t.Errorf("cash sale must not carry a payment order number")
	}
	if sale.CashRegisterID == nil || *sale.CashRegisterID != f.register.ID {
		t.Errorf("sale is not bound to the register")
	}

	stored, err := f.store.Equipment().FindByID(e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !stored.IsSold || stored.SoldDate == nil || !stored.SoldDate.Equal(testNow) {
		t.Errorf("equipment not marked sold: %+v", stored)
	}
	if f.notifier.count(EventSaleCreated) != 1 {
		t.Errorf("expected one sale_created event, got %v", f.notifier.events)
	}
}

func TestCreateSaleCashless(t *testing.T) {
	f := newFixture(t)
	e := f.equipment(t, "Laptop", "80000", "0.15", f.shop)

	sale, err := f.sales().CreateSale(context.Background(), &CreateSaleRequest{
		SellerID:     f.seller.ID,
		StorePointID: f.shop.ID,
		PaymentType:  model.PaymentCashless,
		Items:        []SaleItemRequest{item(e.ID, "0.10")},
	})
	if err != nil {
		t.Fatal(err)
	}

	assertDecimal(t, "sales tax", sale.Items[0].SalesTax, "0")
	assertDecimal(t, "final price", sale.Items[0].FinalPrice, "118000")
	assertDecimal(t, "total with sales tax", sale.TotalWithSalesTax, "118000")
	if sale.PaymentOrderNumber == nil || !strings.HasPrefix(*sale.PaymentOrderNumber, "PP-20240304-") {
		t.Errorf("unexpected payment order number %v", sale.PaymentOrderNumber)
	}
	if sale.CheckNumber != nil || sale.CashRegisterID != nil {
		t.Errorf("cashless sale must not carry a check number or register")
	}
}

func TestCreateSaleMarkupExceededRollsBack(t *testing.T) {
	f := newFixture(t)
	ok := f.equipment(t, "Mouse", "1000", "0.10", f.shop)
	bad := f.equipment(t, "Monitor", "20000", "0.20", f.shop)

	_, err := f.sales().CreateSale(context.Background(), f.cashRequest(item(ok.ID, "0.05"), item(bad.ID, "0.15")))

	var pe *apperror.PolicyError
	if !errors.As(err, &pe) || pe.Kind != apperror.MarkupExceeded {
		t.Fatalf("expected MarkupExceeded, got %v", err)
	}
	assertDecimal(t, "percentage", pe.Percentage, "35")

	for _, id := range []uuid.UUID{ok.ID, bad.ID} {
		e, err := f.store.Equipment().FindByID(id)
		if err != nil {
			t.Fatal(err)
		}
		if e.IsSold {
			t.Errorf("equipment %s sold despite failed sale", e.Name)
		}
	}
	total, err := f.store.Sales().SumForRegister(f.register.ID, testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	assertDecimal(t, "register total", total, "0")
}

func TestCreateSaleMarkupAtCeilingIsAllowed(t *testing.T) {
	f := newFixture(t)
	e := f.equipment(t, "Keyboard", "1000", "0.20", f.shop)

	if _, err := f.sales().CreateSale(context.Background(), f.cashRequest(item(e.ID, "0.10"))); err != nil {
		t.Fatalf("combined markup of exactly 30%% must pass: %v", err)
	}
}

func TestCreateSaleCashLimitExceeded(t *testing.T) {
	f := newFixture(t)
	f.priorCashSale(t, "195000", testNow.Add(-2*time.Hour))
	e := f.equipment(t, "Laptop", "80000", "0.15", f.shop)

	_, err := f.sales().CreateSale(context.Background(), f.cashRequest(item(e.ID, "0.10")))

	var pe *apperror.PolicyError
	if !errors.As(err, &pe) || pe.Kind != apperror.CashLimitExceeded {
		t.Fatalf("expected CashLimitExceeded, got %v", err)
	}
	assertDecimal(t, "limit", pe.Limit, "200000")
	assertDecimal(t, "attempted", pe.Attempted, "318900")

	violations, err := f.store.Violations().FindAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 1 {
		t.Fatalf("expected the violation to survive the rollback, got %d", len(violations))
	}
	assertDecimal(t, "violation limit", violations[0].LimitAmount, "200000")
	assertDecimal(t, "violation actual", violations[0].ActualAmount, "318900")

	stored, err := f.store.Equipment().FindByID(e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.IsSold {
		t.Error("equipment sold despite cash limit breach")
	}
	if f.notifier.count(EventCashLimitViolation) != 1 || f.notifier.count(EventSaleCreated) != 0 {
		t.Errorf("unexpected events %v", f.notifier.events)
	}
}

func TestCreateSaleSmallSaleOverLimit(t *testing.T) {
	f := newFixture(t)
	f.priorCashSale(t, "195000", testNow.Add(-time.Hour))
	e := f.equipment(t, "Keyboard", "10000", "0", f.shop)
	// untaxed rates keep the sale total at exactly 10000
	svc := NewSalesService(f.store, pricing.Rates{
		VAT:            decimal.Zero,
		SalesTax:       decimal.Zero,
		MaxTotalMarkup: pricing.DefaultMaxTotalMarkup,
	}, f.calendar, f.notifier)

	_, err := svc.CreateSale(context.Background(), f.cashRequest(item(e.ID, "0")))

	var pe *apperror.PolicyError
	if !errors.As(err, &pe) || pe.Kind != apperror.CashLimitExceeded {
		t.Fatalf("expected CashLimitExceeded, got %v", err)
	}
	assertDecimal(t, "limit", pe.Limit, "200000")
	assertDecimal(t, "attempted", pe.Attempted, "205000")

	violations, err := f.store.Violations().FindAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 1 {
		t.Fatalf("expected one violation, got %d", len(violations))
	}
	assertDecimal(t, "violation limit", violations[0].LimitAmount, "200000")
	assertDecimal(t, "violation actual", violations[0].ActualAmount, "205000")
	assertDecimal(t, "violation excess", violations[0].Excess(), "5000")

	stored, _ := f.store.Equipment().FindByID(e.ID)
	if stored.IsSold {
		t.Error("equipment sold despite cash limit breach")
	}
}

func TestCreateSaleCashLimitReachedExactly(t *testing.T) {
	f := newFixture(t)
	f.priorCashSale(t, "76100", testNow.Add(-time.Hour))
	// yesterday's takings do not count
	f.priorCashSale(t, "150000", testNow.AddDate(0, 0, -1))
	e := f.equipment(t, "Laptop", "80000", "0.15", f.shop)

	if _, err := f.sales().CreateSale(context.Background(), f.cashRequest(item(e.ID, "0.10"))); err != nil {
		t.Fatalf("projected total equal to the limit must pass: %v", err)
	}
	violations, _ := f.store.Violations().FindAll()
	if len(violations) != 0 {
		t.Errorf("unexpected violations %+v", violations)
	}
}

func TestCreateSaleTwiceIsConflict(t *testing.T) {
	f := newFixture(t)
	e := f.equipment(t, "SSD 1TB", "5000", "0.10", f.shop)
	svc := f.sales()

	first, err := svc.CreateSale(context.Background(), f.cashRequest(item(e.ID, "0.05")))
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.CreateSale(context.Background(), f.cashRequest(item(e.ID, "0.05")))
	if !apperror.IsConflict(err, apperror.AlreadySold) {
		t.Fatalf("expected AlreadySold, got %v", err)
	}

	again, err := svc.GetSale(context.Background(), first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Items) != 1 || !again.TotalWithSalesTax.Equal(first.TotalWithSalesTax) {
		t.Errorf("committed sale changed: %+v", again)
	}
}

func TestCreateSaleSameUnitTwiceInCart(t *testing.T) {
	f := newFixture(t)
	e := f.equipment(t, "SSD 1TB", "5000", "0.10", f.shop)

	_, err := f.sales().CreateSale(context.Background(), f.cashRequest(item(e.ID, "0.05"), item(e.ID, "0.05")))
	if !apperror.IsConflict(err, apperror.AlreadySold) {
		t.Fatalf("expected AlreadySold, got %v", err)
	}
	stored, _ := f.store.Equipment().FindByID(e.ID)
	if stored.IsSold {
		t.Error("partial sale left the unit sold")
	}
}

func TestCreateSaleRejections(t *testing.T) {
	f := newFixture(t)
	onShop := f.equipment(t, "Router", "3000", "0.10", f.shop)
	central := f.equipment(t, "Router", "3000", "0.10", nil)
	otherRegister := &model.CashRegister{RegistrationNumber: "KKT-002", CashLimit: dec("1000"), StorePointID: f.kiosk.ID}
	must(t, f.store.CashRegisters().Create(otherRegister))
	missing := uuid.New()

	tests := []struct {
		name  string
		req   func() *CreateSaleRequest
		check func(error) bool
	}{
		{
			name: "unknown seller",
			req: func() *CreateSaleRequest {
				r := f.cashRequest(item(onShop.ID, "0"))
				r.SellerID = missing
				return r
			},
			check: isNotFound(apperror.EntitySeller),
		},
		{
			name: "unknown store point",
			req: func() *CreateSaleRequest {
				r := f.cashRequest(item(onShop.ID, "0"))
				r.StorePointID = missing
				return r
			},
			check: isNotFound(apperror.EntityStorePoint),
		},
		{
			name: "cashless at cash-only store point",
			req: func() *CreateSaleRequest {
				return &CreateSaleRequest{
					SellerID:     f.seller.ID,
					StorePointID: f.kiosk.ID,
					PaymentType:  model.PaymentCashless,
					Items:        []SaleItemRequest{item(onShop.ID, "0")},
				}
			},
			check: func(err error) bool { return apperror.IsPolicy(err, apperror.CashlessNotSupported) },
		},
		{
			name: "cashless with register",
			req: func() *CreateSaleRequest {
				r := f.cashRequest(item(onShop.ID, "0"))
				r.PaymentType = model.PaymentCashless
				return r
			},
			check: func(err error) bool { return errors.Is(err, apperror.ErrValidation) },
		},
		{
			name: "cash without register",
			req: func() *CreateSaleRequest {
				r := f.cashRequest(item(onShop.ID, "0"))
				r.CashRegisterID = nil
				return r
			},
			check: func(err error) bool { return apperror.IsPolicy(err, apperror.RegisterRequired) },
		},
		{
			name: "register of another store point",
			req: func() *CreateSaleRequest {
				r := f.cashRequest(item(onShop.ID, "0"))
				r.CashRegisterID = &otherRegister.ID
				return r
			},
			check: isNotFound(apperror.EntityCashRegister),
		},
		{
			name:  "unknown equipment",
			req:   func() *CreateSaleRequest { return f.cashRequest(item(missing, "0")) },
			check: isNotFound(apperror.EntityEquipment),
		},
		{
			name:  "equipment on central warehouse",
			req:   func() *CreateSaleRequest { return f.cashRequest(item(central.ID, "0")) },
			check: func(err error) bool { return apperror.IsConflict(err, apperror.NotOnSale) },
		},
		{
			name:  "empty cart",
			req:   func() *CreateSaleRequest { return f.cashRequest() },
			check: func(err error) bool { return errors.Is(err, apperror.ErrValidation) },
		},
		{
			name: "unknown payment type",
			req: func() *CreateSaleRequest {
				r := f.cashRequest(item(onShop.ID, "0"))
				r.PaymentType = "BARTER"
				return r
			},
			check: func(err error) bool { return errors.Is(err, apperror.ErrValidation) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sales().CreateSale(context.Background(), tt.req())
			if !tt.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	stored, _ := f.store.Equipment().FindByID(onShop.ID)
	if stored.IsSold {
		t.Error("a rejected sale sold the unit")
	}
}

func isNotFound(entity string) func(error) bool {
	return func(err error) bool {
		var nf *apperror.NotFoundError
		return errors.As(err, &nf) && nf.Entity == entity
	}
}

func TestGetSaleNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.sales().GetSale(context.Background(), uuid.New())
	if !isNotFound(apperror.EntitySale)(err) {
		t.Fatalf("expected NotFound(Sale), got %v", err)
	}
}

func TestCheckAndRecordCashLimitViolationIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.priorCashSale(t, "150000", testNow.Add(-3*time.Hour))
	f.priorCashSale(t, "60000", testNow.Add(-time.Hour))
	svc := f.sales()

	first, err := svc.CheckAndRecordCashLimitViolation(context.Background(), f.register.ID, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if first == nil {
		t.Fatal("expected a violation for 210000 over a 200000 limit")
	}
	assertDecimal(t, "actual", first.ActualAmount, "210000")
	assertDecimal(t, "excess", first.Excess(), "10000")

	second, err := svc.CheckAndRecordCashLimitViolation(context.Background(), f.register.ID, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if second != nil {
		t.Errorf("second check recorded another violation: %+v", second)
	}

	violations, _ := f.store.Violations().FindAll()
	if len(violations) != 1 {
		t.Errorf("expected exactly one violation, got %d", len(violations))
	}
}

func TestCheckAndRecordCashLimitViolationWithinLimit(t *testing.T) {
	f := newFixture(t)
	f.priorCashSale(t, "200000", testNow)

	v, err := f.sales().CheckAndRecordCashLimitViolation(context.Background(), f.register.ID, testNow)
	if err != nil || v != nil {
		t.Fatalf("expected no violation, got %+v, %v", v, err)
	}

	_, err = f.sales().CheckAndRecordCashLimitViolation(context.Background(), uuid.New(), testNow)
	if !isNotFound(apperror.EntityCashRegister)(err) {
		t.Fatalf("expected NotFound(CashRegister), got %v", err)
	}
}
