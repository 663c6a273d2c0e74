package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestEquipmentPlacement(t *testing.T) {
	sp := &StorePoint{Name: "Center"}
	spID := uuid.New()
	soldAt := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		e        Equipment
		sellable bool
		location string
	}{
		{"central warehouse", Equipment{IsOnCentralWarehouse: true}, false, LocationCentralWarehouse},
		{"on store point", Equipment{StorePointID: &spID, StorePoint: sp}, true, "Center"},
		{"sold", Equipment{StorePointID: &spID, StorePoint: sp, IsSold: true, SoldDate: &soldAt}, false, "Center"},
		{"nowhere", Equipment{}, false, LocationUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Sellable(); got != tt.sellable {
				t.Errorf("Sellable() = %v, want %v", got, tt.sellable)
			}
			if got := tt.e.Location(); got != tt.location {
				t.Errorf("Location() = %q, want %q", got, tt.location)
			}
		})
	}
}

func TestSellerFullName(t *testing.T) {
	tests := []struct {
		seller Seller
		want   string
	}{
		{Seller{FirstName: "Ivan", LastName: "Petrov", MiddleName: "Sergeevich"}, "Petrov Ivan Sergeevich"},
		{Seller{FirstName: "Ivan", LastName: "Petrov"}, "Petrov Ivan"},
	}
	for _, tt := range tests {
		if got := tt.seller.FullName(); got != tt.want {
			t.Errorf("FullName() = %q, want %q", got, tt.want)
		}
	}
}

func TestScheduleToResponse(t *testing.T) {
	s := SellerSchedule{
		WorkDate:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:00",
		EndTime:    "18:00",
		Seller:     &Seller{FirstName: "Ivan", LastName: "Petrov"},
		StorePoint: &StorePoint{Name: "Center"},
	}
	resp := s.ToResponse()
	if resp.WorkDate != "2024-03-05" || resp.SellerName != "Petrov Ivan" || resp.StorePointName != "Center" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestViolationExcess(t *testing.T) {
	v := CashLimitViolation{
		LimitAmount:  decimal.NewFromInt(200000),
		ActualAmount: decimal.RequireFromString("318900"),
	}
	if !v.Excess().Equal(decimal.NewFromInt(118900)) {
		t.Errorf("Excess() = %s", v.Excess())
	}
}

func TestPaymentTypeValid(t *testing.T) {
	for p, want := range map[PaymentType]bool{PaymentCash: true, PaymentCashless: true, "BARTER": false, "": false} {
		if p.Valid() != want {
			t.Errorf("%q.Valid() = %v", p, !want)
		}
	}
}
