package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"computer-store-ws/internal/pricing"
	"computer-store-ws/internal/repository/memory"
	"computer-store-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	cal := service.NewCalendar(time.UTC)
	Register(app.Group("/api/v1"), NewServices(memory.New(), pricing.DefaultRates(), cal, nil))
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("%s %s: invalid JSON %q", method, path, raw)
		}
	}
	return resp.StatusCode, out
}

func createdID(t *testing.T, app *fiber.App, path string, body interface{}) string {
	t.Helper()
	status, out := call(t, app, "POST", path, body)
	if status != fiber.StatusCreated {
		t.Fatalf("POST %s: status %d, body %v", path, status, out)
	}
	return out["data"].(map[string]interface{})["id"].(string)
}

func TestSaleFlow(t *testing.T) {
	app := newTestApp()

	shop := createdID(t, app, "/api/v1/store-points", map[string]interface{}{"name": "Center", "can_process_cashless": true})
	seller := createdID(t, app, "/api/v1/sellers", map[string]interface{}{"first_name": "Ivan", "last_name": "Petrov"})
	supplier := createdID(t, app, "/api/v1/suppliers", map[string]interface{}{"name": "DNS Wholesale"})
	register := createdID(t, app, "/api/v1/cash-registers", map[string]interface{}{
		"registration_number": "KKT-001",
		"cash_limit":          "200000",
		"store_point_id":      shop,
	})
	receive := func(name string) string {
		return createdID(t, app, "/api/v1/equipment", map[string]interface{}{
			"name":            name,
			"purchase_price":  "80000",
			"supplier_markup": "0.15",
			"supplier_id":     supplier,
			"store_point_id":  shop,
		})
	}
	laptop := receive("Laptop")
	notebook := receive("Notebook")

	sale := func(equipment, markup string) map[string]interface{} {
		return map[string]interface{}{
			"seller_id":        seller,
			"store_point_id":   shop,
			"payment_type":     "CASH",
			"cash_register_id": register,
			"items":            []map[string]string{{"equipment_id": equipment, "seller_markup": markup}},
		}
	}

	status, out := call(t, app, "POST", "/api/v1/sales", sale(laptop, "0.10"))
	if status != fiber.StatusCreated {
		t.Fatalf("create sale: status %d, body %v", status, out)
	}
	total := decimal.RequireFromString(out["data"].(map[string]interface{})["total_with_sales_tax"].(string))
	if !total.Equal(decimal.NewFromInt(123900)) {
		t.Errorf("total = %s, want 123900", total)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		kind   string
	}{
		{"sell twice", "POST", "/api/v1/sales", sale(laptop, "0.10"), fiber.StatusConflict, "ALREADY_SOLD"},
		{"markup over ceiling", "POST", "/api/v1/sales", sale(notebook, "0.20"), fiber.StatusUnprocessableEntity, "MARKUP_EXCEEDED"},
		{"invalid json", "POST", "/api/v1/sales", "{", fiber.StatusBadRequest, "VALIDATION"},
		{"empty cart", "POST", "/api/v1/sales", map[string]interface{}{"seller_id": seller, "store_point_id": shop, "payment_type": "CASH"}, fiber.StatusBadRequest, "VALIDATION"},
		{"unknown sale", "GET", "/api/v1/sales/" + uuid.NewString(), nil, fiber.StatusNotFound, "NOT_FOUND"},
		{"bad sale id", "GET", "/api/v1/sales/abc", nil, fiber.StatusBadRequest, "VALIDATION"},
		{"bad period", "GET", "/api/v1/reports/revenue?from=2024-13-01", nil, fiber.StatusBadRequest, "VALIDATION"},
		{"bad month", "GET", "/api/v1/reports/monthly?month=13", nil, fiber.StatusBadRequest, "VALIDATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := call(t, app, tt.method, tt.path, tt.body)
			if status != tt.status || out["kind"] != tt.kind {
				t.Errorf("got %d %v, want %d %s", status, out, tt.status, tt.kind)
			}
		})
	}

	status, out = call(t, app, "GET", "/api/v1/reports/revenue", nil)
	if status != fiber.StatusOK {
		t.Fatalf("revenue: status %d", status)
	}
	cash := decimal.RequireFromString(out["data"].(map[string]interface{})["cash_revenue"].(string))
	if !cash.Equal(decimal.NewFromInt(123900)) {
		t.Errorf("cash revenue = %s", cash)
	}

	status, out = call(t, app, "POST", "/api/v1/cash-registers/"+register+"/violations/check", nil)
	if status != fiber.StatusOK || out["recorded"] != false {
		t.Errorf("violation check: %d %v", status, out)
	}
}

func TestTransferReportsOutcome(t *testing.T) {
	app := newTestApp()

	shop := createdID(t, app, "/api/v1/store-points", map[string]interface{}{"name": "Center"})
	supplier := createdID(t, app, "/api/v1/suppliers", map[string]interface{}{"name": "DNS Wholesale"})
	unit := createdID(t, app, "/api/v1/equipment", map[string]interface{}{
		"name":            "Monitor",
		"purchase_price":  "10000",
		"supplier_markup": "0.10",
		"supplier_id":     supplier,
	})

	tests := []struct {
		name      string
		equipment string
		body      interface{}
		status    int
		moved     interface{}
	}{
		{"moves central unit", unit, map[string]string{"store_point_id": shop}, fiber.StatusOK, true},
		{"unknown unit", uuid.NewString(), map[string]string{"store_point_id": shop}, fiber.StatusOK, false},
		{"unknown store point", unit, map[string]string{"store_point_id": uuid.NewString()}, fiber.StatusOK, false},
		{"missing store point", unit, map[string]string{}, fiber.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := call(t, app, "POST", "/api/v1/equipment/"+tt.equipment+"/transfer", tt.body)
			if status != tt.status || out["transferred"] != tt.moved {
				t.Errorf("got %d %v", status, out)
			}
		})
	}

	status, out := call(t, app, "GET", "/api/v1/equipment?store_point_id="+shop, nil)
	if status != fiber.StatusOK || out["total"] != float64(1) {
		t.Errorf("store point listing: %d %v", status, out)
	}
}

func TestScheduleRoutes(t *testing.T) {
	app := newTestApp()

	shop := createdID(t, app, "/api/v1/store-points", map[string]interface{}{"name": "Center"})
	seller := createdID(t, app, "/api/v1/sellers", map[string]interface{}{"first_name": "Ivan", "last_name": "Petrov"})
	shift := func(start, end string) map[string]string {
		return map[string]string{
			"seller_id":      seller,
			"store_point_id": shop,
			"work_date":      "2024-03-05",
			"start_time":     start,
			"end_time":       end,
		}
	}

	id := createdID(t, app, "/api/v1/schedules", shift("09:00", "18:00"))

	status, out := call(t, app, "POST", "/api/v1/schedules", shift("12:00", "20:00"))
	if status != fiber.StatusConflict || out["kind"] != "OVERLAP" {
		t.Errorf("overlap: %d %v", status, out)
	}

	status, out = call(t, app, "GET", "/api/v1/reports/sellers/"+seller+"/schedule?year=2024&month=3", nil)
	if status != fiber.StatusOK || out["total"] != float64(1) {
		t.Errorf("month: %d %v", status, out)
	}

	if status, _ := call(t, app, "DELETE", "/api/v1/schedules/"+id, nil); status != fiber.StatusOK {
		t.Errorf("delete: %d", status)
	}
	if status, out := call(t, app, "DELETE", "/api/v1/schedules/"+id, nil); status != fiber.StatusNotFound {
		t.Errorf("second delete: %d %v", status, out)
	}
}
