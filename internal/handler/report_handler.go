package handler

import (
	"computer-store-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service  service.ReportService
	calendar service.Calendar
}

func NewReportHandler(s service.ReportService, cal service.Calendar) *ReportHandler {
	return &ReportHandler{service: s, calendar: cal}
}

// GET /api/v1/reports/store-points/:id/equipment
func (h *ReportHandler) StorePointEquipment(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid store point ID")
	}
	lines, err := h.service.StorePointEquipment(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": lines, "total": len(lines)})
}

// CentralWarehouse lists what sat on the central warehouse by the given date
// GET /api/v1/reports/central-warehouse?date=YYYY-MM-DD
func (h *ReportHandler) CentralWarehouse(c *fiber.Ctx) error {
	date, err := parseDate(c.Query("date"), h.calendar)
	if err != nil {
		return badRequest(c, "Invalid date format, use YYYY-MM-DD")
	}
	lines, err := h.service.CentralWarehouseState(c.UserContext(), date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": lines, "date": date.Format(dateLayout), "total": len(lines)})
}

// GET /api/v1/reports/warehouse
func (h *ReportHandler) TotalWarehouse(c *fiber.Ctx) error {
	lines, err := h.service.TotalWarehouse(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": lines, "total": len(lines)})
}

// GET /api/v1/reports/sellers/:id/sales
func (h *ReportHandler) SellerSales(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid seller ID")
	}
	lines, err := h.service.SellerSales(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": lines, "total": len(lines)})
}

// GET /api/v1/reports/sellers/:id/week-orders
func (h *ReportHandler) SellerWeekOrders(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid seller ID")
	}
	orders, err := h.service.SellerWeekOrders(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": orders, "total": len(orders)})
}

// GET /api/v1/reports/sellers-sales?from=&to=
func (h *ReportHandler) SellersSales(c *fiber.Ctx) error {
	from, to, err := period(c, h.calendar)
	if err != nil {
		return badRequest(c, "Invalid period: "+err.Error())
	}
	rows, err := h.service.SellersSales(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows, "total": len(rows)})
}

// GET /api/v1/reports/popular-products?from=&to=
func (h *ReportHandler) PopularProducts(c *fiber.Ctx) error {
	from, to, err := period(c, h.calendar)
	if err != nil {
		return badRequest(c, "Invalid period: "+err.Error())
	}
	rows, err := h.service.PopularProducts(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows, "total": len(rows)})
}

// GET /api/v1/reports/revenue?from=&to=
func (h *ReportHandler) Revenue(c *fiber.Ctx) error {
	from, to, err := period(c, h.calendar)
	if err != nil {
		return badRequest(c, "Invalid period: "+err.Error())
	}
	revenue, err := h.service.Revenue(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": revenue,
		"from": from.Format(dateLayout),
		"to":   to.Format(dateLayout),
	})
}

// GET /api/v1/reports/unsold?from=&to=
func (h *ReportHandler) UnsoldProducts(c *fiber.Ctx) error {
	from, to, err := period(c, h.calendar)
	if err != nil {
		return badRequest(c, "Invalid period: "+err.Error())
	}
	lines, err := h.service.UnsoldProducts(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": lines, "total": len(lines)})
}

// GET /api/v1/reports/supplier-orders?week_start=
func (h *ReportHandler) WeeklySupplierOrders(c *fiber.Ctx) error {
	weekStart, _ := h.calendar.Week(h.calendar.Now())
	if v := c.Query("week_start"); v != "" {
		date, err := parseDate(v, h.calendar)
		if err != nil {
			return badRequest(c, "Invalid week_start format, use YYYY-MM-DD")
		}
		weekStart = date
	}
	lines, err := h.service.WeeklySupplierOrders(c.UserContext(), weekStart)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": lines, "week_start": weekStart.Format(dateLayout), "total": len(lines)})
}

// GET /api/v1/reports/turnover?year=&month=
func (h *ReportHandler) StorePointTurnover(c *fiber.Ctx) error {
	year, month, err := yearMonth(c, h.calendar)
	if err != nil {
		return badRequest(c, err.Error())
	}
	rows, err := h.service.StorePointTurnover(c.UserContext(), year, month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows, "year": year, "month": int(month)})
}

// GET /api/v1/reports/cash-limit-violations
func (h *ReportHandler) CashLimitViolations(c *fiber.Ctx) error {
	lines, err := h.service.CashLimitViolations(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": lines, "total": len(lines)})
}

// GET /api/v1/reports/monthly?year=&month=
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	year, month, err := yearMonth(c, h.calendar)
	if err != nil {
		return badRequest(c, err.Error())
	}
	reports, err := h.service.Monthly(c.UserContext(), year, month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": reports, "year": year, "month": int(month)})
}
