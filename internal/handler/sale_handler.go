package handler

import (
	"computer-store-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service  service.SalesService
	calendar service.Calendar
}

func NewSaleHandler(s service.SalesService, cal service.Calendar) *SaleHandler {
	return &SaleHandler{service: s, calendar: cal}
}

// CreateSale handles a checkout
// POST /api/v1/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	sale, err := h.service.CreateSale(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Sale created",
		"data":    sale,
	})
}

// GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid sale ID")
	}

	sale, err := h.service.GetSale(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": sale})
}

type violationCheckRequest struct {
	Date string `json:"date"`
}

// CheckViolation reconciles one register for one day
// POST /api/v1/cash-registers/:id/violations/check
func (h *SaleHandler) CheckViolation(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid cash register ID")
	}

	var req violationCheckRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid JSON")
		}
	}
	date, err := parseDate(req.Date, h.calendar)
	if err != nil {
		return badRequest(c, "Invalid date format, use YYYY-MM-DD")
	}

	violation, err := h.service.CheckAndRecordCashLimitViolation(c.UserContext(), id, date)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"recorded": violation != nil,
		"data":     violation,
	})
}
