package handler

import (
	"computer-store-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service  service.OrderService
	calendar service.Calendar
}

func NewOrderHandler(s service.OrderService, cal service.Calendar) *OrderHandler {
	return &OrderHandler{service: s, calendar: cal}
}

// POST /api/v1/customer-orders
func (h *OrderHandler) CreateCustomerOrder(c *fiber.Ctx) error {
	var req service.CreateCustomerOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	order, err := h.service.CreateCustomerOrder(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Customer order created",
		"data":    order,
	})
}

type weeklyOrdersRequest struct {
	WeekStart string `json:"week_start"`
}

// GenerateWeekly aggregates pending customer orders of [week_start, week_start+7d).
// An empty week_start means the Monday of the current week.
// POST /api/v1/supplier-orders/weekly
func (h *OrderHandler) GenerateWeekly(c *fiber.Ctx) error {
	var req weeklyOrdersRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid JSON")
		}
	}
	weekStart, _ := h.calendar.Week(h.calendar.Now())
	if req.WeekStart != "" {
		date, err := parseDate(req.WeekStart, h.calendar)
		if err != nil {
			return badRequest(c, "Invalid week_start format, use YYYY-MM-DD")
		}
		weekStart = date
	}

	orders, err := h.service.GenerateWeeklySupplierOrders(c.UserContext(), weekStart)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Supplier orders generated",
		"week_start": weekStart.Format(dateLayout),
		"data":       orders,
		"total":      len(orders),
	})
}
