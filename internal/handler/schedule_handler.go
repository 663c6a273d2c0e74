package handler

import (
	"computer-store-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	service  service.ScheduleService
	calendar service.Calendar
}

func NewScheduleHandler(s service.ScheduleService, cal service.Calendar) *ScheduleHandler {
	return &ScheduleHandler{service: s, calendar: cal}
}

// CreateSchedule handles shift planning
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c *fiber.Ctx) error {
	var req service.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	schedule, err := h.service.CreateSchedule(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Schedule created",
		"data":    schedule.ToResponse(),
	})
}

// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid schedule ID")
	}
	if err := h.service.DeleteSchedule(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Schedule deleted"})
}

// GetSchedules returns a seller's month.
// Query params: seller_id (required), year, month (default current)
// GET /api/v1/schedules
func (h *ScheduleHandler) GetSchedules(c *fiber.Ctx) error {
	sellerID, err := uuid.Parse(c.Query("seller_id"))
	if err != nil {
		return badRequest(c, "Invalid seller_id")
	}
	return h.month(c, sellerID)
}

// GET /api/v1/reports/sellers/:id/schedule
func (h *ScheduleHandler) GetSellerSchedule(c *fiber.Ctx) error {
	sellerID, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid seller ID")
	}
	return h.month(c, sellerID)
}

func (h *ScheduleHandler) month(c *fiber.Ctx, sellerID uuid.UUID) error {
	year, month, err := yearMonth(c, h.calendar)
	if err != nil {
		return badRequest(c, err.Error())
	}

	schedules, err := h.service.GetSellerMonth(c.UserContext(), sellerID, year, month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":  schedules,
		"year":  year,
		"month": int(month),
		"total": len(schedules),
	})
}
