package handler

import (
	"computer-store-ws/internal/repository"
	"computer-store-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// ReceiveEquipment registers a delivered unit
// POST /api/v1/equipment
func (h *InventoryHandler) ReceiveEquipment(c *fiber.Ctx) error {
	var req service.ReceiveEquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	equipment, err := h.service.ReceiveEquipment(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Equipment received",
		"data":    equipment,
	})
}

// GetEquipmentList lists unsold units.
// Query params: store_point_id, central (true), include_sold (true)
// GET /api/v1/equipment
func (h *InventoryHandler) GetEquipmentList(c *fiber.Ctx) error {
	filter := repository.EquipmentFilter{
		CentralOnly: c.QueryBool("central"),
		IncludeSold: c.QueryBool("include_sold"),
	}
	if v := c.Query("store_point_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badRequest(c, "Invalid store_point_id")
		}
		filter.StorePointID = &id
	}

	items, err := h.service.ListEquipment(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": items, "total": len(items)})
}

// GET /api/v1/equipment/:id
func (h *InventoryHandler) GetEquipment(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid equipment ID")
	}

	equipment, err := h.service.GetEquipment(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": equipment})
}

type transferRequest struct {
	StorePointID uuid.UUID `json:"store_point_id"`
}

// Transfer moves a unit from the central warehouse to a store point.
// A refused transfer is still a 200 with transferred=false.
// POST /api/v1/equipment/:id/transfer
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid equipment ID")
	}

	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	if req.StorePointID == uuid.Nil {
		return badRequest(c, "store_point_id is required")
	}

	moved, err := h.service.TransferEquipmentToStorePoint(c.UserContext(), id, req.StorePointID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"transferred": moved})
}
