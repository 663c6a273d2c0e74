package handler

import (
	"computer-store-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ReferenceHandler serves the catalogue of suppliers, store points,
// cash registers and sellers
type ReferenceHandler struct {
	service service.ReferenceService
}

func NewReferenceHandler(s service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{service: s}
}

func (h *ReferenceHandler) CreateSupplier(c *fiber.Ctx) error {
	var req service.CreateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	supplier, err := h.service.CreateSupplier(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Supplier created", "data": supplier})
}

func (h *ReferenceHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.ListSuppliers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": suppliers, "total": len(suppliers)})
}

func (h *ReferenceHandler) CreateStorePoint(c *fiber.Ctx) error {
	var req service.CreateStorePointRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	storePoint, err := h.service.CreateStorePoint(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Store point created", "data": storePoint})
}

func (h *ReferenceHandler) GetStorePoints(c *fiber.Ctx) error {
	points, err := h.service.ListStorePoints(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": points, "total": len(points)})
}

func (h *ReferenceHandler) CreateCashRegister(c *fiber.Ctx) error {
	var req service.CreateCashRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	register, err := h.service.CreateCashRegister(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Cash register created", "data": register})
}

func (h *ReferenceHandler) GetCashRegisters(c *fiber.Ctx) error {
	registers, err := h.service.ListCashRegisters(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": registers, "total": len(registers)})
}

func (h *ReferenceHandler) CreateSeller(c *fiber.Ctx) error {
	var req service.CreateSellerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	seller, err := h.service.CreateSeller(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Seller created", "data": seller})
}

func (h *ReferenceHandler) GetSellers(c *fiber.Ctx) error {
	sellers, err := h.service.ListSellers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": sellers, "total": len(sellers)})
}
