package handler

import (
	"computer-store-ws/internal/pricing"
	"computer-store-ws/internal/repository"
	"computer-store-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Services bundles everything the HTTP layer calls into
type Services struct {
	Sales     service.SalesService
	Orders    service.OrderService
	Inventory service.InventoryService
	Reference service.ReferenceService
	Schedules service.ScheduleService
	Reports   service.ReportService
	Calendar  service.Calendar
}

// Register mounts the API routes on router, normally the /api/v1 group
func Register(router fiber.Router, s Services) {
	saleHandler := NewSaleHandler(s.Sales, s.Calendar)
	orderHandler := NewOrderHandler(s.Orders, s.Calendar)
	invHandler := NewInventoryHandler(s.Inventory)
	refHandler := NewReferenceHandler(s.Reference)
	scheduleHandler := NewScheduleHandler(s.Schedules, s.Calendar)
	reportHandler := NewReportHandler(s.Reports, s.Calendar)

	// Sales
	router.Post("/sales", saleHandler.CreateSale)
	router.Get("/sales/:id", saleHandler.GetSale)
	router.Post("/cash-registers/:id/violations/check", saleHandler.CheckViolation)

	// Orders
	router.Post("/customer-orders", orderHandler.CreateCustomerOrder)
	router.Post("/supplier-orders/weekly", orderHandler.GenerateWeekly)

	// Equipment
	router.Post("/equipment", invHandler.ReceiveEquipment)
	router.Get("/equipment", invHandler.GetEquipmentList)
	router.Get("/equipment/:id", invHandler.GetEquipment)
	router.Post("/equipment/:id/transfer", invHandler.Transfer)

	// Reference data
	router.Post("/suppliers", refHandler.CreateSupplier)
	router.Get("/suppliers", refHandler.GetSuppliers)
	router.Post("/store-points", refHandler.CreateStorePoint)
	router.Get("/store-points", refHandler.GetStorePoints)
	router.Post("/cash-registers", refHandler.CreateCashRegister)
	router.Get("/cash-registers", refHandler.GetCashRegisters)
	router.Post("/sellers", refHandler.CreateSeller)
	router.Get("/sellers", refHandler.GetSellers)

	// Schedules
	router.Post("/schedules", scheduleHandler.CreateSchedule)
	router.Get("/schedules", scheduleHandler.GetSchedules)
	router.Delete("/schedules/:id", scheduleHandler.DeleteSchedule)

	// Reports
	reports := router.Group("/reports")
	reports.Get("/store-points/:id/equipment", reportHandler.StorePointEquipment)
	reports.Get("/central-warehouse", reportHandler.CentralWarehouse)
	reports.Get("/warehouse", reportHandler.TotalWarehouse)
	reports.Get("/sellers/:id/sales", reportHandler.SellerSales)
	reports.Get("/sellers/:id/week-orders", reportHandler.SellerWeekOrders)
	reports.Get("/sellers/:id/schedule", scheduleHandler.GetSellerSchedule)
	reports.Get("/sellers-sales", reportHandler.SellersSales)
	reports.Get("/popular-products", reportHandler.PopularProducts)
	reports.Get("/revenue", reportHandler.Revenue)
	reports.Get("/unsold", reportHandler.UnsoldProducts)
	reports.Get("/supplier-orders", reportHandler.WeeklySupplierOrders)
	reports.Get("/turnover", reportHandler.StorePointTurnover)
	reports.Get("/cash-limit-violations", reportHandler.CashLimitViolations)
	reports.Get("/monthly", reportHandler.Monthly)
}

// NewServices wires every service over one store
func NewServices(store repository.Store, rates pricing.Rates, cal service.Calendar, notifier service.Notifier) Services {
	return Services{
		Sales:     service.NewSalesService(store, rates, cal, notifier),
		Orders:    service.NewOrderService(store, cal, notifier),
		Inventory: service.NewInventoryService(store, cal, notifier),
		Reference: service.NewReferenceService(store),
		Schedules: service.NewScheduleService(store, cal),
		Reports:   service.NewReportService(store, cal),
		Calendar:  cal,
	}
}
