package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/repository"
	"computer-store-ws/pkg/apperror"
	"computer-store-ws/pkg/validator"

	"github.com/google/uuid"
)

type OrderService interface {
	CreateCustomerOrder(ctx context.Context, req *CreateCustomerOrderRequest) (*model.CustomerOrder, error)
	// GenerateWeeklySupplierOrders folds the unprocessed customer orders of
	// [weekStart, weekStart+7d) into one supplier order per equipment name
	GenerateWeeklySupplierOrders(ctx context.Context, weekStart time.Time) ([]model.SupplierOrder, error)
}

type CreateCustomerOrderRequest struct {
	SellerID      uuid.UUID `json:"seller_id" validate:"uuid_required"`
	EquipmentName string    `json:"equipment_name" validate:"required,max=255"`
	Quantity      int       `json:"quantity" validate:"gt=0"`
	Notes         string    `json:"notes"`
}

type orderService struct {
	store    repository.Store
	calendar Calendar
	notifier Notifier
}

func NewOrderService(store repository.Store, calendar Calendar, notifier Notifier) OrderService {
	return &orderService{
		store:    store,
		calendar: calendar,
		notifier: notifierOrNop(notifier),
	}
}

func (s *orderService) CreateCustomerOrder(ctx context.Context, req *CreateCustomerOrderRequest) (*model.CustomerOrder, error) {
	req.EquipmentName = strings.TrimSpace(req.EquipmentName)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	store := s.store.WithContext(ctx)
	if _, err := store.Sellers().FindByID(req.SellerID); err != nil {
		return nil, notFound(err, apperror.EntitySeller, req.SellerID)
	}

	order := &model.CustomerOrder{
		SellerID:      req.SellerID,
		OrderDate:     s.calendar.now(),
		EquipmentName: req.EquipmentName,
		Quantity:      req.Quantity,
		Notes:         req.Notes,
	}
	if err := store.CustomerOrders().Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// orderGroup is the customer demand for one equipment name
type orderGroup struct {
	name     string
	quantity int
	orderIDs []uuid.UUID
}

func (s *orderService) GenerateWeeklySupplierOrders(ctx context.Context, weekStart time.Time) ([]model.SupplierOrder, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)
	supplierOrders := []model.SupplierOrder{}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		pending, err := tx.CustomerOrders().FindUnprocessed(weekStart, weekEnd)
		if err != nil || len(pending) == 0 {
			return err
		}

		var (
			processed []uuid.UUID
			suppliers []*model.Supplier
		)
		now := s.calendar.now()
		for _, group := range groupByName(pending) {
			supplier, err := resolveSupplier(tx, group.name)
			if err != nil {
				return err
			}
			if supplier == nil {
				continue
			}

			supplierOrders = append(supplierOrders, model.SupplierOrder{
				SupplierID:    supplier.ID,
				OrderDate:     now,
				WeekStartDate: weekStart,
				WeekEndDate:   weekEnd,
				OrderDetails:  fmt.Sprintf("%s - %d шт. (Заказов: %d)", group.name, group.quantity, len(group.orderIDs)),
			})
			suppliers = append(suppliers, supplier)
			processed = append(processed, group.orderIDs...)
		}

		if len(supplierOrders) == 0 {
			return nil
		}
		if err := tx.SupplierOrders().CreateBatch(supplierOrders); err != nil {
			return err
		}
		for i := range supplierOrders {
			supplierOrders[i].Supplier = suppliers[i]
		}
		return tx.CustomerOrders().MarkProcessed(processed)
	})
	if err != nil {
		return nil, err
	}

	if len(supplierOrders) > 0 {
		log.Printf("Generated %d supplier orders for week starting %s", len(supplierOrders), weekStart.Format("2006-01-02"))
		s.notifier.Publish(EventSupplierOrdersGenerated, supplierOrders)
	}
	return supplierOrders, nil
}

// groupByName keeps the order in which names first appear
func groupByName(orders []model.CustomerOrder) []*orderGroup {
	var groups []*orderGroup
	index := map[string]*orderGroup{}
	for _, o := range orders {
		g, ok := index[o.EquipmentName]
		if !ok {
			g = &orderGroup{name: o.EquipmentName}
			index[o.EquipmentName] = g
			groups = append(groups, g)
		}
		g.quantity += o.Quantity
		g.orderIDs = append(g.orderIDs, o.ID)
	}
	return groups
}

// resolveSupplier prefers a supplier that already delivered this exact name and
// falls back to the first registered one. nil means there are no suppliers at all.
func resolveSupplier(tx repository.Store, name string) (*model.Supplier, error) {
	supplier, err := tx.Suppliers().FindByEquipmentName(name)
	if err == nil {
		return supplier, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	supplier, err = tx.Suppliers().FindFirst()
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return supplier, err
}
