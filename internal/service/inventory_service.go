package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/repository"
	"computer-store-ws/pkg/apperror"
	"computer-store-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryService interface {
	ReceiveEquipment(ctx context.Context, req *ReceiveEquipmentRequest) (*model.Equipment, error)
	// TransferEquipmentToStorePoint fails softly: false means the unit is missing,
	// already sold, or the store point does not exist
	TransferEquipmentToStorePoint(ctx context.Context, equipmentID, storePointID uuid.UUID) (bool, error)
	GetEquipment(ctx context.Context, id uuid.UUID) (*model.Equipment, error)
	ListEquipment(ctx context.Context, filter repository.EquipmentFilter) ([]model.Equipment, error)
}

// ReceiveEquipmentRequest registers a supplier delivery of one unit
type ReceiveEquipmentRequest struct {
	Name           string          `json:"name" validate:"required,max=255"`
	PurchasePrice  decimal.Decimal `json:"purchase_price" validate:"gte=0"`
	SupplierMarkup decimal.Decimal `json:"supplier_markup" validate:"gte=0,lte=1"`
	ReceiptDate    *time.Time      `json:"receipt_date"`
	InvoiceNumber  string          `json:"invoice_number" validate:"max=50"`
	WarrantyMonths int             `json:"warranty_months" validate:"gte=0"`
	SupplierID     uuid.UUID       `json:"supplier_id" validate:"uuid_required"`
	// empty keeps the unit on the central warehouse
	StorePointID *uuid.UUID `json:"store_point_id"`
}

type inventoryService struct {
	store    repository.Store
	calendar Calendar
	notifier Notifier
}

func NewInventoryService(store repository.Store, calendar Calendar, notifier Notifier) InventoryService {
	return &inventoryService{
		store:    store,
		calendar: calendar,
		notifier: notifierOrNop(notifier),
	}
}

func (s *inventoryService) ReceiveEquipment(ctx context.Context, req *ReceiveEquipmentRequest) (*model.Equipment, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	equipment := &model.Equipment{
		Name:                 req.Name,
		PurchasePrice:        req.PurchasePrice,
		SupplierMarkup:       req.SupplierMarkup,
		ReceiptDate:          s.calendar.now(),
		InvoiceNumber:        req.InvoiceNumber,
		WarrantyMonths:       req.WarrantyMonths,
		SupplierID:           req.SupplierID,
		IsOnCentralWarehouse: true,
	}
	if req.ReceiptDate != nil {
		equipment.ReceiptDate = *req.ReceiptDate
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		supplier, err := tx.Suppliers().FindByID(req.SupplierID)
		if err != nil {
			return notFound(err, apperror.EntitySupplier, req.SupplierID)
		}
		var storePoint *model.StorePoint
		if req.StorePointID != nil && *req.StorePointID != uuid.Nil {
			storePoint, err = tx.StorePoints().FindByID(*req.StorePointID)
			if err != nil {
				return notFound(err, apperror.EntityStorePoint, *req.StorePointID)
			}
			equipment.StorePointID = &storePoint.ID
			equipment.IsOnCentralWarehouse = false
		}

		if err := tx.Equipment().Create(equipment); err != nil {
			return err
		}
		equipment.Supplier = supplier
		equipment.StorePoint = storePoint
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(EventEquipmentReceived, equipment)
	return equipment, nil
}

func (s *inventoryService) TransferEquipmentToStorePoint(ctx context.Context, equipmentID, storePointID uuid.UUID) (bool, error) {
	var moved *model.Equipment

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		equipment, err := tx.Equipment().Lock(equipmentID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if equipment.IsSold {
			return nil
		}

		storePoint, err := tx.StorePoints().FindByID(storePointID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		err = tx.Equipment().MoveToStorePoint(equipment.ID, storePoint.ID)
		if errors.Is(err, repository.ErrStaleUpdate) {
			return nil
		}
		if err != nil {
			return err
		}

		equipment.IsOnCentralWarehouse = false
		equipment.StorePointID = &storePoint.ID
		equipment.StorePoint = storePoint
		moved = equipment
		return nil
	})
	if err != nil {
		return false, err
	}
	if moved == nil {
		return false, nil
	}

	log.Printf("Equipment %s moved to store point %s", moved.ID, moved.StorePoint.Name)
	s.notifier.Publish(EventEquipmentTransferred, moved)
	return true, nil
}

func (s *inventoryService) GetEquipment(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	equipment, err := s.store.WithContext(ctx).Equipment().FindByID(id)
	if err != nil {
		return nil, notFound(err, apperror.EntityEquipment, id)
	}
	return equipment, nil
}

func (s *inventoryService) ListEquipment(ctx context.Context, filter repository.EquipmentFilter) ([]model.Equipment, error) {
	return s.store.WithContext(ctx).Equipment().FindAll(filter)
}
