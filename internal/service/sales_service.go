package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/pricing"
	"computer-store-ws/internal/repository"
	"computer-store-ws/pkg/apperror"
	"computer-store-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalesService interface {
	CreateSale(ctx context.Context, req *CreateSaleRequest) (*model.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	// CheckAndRecordCashLimitViolation reconciles one register for the calendar day of date.
	// It returns the violation it recorded, or nil when the day is within limit or already recorded.
	CheckAndRecordCashLimitViolation(ctx context.Context, cashRegisterID uuid.UUID, date time.Time) (*model.CashLimitViolation, error)
}

type SaleItemRequest struct {
	EquipmentID  uuid.UUID       `json:"equipment_id" validate:"uuid_required"`
	SellerMarkup decimal.Decimal `json:"seller_markup" validate:"gte=0,lte=1"`
}

type CreateSaleRequest struct {
	SellerID       uuid.UUID         `json:"seller_id" validate:"uuid_required"`
	StorePointID   uuid.UUID         `json:"store_point_id" validate:"uuid_required"`
	PaymentType    model.PaymentType `json:"payment_type" validate:"required,oneof=CASH CASHLESS"`
	CashRegisterID *uuid.UUID        `json:"cash_register_id"`
	Items          []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

type salesService struct {
	store    repository.Store
	rates    pricing.Rates
	calendar Calendar
	notifier Notifier
}

func NewSalesService(store repository.Store, rates pricing.Rates, calendar Calendar, notifier Notifier) SalesService {
	return &salesService{
		store:    store,
		rates:    rates,
		calendar: calendar,
		notifier: notifierOrNop(notifier),
	}
}

func (s *salesService) CreateSale(ctx context.Context, req *CreateSaleRequest) (*model.Sale, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if req.PaymentType == model.PaymentCashless && req.CashRegisterID != nil {
		return nil, apperror.NewValidation("invalid request",
			apperror.FieldError{Field: "cash_register_id", Message: "must be empty for cashless payments"})
	}

	now := s.calendar.now()
	sale := &model.Sale{
		SaleDate:     now,
		SellerID:     req.SellerID,
		StorePointID: req.StorePointID,
		PaymentType:  req.PaymentType,
	}

	// set only when the cash limit check rejects the sale
	var (
		breach   *apperror.PolicyError
		register *model.CashRegister
	)

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		// 1-2. actors
		seller, err := tx.Sellers().FindByID(req.SellerID)
		if err != nil {
			return notFound(err, apperror.EntitySeller, req.SellerID)
		}
		storePoint, err := tx.StorePoints().FindByID(req.StorePointID)
		if err != nil {
			return notFound(err, apperror.EntityStorePoint, req.StorePointID)
		}

		// 3-4. payment policy
		switch req.PaymentType {
		case model.PaymentCashless:
			if !storePoint.CanProcessCashless {
				return apperror.NewCashlessNotSupported(storePoint.Name)
			}
		case model.PaymentCash:
			if req.CashRegisterID == nil || *req.CashRegisterID == uuid.Nil {
				return apperror.NewRegisterRequired()
			}
			// the lock serializes cash sales on this register until commit
			register, err = tx.CashRegisters().LockForStorePoint(*req.CashRegisterID, storePoint.ID)
			if err != nil {
				return notFound(err, apperror.EntityCashRegister, *req.CashRegisterID)
			}
			sale.CashRegisterID = &register.ID
		}

		// 5-6. items and pricing
		var totals pricing.Totals
		items := make([]model.SaleItem, 0, len(req.Items))
		for _, item := range req.Items {
			equipment, err := tx.Equipment().Lock(item.EquipmentID)
			if err != nil {
				return notFound(err, apperror.EntityEquipment, item.EquipmentID)
			}
			if equipment.IsSold {
				return apperror.NewAlreadySold(equipment.ID)
			}
			if !equipment.Sellable() {
				return apperror.NewNotOnSale(equipment.ID)
			}
			if !s.rates.MarkupAllowed(equipment.SupplierMarkup, item.SellerMarkup) {
				total := pricing.TotalMarkup(equipment.SupplierMarkup, item.SellerMarkup)
				return apperror.NewMarkupExceeded(equipment.ID, total, s.rates.MaxTotalMarkup)
			}

			price := s.rates.Calculate(equipment.PurchasePrice, equipment.SupplierMarkup, item.SellerMarkup, req.PaymentType)
			totals.Add(price)
			items = append(items, model.SaleItem{
				EquipmentID:      equipment.ID,
				PurchasePrice:    equipment.PurchasePrice,
				SupplierMarkup:   equipment.SupplierMarkup,
				SellerMarkup:     item.SellerMarkup,
				PriceBeforeTaxes: price.PriceBeforeTaxes,
				VAT:              price.VAT,
				SalesTax:         price.SalesTax,
				FinalPrice:       price.FinalPrice,
			})
		}

		// 7. daily cash limit
		if register != nil {
			from, to := s.calendar.Day(now)
			dayTotal, err := tx.Sales().SumForRegister(register.ID, from, to)
			if err != nil {
				return err
			}
			if dayTotal.Add(totals.TotalWithSalesTax).GreaterThan(register.CashLimit) {
				breach = apperror.NewCashLimitExceeded(register.CashLimit, dayTotal, totals.TotalWithSalesTax)
				return breach
			}
		}

		// 8. commit state
		for _, item := range items {
			if err := tx.Equipment().MarkSold(item.EquipmentID, now); err != nil {
				if errors.Is(err, repository.ErrStaleUpdate) {
					return apperror.NewAlreadySold(item.EquipmentID)
				}
				return err
			}
		}

		sale.TotalAmount = totals.TotalAmount
		sale.TotalWithVAT = totals.TotalWithVAT
		sale.TotalWithSalesTax = totals.TotalWithSalesTax
		sale.Items = items
		number := documentNumber(req.PaymentType, now)
		if req.PaymentType == model.PaymentCash {
			sale.CheckNumber = &number
		} else {
			sale.PaymentOrderNumber = &number
		}

		if err := tx.Sales().Create(sale); err != nil {
			return err
		}
		sale.Seller = seller
		sale.StorePoint = storePoint
		sale.CashRegister = register
		return nil
	})

	if breach != nil {
		// written after the rollback so the attempted overage stays on record
		s.recordViolation(ctx, register, now, breach.Attempted)
		return nil, breach
	}
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(EventSaleCreated, sale)
	return sale, nil
}

func (s *salesService) recordViolation(ctx context.Context, register *model.CashRegister, at time.Time, attempted decimal.Decimal) {
	violation := &model.CashLimitViolation{
		CashRegisterID: register.ID,
		ViolationDate:  at,
		LimitAmount:    register.CashLimit,
		ActualAmount:   attempted,
	}
	if err := s.store.WithContext(ctx).Violations().Create(violation); err != nil {
		log.Printf("Failed to record cash limit violation for register %s: %v", register.ID, err)
		return
	}

	log.Printf("Cash limit exceeded on register %s: limit %s, projected %s",
		register.RegistrationNumber, register.CashLimit.StringFixed(2), attempted.StringFixed(2))
	s.notifier.Publish(EventCashLimitViolation, violation)
}

func (s *salesService) GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.store.WithContext(ctx).Sales().FindByID(id)
	if err != nil {
		return nil, notFound(err, apperror.EntitySale, id)
	}
	return sale, nil
}

// documentNumber renders CHK-<yyyymmdd>-<8 random hex> for cash and PP-... for cashless
func documentNumber(payment model.PaymentType, at time.Time) string {
	prefix := "PP"
	if payment == model.PaymentCash {
		prefix = "CHK"
	}
	return fmt.Sprintf("%s-%s-%s", prefix, at.Format("20060102"), uuid.New().String()[:8])
}
