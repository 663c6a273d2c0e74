package service

import (
	"context"
	"strings"

	"computer-store-ws/internal/model"
	"computer-store-ws/internal/repository"
	"computer-store-ws/pkg/apperror"
	"computer-store-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferenceService maintains the directories the sale engine reads from
type ReferenceService interface {
	CreateSupplier(ctx context.Context, req *CreateSupplierRequest) (*model.Supplier, error)
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	CreateStorePoint(ctx context.Context, req *CreateStorePointRequest) (*model.StorePoint, error)
	ListStorePoints(ctx context.Context) ([]model.StorePoint, error)
	CreateCashRegister(ctx context.Context, req *CreateCashRegisterRequest) (*model.CashRegister, error)
	ListCashRegisters(ctx context.Context) ([]model.CashRegister, error)
	CreateSeller(ctx context.Context, req *CreateSellerRequest) (*model.Seller, error)
	ListSellers(ctx context.Context) ([]model.Seller, error)
}

type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Address       string `json:"address" validate:"max=255"`
	Phone         string `json:"phone" validate:"max=30"`
	ContactPerson string `json:"contact_person" validate:"max=255"`
}

type CreateStorePointRequest struct {
	Name               string `json:"name" validate:"required,max=255"`
	Address            string `json:"address" validate:"max=255"`
	CanProcessCashless bool   `json:"can_process_cashless"`
}

type CreateCashRegisterRequest struct {
	RegistrationNumber string          `json:"registration_number" validate:"required,max=50"`
	CashLimit          decimal.Decimal `json:"cash_limit" validate:"gt=0"`
	StorePointID       uuid.UUID       `json:"store_point_id" validate:"uuid_required"`
}

type CreateSellerRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	MiddleName string `json:"middle_name" validate:"max=100"`
	Phone      string `json:"phone" validate:"max=30"`
}

type referenceService struct {
	store repository.Store
}

func NewReferenceService(store repository.Store) ReferenceService {
	return &referenceService{store: store}
}

func (s *referenceService) CreateSupplier(ctx context.Context, req *CreateSupplierRequest) (*model.Supplier, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	supplier := &model.Supplier{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		ContactPerson: req.ContactPerson,
	}
	if err := s.store.WithContext(ctx).Suppliers().Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *referenceService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.store.WithContext(ctx).Suppliers().FindAll()
}

func (s *referenceService) CreateStorePoint(ctx context.Context, req *CreateStorePointRequest) (*model.StorePoint, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	storePoint := &model.StorePoint{
		Name:               req.Name,
		Address:            req.Address,
		CanProcessCashless: req.CanProcessCashless,
	}
	if err := s.store.WithContext(ctx).StorePoints().Create(storePoint); err != nil {
		return nil, err
	}
	return storePoint, nil
}

func (s *referenceService) ListStorePoints(ctx context.Context) ([]model.StorePoint, error) {
	return s.store.WithContext(ctx).StorePoints().FindAll()
}

func (s *referenceService) CreateCashRegister(ctx context.Context, req *CreateCashRegisterRequest) (*model.CashRegister, error) {
	req.RegistrationNumber = strings.TrimSpace(req.RegistrationNumber)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	register := &model.CashRegister{
		RegistrationNumber: req.RegistrationNumber,
		CashLimit:          req.CashLimit,
		StorePointID:       req.StorePointID,
	}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		storePoint, err := tx.StorePoints().FindByID(req.StorePointID)
		if err != nil {
			return notFound(err, apperror.EntityStorePoint, req.StorePointID)
		}
		if err := tx.CashRegisters().Create(register); err != nil {
			return err
		}
		register.StorePoint = storePoint
		return nil
	})
	if err != nil {
		return nil, err
	}
	return register, nil
}

func (s *referenceService) ListCashRegisters(ctx context.Context) ([]model.CashRegister, error) {
	return s.store.WithContext(ctx).CashRegisters().FindAll()
}

func (s *referenceService) CreateSeller(ctx context.Context, req *CreateSellerRequest) (*model.Seller, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	seller := &model.Seller{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: strings.TrimSpace(req.MiddleName),
		Phone:      req.Phone,
	}
	if err := s.store.WithContext(ctx).Sellers().Create(seller); err != nil {
		return nil, err
	}
	return seller, nil
}

func (s *referenceService) ListSellers(ctx context.Context) ([]model.Seller, error) {
	return s.store.WithContext(ctx).Sellers().FindAll()
}
