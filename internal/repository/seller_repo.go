package repository

import (
	"computer-store-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SellerRepository interface {
	Create(seller *model.Seller) error
	FindAll() ([]model.Seller, error)
	FindByID(id uuid.UUID) (*model.Seller, error)
}

type sellerRepo struct {
	db *gorm.DB
}

func NewSellerRepo(db *gorm.DB) SellerRepository {
	return &sellerRepo{db}
}

func (r *sellerRepo) Create(seller *model.Seller) error {
	return r.db.Create(seller).Error
}

func (r *sellerRepo) FindAll() ([]model.Seller, error) {
	var sellers []model.Seller
	err := r.db.Order("last_name ASC, first_name ASC").Find(&sellers).Error
	return sellers, err
}

func (r *sellerRepo) FindByID(id uuid.UUID) (*model.Seller, error) {
	var seller model.Seller
	if err := r.db.First(&seller, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &seller, nil
}
