package repository

import (
	"context"

	"go-warehouse-api/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	Delete(tx *gorm.DB, id uint) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, "name = ?", name).Error
	return &product, err
}

// Delete receives *gorm.DB (tx) so the existence check and delete share a transaction.
func (r *productRepo) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Product{}, id).Error
}
