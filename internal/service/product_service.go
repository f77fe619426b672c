package service

import (
	"context"
	"errors"
	"fmt"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/ws"
	"go-warehouse-api/pkg/database"
	"go-warehouse-api/pkg/validator"

	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, ref model.Ref) (*model.Product, error)
	DeleteProduct(ctx context.Context, ref model.Ref) error
	ListProducts(ctx context.Context) ([]model.Product, error)
}

type CreateProductRequest struct {
	Name         string              `json:"name" validate:"required,max=255"`
	SerialNumber string              `json:"serial_number" validate:"required,max=255"`
	Model        string              `json:"model" validate:"required,max=255"`
	Status       model.ProductStatus `json:"status" validate:"omitempty,productstatus"`
}

type productService struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	lookup      *Lookup
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, bRepo repository.BatchRepository, lookup *Lookup, db *gorm.DB, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: pRepo,
		batchRepo:   bRepo,
		lookup:      lookup,
		db:          db,
		wsHub:       hub,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*model.Product, error) {
	// 1. Basic struct validation
	if err := validationFailure(validator.ValidateStruct(req)); err != nil {
		return nil, err
	}

	// 2. Duplicate name check
	existing, err := s.productRepo.FindByName(ctx, req.Name)
	if err == nil && existing.ID != 0 {
		return nil, ErrDuplicateName
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &model.Product{
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		ModelName:    req.Model,
		Status:       req.Status,
	}

	// 3. Persist; the unique indexes catch a concurrent duplicate or a reused serial/model.
	if err := s.productRepo.Create(ctx, product); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w (or serial number / model already in use)", ErrDuplicateName)
		}
		return nil, err
	}

	s.wsHub.Publish("product_created", fmt.Sprintf("product '%s' created", product.Name), product)
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, ref model.Ref) (*model.Product, error) {
	return s.lookup.Product(ctx, nil, ref)
}

func (s *productService) DeleteProduct(ctx context.Context, ref model.Ref) error {
	var deleted *model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.lookup.Product(ctx, tx, ref)
		if err != nil {
			return err
		}

		// Batches reference products without cascade.
		n, err := s.batchRepo.CountByProduct(tx, product.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return invalidState("product %d still has %d production batches", product.ID, n)
		}

		if err := s.productRepo.Delete(tx, product.ID); err != nil {
			if database.IsForeignKeyViolation(err) {
				return invalidState("product %d is still referenced", product.ID)
			}
			return err
		}
		deleted = product
		return nil
	})
	if err != nil {
		return err
	}

	s.wsHub.Publish("product_deleted", fmt.Sprintf("product '%s' deleted", deleted.Name), map[string]interface{}{"id": deleted.ID})
	return nil
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.FindAll(ctx)
}
