package repository

import (
	"context"
	"time"

	"go-warehouse-api/internal/model"

	"gorm.io/gorm"
)

type BatchRepository interface {
	Create(ctx context.Context, batch *model.ProductionBatch) error
	FindWithProductModel(ctx context.Context, id uint) (*BatchWithModel, error)
	UpdateStage(tx *gorm.DB, id uint, stage model.BatchStage) error
	CountByProduct(tx *gorm.DB, productID uint) (int64, error)
}

// BatchWithModel is a batch joined with its product's model name.
type BatchWithModel struct {
	ID              uint             `json:"id"`
	ProductID       uint             `json:"product_id"`
	Model           string           `json:"model"`
	QuantityInBatch int              `json:"quantity_in_batch"`
	StartDate       time.Time        `json:"start_date"`
	CurrentStage    model.BatchStage `json:"current_stage"`
}

type batchRepo struct {
	db *gorm.DB
}

func NewBatchRepo(db *gorm.DB) BatchRepository {
	return &batchRepo{db}
}

func (r *batchRepo) Create(ctx context.Context, batch *model.ProductionBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *batchRepo) FindWithProductModel(ctx context.Context, id uint) (*BatchWithModel, error) {
	var rows []BatchWithModel
	err := r.db.WithContext(ctx).
		Table("production_batches AS b").
		Select("b.id, b.product_id, p.model_name AS model, b.quantity_in_batch, b.start_date, b.current_stage").
		Joins("JOIN products AS p ON p.id = b.product_id").
		Where("b.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *batchRepo) UpdateStage(tx *gorm.DB, id uint, stage model.BatchStage) error {
	return tx.Model(&model.ProductionBatch{}).
		Where("id = ?", id).
		Update("current_stage", stage).Error
}

func (r *batchRepo) CountByProduct(tx *gorm.DB, productID uint) (int64, error) {
	var n int64
	err := tx.Model(&model.ProductionBatch{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}
