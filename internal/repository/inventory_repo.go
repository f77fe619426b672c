package repository

import (
	"context"

	"go-warehouse-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	Create(tx *gorm.DB, record *model.WarehouseInventory) error
	FindAll(ctx context.Context) ([]model.WarehouseInventory, error)
	ExistsForBatch(tx *gorm.DB, batchID uint) (bool, error)
	FindByBatchIDs(tx *gorm.DB, batchIDs []uint) ([]model.WarehouseInventory, error)
	MarkShipped(tx *gorm.DB, batchIDs []uint) (int64, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(tx *gorm.DB, record *model.WarehouseInventory) error {
	return tx.Create(record).Error
}

func (r *inventoryRepo) FindAll(ctx context.Context) ([]model.WarehouseInventory, error) {
	records := []model.WarehouseInventory{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error
	return records, err
}

func (r *inventoryRepo) ExistsForBatch(tx *gorm.DB, batchID uint) (bool, error) {
	var n int64
	err := tx.Model(&model.WarehouseInventory{}).Where("batch_id = ?", batchID).Count(&n).Error
	return n > 0, err
}

// FindByBatchIDs locks the matched rows until the surrounding transaction ends.
func (r *inventoryRepo) FindByBatchIDs(tx *gorm.DB, batchIDs []uint) ([]model.WarehouseInventory, error) {
	var records []model.WarehouseInventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("batch_id IN ?", batchIDs).
		Order("batch_id ASC").
		Find(&records).Error
	return records, err
}

// MarkShipped ships the full remaining stock of each batch.
func (r *inventoryRepo) MarkShipped(tx *gorm.DB, batchIDs []uint) (int64, error) {
	res := tx.Model(&model.WarehouseInventory{}).
		Where("batch_id IN ?", batchIDs).
		Updates(map[string]interface{}{
			"in_shipment":    true,
			"stock_quantity": 0,
		})
	return res.RowsAffected, res.Error
}
