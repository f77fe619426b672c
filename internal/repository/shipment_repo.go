package repository

import (
	"context"

	"go-warehouse-api/internal/model"

	"gorm.io/gorm"
)

type ShipmentRepository interface {
	OrderIDExists(tx *gorm.DB, orderID string) (bool, error)
	OrderIDs(tx *gorm.DB) ([]string, error)
	Create(tx *gorm.DB, shipment *model.Shipment) error
	CreateItems(tx *gorm.DB, items []model.ShipmentItem) error
	ShippedBatchIDs(tx *gorm.DB, batchIDs []uint) ([]uint, error)
	UpdateStatus(tx *gorm.DB, id uint, status model.ShipmentStatus) error
	FindItems(ctx context.Context, shipmentID uint) ([]model.ShipmentItem, error)
}

type shipmentRepo struct {
	db *gorm.DB
}

func NewShipmentRepo(db *gorm.DB) ShipmentRepository {
	return &shipmentRepo{db}
}

func (r *shipmentRepo) OrderIDExists(tx *gorm.DB, orderID string) (bool, error) {
	var n int64
	err := tx.Model(&model.Shipment{}).Where("order_id = ?", orderID).Count(&n).Error
	return n > 0, err
}

func (r *shipmentRepo) OrderIDs(tx *gorm.DB) ([]string, error) {
	var ids []string
	err := tx.Model(&model.Shipment{}).Pluck("order_id", &ids).Error
	return ids, err
}

func (r *shipmentRepo) Create(tx *gorm.DB, shipment *model.Shipment) error {
	return tx.Omit("Items").Create(shipment).Error
}

func (r *shipmentRepo) CreateItems(tx *gorm.DB, items []model.ShipmentItem) error {
	// One insert per item so a duplicate surfaces on the offending batch.
	for i := range items {
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// ShippedBatchIDs returns the subset of batchIDs already referenced by any shipment item.
func (r *shipmentRepo) ShippedBatchIDs(tx *gorm.DB, batchIDs []uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&model.ShipmentItem{}).
		Distinct("batch_id").
		Where("batch_id IN ?", batchIDs).
		Order("batch_id ASC").
		Pluck("batch_id", &ids).Error
	return ids, err
}

func (r *shipmentRepo) UpdateStatus(tx *gorm.DB, id uint, status model.ShipmentStatus) error {
	return tx.Model(&model.Shipment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *shipmentRepo) FindItems(ctx context.Context, shipmentID uint) ([]model.ShipmentItem, error) {
	items := []model.ShipmentItem{}
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}
