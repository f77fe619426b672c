package service

import (
	"context"
	"fmt"

	"go-warehouse-api/internal/metrics"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/ws"
	"go-warehouse-api/pkg/database"
	"go-warehouse-api/pkg/validator"

	"gorm.io/gorm"
)

type WarehouseService interface {
	ReceiveBatch(ctx context.Context, batchID uint, req *ReceiveBatchRequest) (*model.WarehouseInventory, error)
	ListInventory(ctx context.Context) ([]model.WarehouseInventory, error)
}

// ReceiveBatchRequest defaults QuantityReceived to the batch size when omitted.
type ReceiveBatchRequest struct {
	StorageLocation  string `json:"storage_location" validate:"required,max=50"`
	QuantityReceived *int   `json:"quantity_received" validate:"omitempty,gte=0"`
}

type warehouseService struct {
	inventoryRepo repository.InventoryRepository
	lookup        *Lookup
	db            *gorm.DB
	wsHub         *ws.Hub
	metrics       *metrics.Recorder
}

func NewWarehouseService(iRepo repository.InventoryRepository, lookup *Lookup, db *gorm.DB, hub *ws.Hub, rec *metrics.Recorder) WarehouseService {
	return &warehouseService{
		inventoryRepo: iRepo,
		lookup:        lookup,
		db:            db,
		wsHub:         hub,
		metrics:       rec,
	}
}

func (s *warehouseService) ReceiveBatch(ctx context.Context, batchID uint, req *ReceiveBatchRequest) (*model.WarehouseInventory, error) {
	if err := validationFailure(validator.ValidateStruct(req)); err != nil {
		return nil, err
	}

	var record *model.WarehouseInventory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the batch so stage and receipt are checked against the same row
		batch, err := s.lookup.BatchForUpdate(tx, batchID)
		if err != nil {
			return err
		}

		// 2. Only completed batches enter the warehouse
		if !batch.Receivable() {
			return invalidState("batch %d is in stage %s; only %s batches can be received",
				batch.ID, batch.CurrentStage, model.StageCompleted)
		}

		// 3. At most one inventory record per batch
		exists, err := s.inventoryRepo.ExistsForBatch(tx, batch.ID)
		if err != nil {
			return err
		}
		if exists {
			return &StateError{Kind: ErrAlreadyReceived, Detail: fmt.Sprintf("batch %d already received into warehouse", batch.ID)}
		}

		quantity := batch.QuantityInBatch
		if req.QuantityReceived != nil {
			quantity = *req.QuantityReceived
		}

		record = &model.WarehouseInventory{
			ProductID:       batch.ProductID,
			BatchID:         batch.ID,
			StorageLocation: req.StorageLocation,
			StockQuantity:   quantity,
			InShipment:      false,
		}
		if err := s.inventoryRepo.Create(tx, record); err != nil {
			if database.IsDuplicateKey(err) {
				return &StateError{Kind: ErrAlreadyReceived, Detail: fmt.Sprintf("batch %d already received into warehouse", batch.ID)}
			}
			if database.IsCheckViolation(err) {
				return invalid("inventory record rejected by a database check: %v", err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.BatchReceived()
	s.wsHub.Publish("batch_received",
		fmt.Sprintf("batch %d received at %s (%d units)", record.BatchID, record.StorageLocation, record.StockQuantity), record)
	return record, nil
}

func (s *warehouseService) ListInventory(ctx context.Context) ([]model.WarehouseInventory, error) {
	return s.inventoryRepo.FindAll(ctx)
}
