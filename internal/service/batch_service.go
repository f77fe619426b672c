package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/ws"
	"go-warehouse-api/pkg/database"
	"go-warehouse-api/pkg/validator"

	"gorm.io/gorm"
)

// BatchService drives a production batch through its stages.
type BatchService interface {
	CreateBatch(ctx context.Context, req *CreateBatchRequest) (*repository.BatchWithModel, error)
	SetStage(ctx context.Context, batchID uint, stage model.BatchStage) (*StageChange, error)
}

type CreateBatchRequest struct {
	ProductID       model.Ref  `json:"product_id" validate:"required"`
	QuantityInBatch int        `json:"quantity_in_batch" validate:"gte=1"`
	StartDate       *time.Time `json:"start_date" validate:"omitempty,notfuture"`
}

type SetStageRequest struct {
	Stage model.BatchStage `json:"stage" validate:"required,batchstage"`
}

type StageChange struct {
	ID            uint             `json:"id"`
	PreviousStage model.BatchStage `json:"previous_stage"`
	CurrentStage  model.BatchStage `json:"current_stage"`
}

type batchService struct {
	batchRepo   repository.BatchRepository
	lookup      *Lookup
	transitions TransitionTable[model.BatchStage]
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewBatchService(bRepo repository.BatchRepository, lookup *Lookup, transitions TransitionTable[model.BatchStage], db *gorm.DB, hub *ws.Hub) BatchService {
	return &batchService{
		batchRepo:   bRepo,
		lookup:      lookup,
		transitions: transitions,
		db:          db,
		wsHub:       hub,
	}
}

func (s *batchService) CreateBatch(ctx context.Context, req *CreateBatchRequest) (*repository.BatchWithModel, error) {
	// 1. Quantity and start date
	if err := validationFailure(validator.ValidateStruct(req)); err != nil {
		return nil, err
	}
	startDate := time.Now().UTC()
	if req.StartDate != nil {
		startDate = req.StartDate.UTC()
	}

	// 2. Product must exist
	product, err := s.lookup.Product(ctx, nil, req.ProductID)
	if err != nil {
		return nil, err
	}

	batch := &model.ProductionBatch{
		StartDate:       startDate,
		CurrentStage:    model.StageInitialized,
		QuantityInBatch: req.QuantityInBatch,
		ProductID:       product.ID,
	}
	if err := s.batchRepo.Create(ctx, batch); err != nil {
		if database.IsCheckViolation(err) {
			return nil, invalid("batch rejected by a database check: %v", err)
		}
		return nil, err
	}

	// 3. Reload joined with the product model
	created, err := s.batchRepo.FindWithProductModel(ctx, batch.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal("reload created batch", err)
		}
		return nil, err
	}

	s.wsHub.Publish("batch_created", fmt.Sprintf("batch %d of '%s' created", created.ID, created.Model), created)
	return created, nil
}

// SetStage overwrites the stage when the transition table allows the edge.
func (s *batchService) SetStage(ctx context.Context, batchID uint, stage model.BatchStage) (*StageChange, error) {
	if err := validationFailure(validator.ValidateStruct(&SetStageRequest{Stage: stage})); err != nil {
		return nil, err
	}

	var change StageChange
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batch, err := s.lookup.BatchForUpdate(tx, batchID)
		if err != nil {
			return err
		}
		if err := s.transitions.Check("batch", batch.CurrentStage, stage); err != nil {
			return err
		}
		if err := s.batchRepo.UpdateStage(tx, batch.ID, stage); err != nil {
			if database.IsCheckViolation(err) {
				return invalid("stage %s rejected by a database check", stage)
			}
			return err
		}
		change = StageChange{ID: batch.ID, PreviousStage: batch.CurrentStage, CurrentStage: stage}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("batch_stage_changed",
		fmt.Sprintf("batch %d moved from %s to %s", change.ID, change.PreviousStage, change.CurrentStage), change)
	return &change, nil
}
