package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go-warehouse-api/internal/metrics"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/ws"
	"go-warehouse-api/pkg/database"
	"go-warehouse-api/pkg/logger"
	"go-warehouse-api/pkg/validator"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("go-warehouse-api/service")

type ShipmentService interface {
	CreateShipment(ctx context.Context, req *CreateShipmentRequest) (*ShipmentResult, error)
	ChangeStatus(ctx context.Context, req *ChangeStatusRequest) (*StatusChange, error)
	GetShipment(ctx context.Context, id uint) (*model.Shipment, error)
}

type CreateShipmentRequest struct {
	Status  model.ShipmentStatus `json:"status" validate:"omitempty,shipmentstatus"`
	Batches []uint               `json:"batches" validate:"required,min=1,dive,gt=0"`
}

type ChangeStatusRequest struct {
	ShipmentID uint                 `json:"shipment_id" validate:"required,gt=0"`
	Status     model.ShipmentStatus `json:"status" validate:"required,shipmentstatus"`
}

type ShipmentResult struct {
	ID      uint                 `json:"id"`
	OrderID string               `json:"order_id"`
	Batches []uint               `json:"batches"`
	Status  model.ShipmentStatus `json:"status"`
}

type StatusChange struct {
	ID             uint                 `json:"id"`
	OrderID        string               `json:"order_id"`
	PreviousStatus model.ShipmentStatus `json:"previous_status"`
	Status         model.ShipmentStatus `json:"status"`
}

type shipmentService struct {
	shipmentRepo  repository.ShipmentRepository
	inventoryRepo repository.InventoryRepository
	lookup        *Lookup
	orderIDs      *OrderIDGenerator
	transitions   TransitionTable[model.ShipmentStatus]
	db            *gorm.DB
	wsHub         *ws.Hub
	metrics       *metrics.Recorder
	log           *logrus.Logger
}

type ShipmentDeps struct {
	ShipmentRepo  repository.ShipmentRepository
	InventoryRepo repository.InventoryRepository
	Lookup        *Lookup
	OrderIDs      *OrderIDGenerator
	Transitions   TransitionTable[model.ShipmentStatus]
	DB            *gorm.DB
	Hub           *ws.Hub
	Metrics       *metrics.Recorder
	Log           *logrus.Logger
}

func NewShipmentService(d ShipmentDeps) ShipmentService {
	if d.OrderIDs == nil {
		d.OrderIDs = NewOrderIDGenerator(0)
	}
	if d.Log == nil {
		d.Log = logger.Discard()
	}
	return &shipmentService{
		shipmentRepo:  d.ShipmentRepo,
		inventoryRepo: d.InventoryRepo,
		lookup:        d.Lookup,
		orderIDs:      d.OrderIDs,
		transitions:   d.Transitions,
		db:            d.DB,
		wsHub:         d.Hub,
		metrics:       d.Metrics,
		log:           d.Log,
	}
}

// CreateShipment ships the full stock of every requested batch in one transaction.
// Any failure rolls back inventory flags, the shipment row and its items together.
func (s *shipmentService) CreateShipment(ctx context.Context, req *CreateShipmentRequest) (*ShipmentResult, error) {
	ctx, span := tracer.Start(ctx, "ShipmentService.CreateShipment")
	defer span.End()

	if err := validationFailure(validator.ValidateStruct(req)); err != nil {
		s.reject(span, "validation", err)
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = model.ShipmentPending
	}
	requested := distinct(req.Batches)
	span.SetAttributes(attribute.Int("shipment.batches", len(req.Batches)))

	var result *ShipmentResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Order identifier
		orderID, err := s.orderIDs.Next(tx, s.shipmentRepo)
		if err != nil {
			if errors.Is(err, ErrOrderIDSpaceExhausted) {
				return internal("generate order id", err)
			}
			return err
		}

		// 2. Every batch must be in inventory
		records, err := s.inventoryRepo.FindByBatchIDs(tx, requested)
		if err != nil {
			return err
		}
		if len(records) < len(requested) {
			found := make(map[uint]bool, len(records))
			for _, r := range records {
				found[r.BatchID] = true
			}
			var missing []uint
			for _, id := range requested {
				if !found[id] {
					missing = append(missing, id)
				}
			}
			return &BatchError{Kind: ErrBatchNotFound, BatchIDs: missing}
		}

		// 3. None may be part of an earlier shipment
		shipped, err := s.shipmentRepo.ShippedBatchIDs(tx, requested)
		if err != nil {
			return err
		}
		for _, r := range records {
			if r.InShipment && !slices.Contains(shipped, r.BatchID) {
				shipped = append(shipped, r.BatchID)
			}
		}
		if len(shipped) > 0 {
			return &BatchError{Kind: ErrBatchAlreadyShipped, BatchIDs: shipped}
		}

		// 4. Zero the stock and flag the records
		if _, err := s.inventoryRepo.MarkShipped(tx, requested); err != nil {
			return err
		}

		// 5. Shipment row
		shipment := &model.Shipment{OrderID: orderID, Status: status}
		if err := s.shipmentRepo.Create(tx, shipment); err != nil {
			if database.IsDuplicateKey(err) {
				return internal("order id collided at insert", err)
			}
			return err
		}

		// 6. One item per requested batch, in request order
		items := make([]model.ShipmentItem, len(req.Batches))
		for i, batchID := range req.Batches {
			items[i] = model.ShipmentItem{ShipmentID: shipment.ID, BatchID: batchID}
		}
		if err := s.shipmentRepo.CreateItems(tx, items); err != nil {
			if database.IsDuplicateKey(err) {
				return invalid("batch listed more than once in the same shipment")
			}
			return err
		}

		result = &ShipmentResult{
			ID:      shipment.ID,
			OrderID: shipment.OrderID,
			Batches: append([]uint(nil), req.Batches...),
			Status:  shipment.Status,
		}
		return nil
	})
	if err != nil {
		s.reject(span, rejectReason(err), err)
		return nil, err
	}

	span.SetAttributes(attribute.String("shipment.order_id", result.OrderID))
	s.metrics.ShipmentCreated()
	s.log.WithFields(logrus.Fields{
		"shipment_id": result.ID,
		"order_id":    result.OrderID,
		"batches":     result.Batches,
	}).Info("shipment created")
	s.wsHub.Publish("shipment_created",
		fmt.Sprintf("shipment %s created with %d batches", result.OrderID, len(result.Batches)), result)
	return result, nil
}

func (s *shipmentService) ChangeStatus(ctx context.Context, req *ChangeStatusRequest) (*StatusChange, error) {
	if err := validationFailure(validator.ValidateStruct(req)); err != nil {
		return nil, err
	}

	var change StatusChange
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shipment, err := s.lookup.ShipmentForUpdate(tx, req.ShipmentID)
		if err != nil {
			return err
		}
		if err := s.transitions.Check("shipment", shipment.Status, req.Status); err != nil {
			return err
		}
		if err := s.shipmentRepo.UpdateStatus(tx, shipment.ID, req.Status); err != nil {
			return err
		}
		change = StatusChange{
			ID:             shipment.ID,
			OrderID:        shipment.OrderID,
			PreviousStatus: shipment.Status,
			Status:         req.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("shipment_status_changed",
		fmt.Sprintf("shipment %s moved from %s to %s", change.OrderID, change.PreviousStatus, change.Status), change)
	return &change, nil
}

func (s *shipmentService) GetShipment(ctx context.Context, id uint) (*model.Shipment, error) {
	shipment, err := s.lookup.Shipment(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if shipment.Items, err = s.shipmentRepo.FindItems(ctx, shipment.ID); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *shipmentService) reject(span trace.Span, reason string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	s.metrics.ShipmentRejected(reason)
	if reason == "internal" {
		logger.LogError(s.log, "ShipmentService", "CreateShipment", "transaction rolled back", nil, err)
		return
	}
	s.log.WithField("reason", reason).Info("shipment rejected: " + err.Error())
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrBatchNotFound):
		return "batch_not_found"
	case errors.Is(err, ErrBatchAlreadyShipped):
		return "already_shipped"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}

func distinct(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
