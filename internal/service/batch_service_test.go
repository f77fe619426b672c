package service

import (
	"context"
	"testing"
	"time"

	"go-warehouse-api/internal/metrics"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateBatchValidation(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t)
	ctx := context.Background()

	_, err := env.batches.CreateBatch(ctx, &CreateBatchRequest{ProductID: model.Ref("1"), QuantityInBatch: 0})
	assert.ErrorIs(t, err, ErrValidation)

	future := time.Now().Add(time.Second)
	_, err = env.batches.CreateBatch(ctx, &CreateBatchRequest{
		ProductID:       model.Ref(p.UUID.String()),
		QuantityInBatch: 5,
		StartDate:       &future,
	})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Zero(t, env.count(t, &model.ProductionBatch{}))
}

func TestCreateBatchDefaultsAndProductRef(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t)

	before := time.Now().UTC().Add(-time.Second)
	b, err := env.batches.CreateBatch(context.Background(), &CreateBatchRequest{
		ProductID:       model.Ref(p.UUID.String()),
		QuantityInBatch: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, b.ProductID)
	assert.Equal(t, p.ModelName, b.Model)
	assert.Equal(t, model.StageInitialized, b.CurrentStage)
	assert.True(t, b.StartDate.After(before))

	past := time.Now().Add(-48 * time.Hour)
	b, err = env.batches.CreateBatch(context.Background(), &CreateBatchRequest{
		ProductID:       model.Ref("1"),
		QuantityInBatch: 1,
		StartDate:       &past,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, past, b.StartDate, time.Second)
}

func TestCreateBatchUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.batches.CreateBatch(context.Background(), &CreateBatchRequest{ProductID: model.Ref("77"), QuantityInBatch: 1})
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Product with ID 77 not found")
}

func TestSetStageOverwritesByDefault(t *testing.T) {
	env := newTestEnv(t)
	b := env.createBatch(t, env.createProduct(t).ID, 1)
	ctx := context.Background()

	_, err := env.batches.SetStage(ctx, b.ID, model.StageCompleted)
	require.NoError(t, err)
	change, err := env.batches.SetStage(ctx, b.ID, model.StageInitialized)
	require.NoError(t, err)
	assert.Equal(t, model.StageCompleted, change.PreviousStage)
	assert.Equal(t, model.StageInitialized, change.CurrentStage)

	_, err = env.batches.SetStage(ctx, b.ID, "SHIPPED")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.batches.SetStage(ctx, 999, model.StageCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetStageHonoursTransitionTable(t *testing.T) {
	env := newTestEnv(t, withStageTransitions("INITIALIZED:PRODUCTION_STARTED;PRODUCTION_STARTED:COMPLETED"))
	b := env.createBatch(t, env.createProduct(t).ID, 1)
	ctx := context.Background()

	_, err := env.batches.SetStage(ctx, b.ID, model.StageCompleted)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = env.batches.SetStage(ctx, b.ID, model.StageProductionStarted)
	require.NoError(t, err)
	_, err = env.batches.SetStage(ctx, b.ID, model.StageCompleted)
	require.NoError(t, err)

	_, err = env.batches.SetStage(ctx, b.ID, model.StageInitialized)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestReceiveBatchRequiresCompletedStage(t *testing.T) {
	env := newTestEnv(t)
	b := env.createBatch(t, env.createProduct(t).ID, 3)

	_, err := env.warehouse.ReceiveBatch(context.Background(), b.ID, &ReceiveBatchRequest{StorageLocation: "B-2"})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Zero(t, env.count(t, &model.WarehouseInventory{}))
}

func TestReceiveBatchTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	id := env.receivedBatch(t, 10)

	_, err := env.warehouse.ReceiveBatch(context.Background(), id, &ReceiveBatchRequest{StorageLocation: "C-3"})
	assert.ErrorIs(t, err, ErrAlreadyReceived)
	assert.EqualValues(t, 1, env.count(t, &model.WarehouseInventory{}))
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.BatchesReceived))
}

func TestReceiveBatchQuantity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b := env.createBatch(t, env.createProduct(t).ID, 10)
	_, err := env.batches.SetStage(ctx, b.ID, model.StageCompleted)
	require.NoError(t, err)

	negative := -1
	_, err = env.warehouse.ReceiveBatch(ctx, b.ID, &ReceiveBatchRequest{StorageLocation: "D-4", QuantityReceived: &negative})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.warehouse.ReceiveBatch(ctx, b.ID, &ReceiveBatchRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	received := 7
	rec, err := env.warehouse.ReceiveBatch(ctx, b.ID, &ReceiveBatchRequest{StorageLocation: "D-4", QuantityReceived: &received})
	require.NoError(t, err)
	assert.Equal(t, 7, rec.StockQuantity)

	all, err := env.warehouse.ListInventory(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "D-4", all[0].StorageLocation)
}

func TestReceiveUnknownBatch(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.warehouse.ReceiveBatch(context.Background(), 404, &ReceiveBatchRequest{StorageLocation: "A"})
	assert.ErrorIs(t, err, ErrNotFound)
}

// checkViolation is what postgres returns when a CHECK constraint rejects a row.
var checkViolation = &pgconn.PgError{Code: "23514", Message: "new row violates check constraint"}

type checkRejectingBatchRepo struct {
	repository.BatchRepository
}

func (checkRejectingBatchRepo) Create(context.Context, *model.ProductionBatch) error {
	return checkViolation
}

func (checkRejectingBatchRepo) UpdateStage(*gorm.DB, uint, model.BatchStage) error {
	return checkViolation
}

type checkRejectingInventoryRepo struct {
	repository.InventoryRepository
}

func (checkRejectingInventoryRepo) Create(*gorm.DB, *model.WarehouseInventory) error {
	return checkViolation
}

func TestCheckViolationsAreValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lookup := NewLookup(env.db)
	stages, err := NewStageTransitions("")
	require.NoError(t, err)

	p := env.createProduct(t)
	b := env.createBatch(t, p.ID, 4)
	_, err = env.batches.SetStage(ctx, b.ID, model.StageCompleted)
	require.NoError(t, err)

	batches := NewBatchService(checkRejectingBatchRepo{repository.NewBatchRepo(env.db)}, lookup, stages, env.db, nil)
	_, err = batches.CreateBatch(ctx, &CreateBatchRequest{ProductID: model.Ref(p.UUID.String()), QuantityInBatch: 1})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = batches.SetStage(ctx, b.ID, model.StageInitialized)
	assert.ErrorIs(t, err, ErrValidation)

	warehouse := NewWarehouseService(checkRejectingInventoryRepo{repository.NewInventoryRepo(env.db)}, lookup, env.db, nil, metrics.New())
	_, err = warehouse.ReceiveBatch(ctx, b.ID, &ReceiveBatchRequest{StorageLocation: "E-5"})
	assert.ErrorIs(t, err, ErrValidation)

	assert.EqualValues(t, 1, env.count(t, &model.ProductionBatch{}))
	assert.Zero(t, env.count(t, &model.WarehouseInventory{}))
}
