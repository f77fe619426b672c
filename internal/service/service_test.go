package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go-warehouse-api/internal/metrics"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/pkg/config"
	"go-warehouse-api/pkg/database"
	"go-warehouse-api/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	metrics   *metrics.Recorder
	orderIDs  *OrderIDGenerator
	products  ProductService
	batches   BatchService
	warehouse WarehouseService
	shipments ShipmentService
}

type envOption func(*envConfig)

type envConfig struct {
	stages   string
	statuses string
}

func withStageTransitions(rules string) envOption {
	return func(c *envConfig) { c.stages = rules }
}

func withStatusTransitions(rules string) envOption {
	return func(c *envConfig) { c.statuses = rules }
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(config.Config{
		DBDriver:           config.DriverSQLite,
		SQLitePath:         filepath.Join(t.TempDir(), "test.db"),
		DBSlowSQLThreshold: time.Second,
	}, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	var cfg envConfig
	for _, o := range opts {
		o(&cfg)
	}

	db := openTestDB(t)
	stages, err := NewStageTransitions(cfg.stages)
	require.NoError(t, err)
	statuses, err := NewShipmentTransitions(cfg.statuses)
	require.NoError(t, err)

	lookup := NewLookup(db)
	rec := metrics.New()
	orderIDs := NewOrderIDGenerator(0)
	productRepo := repository.NewProductRepo(db)
	batchRepo := repository.NewBatchRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	shipmentRepo := repository.NewShipmentRepo(db)

	return &testEnv{
		db:        db,
		metrics:   rec,
		orderIDs:  orderIDs,
		products:  NewProductService(productRepo, batchRepo, lookup, db, nil),
		batches:   NewBatchService(batchRepo, lookup, stages, db, nil),
		warehouse: NewWarehouseService(inventoryRepo, lookup, db, nil, rec),
		shipments: NewShipmentService(ShipmentDeps{
			ShipmentRepo:  shipmentRepo,
			InventoryRepo: inventoryRepo,
			Lookup:        lookup,
			OrderIDs:      orderIDs,
			Transitions:   statuses,
			DB:            db,
			Metrics:       rec,
			Log:           logger.Discard(),
		}),
	}
}

var productSeq atomic.Int64

func (e *testEnv) createProduct(t *testing.T) *model.Product {
	t.Helper()
	n := productSeq.Add(1)
	p, err := e.products.CreateProduct(context.Background(), &CreateProductRequest{
		Name:         fmt.Sprintf("P%d", n),
		SerialNumber: fmt.Sprintf("SN-%d", n),
		Model:        fmt.Sprintf("M-%d", n),
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) createBatch(t *testing.T, productID uint, quantity int) *repository.BatchWithModel {
	t.Helper()
	b, err := e.batches.CreateBatch(context.Background(), &CreateBatchRequest{
		ProductID:       model.Ref(fmt.Sprint(productID)),
		QuantityInBatch: quantity,
	})
	require.NoError(t, err)
	return b
}

// receivedBatch creates a completed batch of quantity units and receives it in full.
func (e *testEnv) receivedBatch(t *testing.T, quantity int) uint {
	t.Helper()
	p := e.createProduct(t)
	b := e.createBatch(t, p.ID, quantity)
	_, err := e.batches.SetStage(context.Background(), b.ID, model.StageCompleted)
	require.NoError(t, err)
	_, err = e.warehouse.ReceiveBatch(context.Background(), b.ID, &ReceiveBatchRequest{StorageLocation: "A-01"})
	require.NoError(t, err)
	return b.ID
}

func (e *testEnv) count(t *testing.T, table any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(table).Count(&n).Error)
	return n
}

func (e *testEnv) inventory(t *testing.T, batchID uint) model.WarehouseInventory {
	t.Helper()
	var rec model.WarehouseInventory
	require.NoError(t, e.db.Where("batch_id = ?", batchID).First(&rec).Error)
	return rec
}
