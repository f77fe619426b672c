package app

import (
	"errors"
	"fmt"

	"go-warehouse-api/internal/cache"
	"go-warehouse-api/internal/handler"
	"go-warehouse-api/internal/metrics"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"
	"go-warehouse-api/internal/ws"
	"go-warehouse-api/pkg/config"
	"go-warehouse-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App owns every long-lived handle of the API process. Build it with New and
// release it with Shutdown.
type App struct {
	Fiber   *fiber.App
	DB      *gorm.DB
	Cache   *cache.ReadCache
	Hub     *ws.Hub
	Metrics *metrics.Recorder
	log     *logrus.Logger
}

// New wires repositories, services and handlers onto a Fiber app. The store may
// be cache.NoopStore{} when no cache backend is configured.
func New(cfg config.Config, db *gorm.DB, store cache.Store, log *logrus.Logger) (*App, error) {
	stages, err := service.NewStageTransitions(cfg.BatchStageTransitions)
	if err != nil {
		return nil, fmt.Errorf("BATCH_STAGE_TRANSITIONS: %w", err)
	}
	statuses, err := service.NewShipmentTransitions(cfg.ShipmentStatusTransitions)
	if err != nil {
		return nil, fmt.Errorf("SHIPMENT_STATUS_TRANSITIONS: %w", err)
	}

	rec := metrics.New()
	readCache := cache.NewReadCache(store, cfg.CacheTTL, log, rec)

	// 1. WebSocket hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 2. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	batchRepo := repository.NewBatchRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	shipmentRepo := repository.NewShipmentRepo(db)
	dashRepo := repository.NewDashboardRepo(db)
	lookup := service.NewLookup(db)

	productService := service.NewProductService(productRepo, batchRepo, lookup, db, wsHub)
	batchService := service.NewBatchService(batchRepo, lookup, stages, db, wsHub)
	warehouseService := service.NewWarehouseService(inventoryRepo, lookup, db, wsHub, rec)
	shipmentService := service.NewShipmentService(service.ShipmentDeps{
		ShipmentRepo:  shipmentRepo,
		InventoryRepo: inventoryRepo,
		Lookup:        lookup,
		OrderIDs:      service.NewOrderIDGenerator(cfg.OrderIDMaxAttempts),
		Transitions:   statuses,
		DB:            db,
		Hub:           wsHub,
		Metrics:       rec,
		Log:           log,
	})

	productHandler := handler.NewProductHandler(productService, readCache, log)
	productionHandler := handler.NewProductionHandler(batchService, log)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService, shipmentService, readCache, log)
	dashHandler := handler.NewDashboardHandler(service.NewDashboardService(dashRepo), log)
	healthHandler := handler.NewHealthHandler(db, log)

	// 3. Setup Fiber
	f := fiber.New(fiber.Config{
		AppName:               "Warehouse API v1.0",
		DisableStartupMessage: true,
	})

	f.Use(fiberlogger.New(fiberlogger.Config{Output: log.Out}))
	f.Use(recover.New())
	f.Use(cors.New())

	// 4. Routes
	api := f.Group("/api/v1")
	api.Get("/healthcheck", healthHandler.Healthcheck)

	api.Get("/dashboard/stats", dashHandler.GetDashboardStats)

	api.Get("/products", productHandler.GetProducts)
	api.Post("/products", productHandler.CreateProduct)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Delete("/products/:id", productHandler.DeleteProduct)

	production := api.Group("/production")
	production.Post("/batches", productionHandler.CreateBatch)
	production.Patch("/batches/:id/stages", productionHandler.SetStage)

	warehouse := api.Group("/warehouse")
	warehouse.Put("/receive-batch/:id", warehouseHandler.ReceiveBatch)
	warehouse.Get("/inventory", warehouseHandler.GetInventory)
	warehouse.Get("/inventory/export", warehouseHandler.ExportInventory)
	warehouse.Post("/shipments", warehouseHandler.CreateShipment)
	warehouse.Get("/shipments/:id", warehouseHandler.GetShipment)
	warehouse.Patch("/change-status", warehouseHandler.ChangeStatus)

	f.Get("/metrics", adaptor.HTTPHandler(rec.Handler()))

	// WebSocket Route
	f.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	f.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !wsHub.Join(c) {
			return
		}
		defer wsHub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	return &App{
		Fiber:   f,
		DB:      db,
		Cache:   readCache,
		Hub:     wsHub,
		Metrics: rec,
		log:     log,
	}, nil
}

func (a *App) Listen(addr string) error {
	a.log.WithField("addr", addr).Info("http server listening")
	return a.Fiber.Listen(addr)
}

// Shutdown stops the server first, then releases the hub, the cache and the pool.
func (a *App) Shutdown() error {
	var errs []error
	if err := a.Fiber.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("fiber: %w", err))
	}
	a.Hub.Stop()
	if err := a.Cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("cache: %w", err))
	}
	if err := database.Close(a.DB); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	return errors.Join(errs...)
}
