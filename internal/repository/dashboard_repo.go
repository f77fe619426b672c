package repository

import (
	"context"

	"go-warehouse-api/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

// DashboardStats is the overview shown on the warehouse dashboard
type DashboardStats struct {
	TotalProducts     int64            `json:"total_products"`
	BatchesByStage    map[string]int64 `json:"batches_by_stage"`
	ReceivedBatches   int64            `json:"received_batches"`
	ShippedBatches    int64            `json:"shipped_batches"`
	StockOnHand       int64            `json:"stock_on_hand"`
	ShipmentsByStatus map[string]int64 `json:"shipments_by_status"`
}

type statusCount struct {
	Status string
	Total  int64
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	db := r.db.WithContext(ctx)
	stats := DashboardStats{
		BatchesByStage:    make(map[string]int64, len(model.BatchStages)),
		ShipmentsByStatus: make(map[string]int64, len(model.ShipmentStatuses)),
	}
	for _, s := range model.BatchStages {
		stats.BatchesByStage[string(s)] = 0
	}
	for _, s := range model.ShipmentStatuses {
		stats.ShipmentsByStatus[string(s)] = 0
	}

	// Total Products
	if err := db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	// Batches per stage
	var stages []statusCount
	err := db.Model(&model.ProductionBatch{}).
		Select("current_stage AS status, COUNT(*) AS total").
		Group("current_stage").
		Scan(&stages).Error
	if err != nil {
		return nil, err
	}
	for _, s := range stages {
		stats.BatchesByStage[s.Status] = s.Total
	}

	// Inventory: received, shipped, units still on hand
	if err := db.Model(&model.WarehouseInventory{}).Count(&stats.ReceivedBatches).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.WarehouseInventory{}).Where("in_shipment = ?", true).Count(&stats.ShippedBatches).Error; err != nil {
		return nil, err
	}
	err = db.Model(&model.WarehouseInventory{}).
		Where("in_shipment = ?", false).
		Select("COALESCE(SUM(stock_quantity), 0)").
		Scan(&stats.StockOnHand).Error
	if err != nil {
		return nil, err
	}

	// Shipments per status
	var statuses []statusCount
	err = db.Model(&model.Shipment{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&statuses).Error
	if err != nil {
		return nil, err
	}
	for _, s := range statuses {
		stats.ShipmentsByStatus[s.Status] = s.Total
	}

	return &stats, nil
}
