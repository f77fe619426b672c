package model

// WarehouseInventory is the warehouse-side record of one received batch.
// At most one row exists per batch.
type WarehouseInventory struct {
	BaseModel
	ProductID       uint   `gorm:"not null;index" json:"product_id"`
	BatchID         uint   `gorm:"not null;uniqueIndex" json:"batch_id"`
	StorageLocation string `gorm:"type:varchar(50);not null" json:"storage_location"`
	StockQuantity   int    `gorm:"not null;check:chk_warehouse_inventory_stock,stock_quantity >= 0" json:"stock_quantity"`
	InShipment      bool   `gorm:"not null;default:false" json:"in_shipment"`

	Product *Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Batch   *ProductionBatch `gorm:"foreignKey:BatchID" json:"-"`
}

func (WarehouseInventory) TableName() string {
	return "warehouse_inventory"
}
