package model

import "gorm.io/gorm"

// All lists the tables in dependency order.
func All() []any {
	return []any{
		&Product{},
		&ProductionBatch{},
		&WarehouseInventory{},
		&Shipment{},
		&ShipmentItem{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}

// Reset drops every table and recreates the schema.
func Reset(db *gorm.DB) error {
	tables := All()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return err
		}
	}
	return AutoMigrate(db)
}
