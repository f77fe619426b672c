package model

import "time"

type BatchStage string

const (
	StageInitialized       BatchStage = "INITIALIZED"
	StageProductionStarted BatchStage = "PRODUCTION_STARTED"
	StageCompleted         BatchStage = "COMPLETED"
)

var BatchStages = []BatchStage{StageInitialized, StageProductionStarted, StageCompleted}

func (s BatchStage) Valid() bool {
	for _, v := range BatchStages {
		if s == v {
			return true
		}
	}
	return false
}

// ProductionBatch is a tracked quantity of one product moving through production stages.
type ProductionBatch struct {
	BaseModel
	StartDate       time.Time  `gorm:"not null" json:"start_date"`
	CurrentStage    BatchStage `gorm:"type:varchar(50);not null;default:INITIALIZED;check:chk_production_batches_stage,current_stage IN ('INITIALIZED','PRODUCTION_STARTED','COMPLETED')" json:"current_stage"`
	QuantityInBatch int        `gorm:"not null;check:chk_production_batches_quantity,quantity_in_batch >= 1" json:"quantity_in_batch"`
	ProductID       uint       `gorm:"not null;index" json:"product_id"`

	// Only declares the foreign key; never preloaded.
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (ProductionBatch) TableName() string {
	return "production_batches"
}

// Receivable reports whether the batch may be taken into the warehouse.
func (b *ProductionBatch) Receivable() bool {
	return b.CurrentStage == StageCompleted
}
