package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductInProduction ProductStatus = "IN_PRODUCTION"
	ProductInStock      ProductStatus = "IN_STOCK"
	ProductOutOfStock   ProductStatus = "OUT_OF_STOCK"
)

var ProductStatuses = []ProductStatus{ProductInProduction, ProductInStock, ProductOutOfStock}

func (s ProductStatus) Valid() bool {
	for _, v := range ProductStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Product does not hold its batches or inventory rows; those are queried by product_id.
type Product struct {
	BaseModel
	UUID         uuid.UUID     `gorm:"column:product_uuid;type:uuid;uniqueIndex;not null" json:"uuid"`
	Name         string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	SerialNumber string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"serial_number"`
	ModelName    string        `gorm:"column:model_name;type:varchar(255);uniqueIndex;not null" json:"model"`
	Status       ProductStatus `gorm:"type:varchar(50);not null;default:IN_PRODUCTION;check:chk_products_status,status IN ('IN_PRODUCTION','IN_STOCK','OUT_OF_STOCK')" json:"status"`
}

func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns the public uuid and the default status.
func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProductInProduction
	}
	return
}
