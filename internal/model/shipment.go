package model

import (
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"
)

type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "PENDING"
	ShipmentShipped   ShipmentStatus = "SHIPPED"
	ShipmentCancelled ShipmentStatus = "CANCELLED"
)

var ShipmentStatuses = []ShipmentStatus{ShipmentPending, ShipmentShipped, ShipmentCancelled}

func (s ShipmentStatus) Valid() bool {
	for _, v := range ShipmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order identifiers are "ORD" followed by six digits.
const (
	OrderIDPrefix = "ORD"
	OrderIDSpace  = 1_000_000
)

var orderIDPattern = regexp.MustCompile(`^ORD\d{6}$`)

func FormatOrderID(n int) string {
	return fmt.Sprintf("%s%06d", OrderIDPrefix, n)
}

func ValidOrderID(s string) bool {
	return orderIDPattern.MatchString(s)
}

// Shipment is an outbound order grouping one or more shipped batches.
type Shipment struct {
	BaseModel
	OrderID   string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"order_id"`
	Status    ShipmentStatus `gorm:"type:varchar(50);not null;default:PENDING;check:chk_shipment_status,status IN ('PENDING','SHIPPED','CANCELLED')" json:"status"`
	ShippedAt time.Time      `gorm:"not null" json:"shipped_at"`

	Items []ShipmentItem `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Shipment) TableName() string {
	return "shipment"
}

func (s *Shipment) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ShippedAt.IsZero() {
		s.ShippedAt = time.Now().UTC()
	}
	if s.Status == "" {
		s.Status = ShipmentPending
	}
	return
}

// BatchIDs lists the batches carried by the loaded items.
func (s *Shipment) BatchIDs() []uint {
	ids := make([]uint, len(s.Items))
	for i, item := range s.Items {
		ids[i] = item.BatchID
	}
	return ids
}

// ShipmentItem links one shipment to one batch; a batch appears at most once per shipment.
type ShipmentItem struct {
	BaseModel
	ShipmentID uint `gorm:"not null;uniqueIndex:uq_shipment_items_shipment_batch" json:"shipment_id"`
	BatchID    uint `gorm:"not null;uniqueIndex:uq_shipment_items_shipment_batch;index" json:"batch_id"`

	Batch *ProductionBatch `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ShipmentItem) TableName() string {
	return "shipment_items"
}
