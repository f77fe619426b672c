package model

import (
	"time"
)

// BaseModel handles the integer primary key and audit timestamps.
// Rows are hard-deleted so foreign key cascades apply.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
