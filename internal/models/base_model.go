package models

import (
	"time"
)

// BaseModel provides shared fields for persistent models keyed by an auto-increment id.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
