// Package model defines the database entities persisted through GORM.
package model

import "time"

// Timestamps is embedded by every entity. Rows carry creation and update
// times only; hard deletes are used throughout.
type Timestamps struct {
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}
