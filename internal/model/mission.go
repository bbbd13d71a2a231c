package model

import (
	"time"

	"mobilis/backend/internal/lifecycle"
)

// Mission is a moving job posted on the marketplace. The from/to/when
// columns carry prefixed names because the natural ones are reserved words
// in Postgres; the JSON contract keeps the short names.
type Mission struct {
	ID              string           `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title           string           `gorm:"column:title" json:"title"`
	Description     string           `gorm:"column:description" json:"description"`
	From            string           `gorm:"column:from_location" json:"from"`
	To              string           `gorm:"column:to_location" json:"to"`
	When            time.Time        `gorm:"column:when_date" json:"when"`
	Distance        float64          `gorm:"column:distance" json:"distance"`
	Status          lifecycle.Status `gorm:"column:status" json:"status"`
	RejectionReason *string          `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreatedByID     string           `gorm:"column:created_by;type:uuid" json:"created_by"`
	AssignedToID    *string          `gorm:"column:assigned_to;type:uuid" json:"assigned_to,omitempty"`

	CreatedBy  *User `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`
	AssignedTo *User `gorm:"foreignKey:AssignedToID" json:"assignee,omitempty"`
	Timestamps
}

// TableName implements the GORM table naming convention.
func (Mission) TableName() string { return "missions" }
