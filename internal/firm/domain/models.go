// Package domain contains persistence models for the firm service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Firm represents a tenant law firm. Every case, payment and revenue
// target belongs to exactly one firm.
type Firm struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"type:text;not null" json:"name"`
	Prefix       string            `gorm:"type:text;not null;uniqueIndex:ux_firms_prefix" json:"prefix"`
	ContactEmail string            `gorm:"type:text;column:contact_email" json:"contact_email"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Firm) TableName() string { return "firms" }
