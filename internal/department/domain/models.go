// Package domain contains persistence models for the department service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Department is a practice group within a firm. Its code is the second
// segment of every case number the group issues.
type Department struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	FirmID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_departments_firm_code,priority:1" json:"firm_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Code      string       `gorm:"type:text;not null;uniqueIndex:ux_departments_firm_code,priority:2" json:"code"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Department) TableName() string { return "departments" }
