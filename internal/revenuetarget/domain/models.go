// Package domain contains persistence models for the revenue target service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/internal/revenuetarget/decompose"
	"gorm.io/datatypes"
)

// RevenueTarget stores a yearly collection goal together with its
// decomposed monthly breakdown. DepartmentID zero means the target is
// firm-wide.
type RevenueTarget struct {
	ID           snowflake.ID                                  `gorm:"primaryKey" json:"id"`
	FirmID       snowflake.ID                                  `gorm:"not null;uniqueIndex:ux_revenue_targets_scope,priority:1" json:"firm_id"`
	DepartmentID snowflake.ID                                  `gorm:"not null;uniqueIndex:ux_revenue_targets_scope,priority:2" json:"department_id"`
	Year         int                                           `gorm:"not null;uniqueIndex:ux_revenue_targets_scope,priority:3" json:"year"`
	YearlyTarget float64                                       `gorm:"not null;column:yearly_target" json:"yearly_target"`
	Months       datatypes.JSONType[[]decompose.MonthTarget]   `gorm:"type:jsonb;not null" json:"months"`
	CreatedAt    time.Time                                     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time                                     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (RevenueTarget) TableName() string { return "revenue_targets" }
