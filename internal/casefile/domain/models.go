// Package domain contains persistence models for the case service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	TypeCredit = "credit"
	TypeLegal  = "legal"
)

const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusSettled    = "SETTLED"
	StatusEscalated  = "ESCALATED"
	StatusClosed     = "CLOSED"
)

// CaseFile is a single collection or legal matter. Number is the
// human-readable identifier printed on correspondence; it is unique
// across all firms.
type CaseFile struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	FirmID        snowflake.ID      `gorm:"not null;index" json:"firm_id"`
	DepartmentID  snowflake.ID      `gorm:"not null;index" json:"department_id"`
	Number        string            `gorm:"type:text;not null;uniqueIndex:ux_case_files_number" json:"number"`
	Type          string            `gorm:"type:text;not null" json:"type"`
	Status        string            `gorm:"type:text;not null;index" json:"status"`
	Escalated     bool              `gorm:"not null;default:false" json:"escalated"`
	EscalatedFrom string            `gorm:"type:text;column:escalated_from" json:"escalated_from,omitempty"`
	DebtorName    string            `gorm:"type:text;not null;column:debtor_name" json:"debtor_name"`
	DebtorEmail   string            `gorm:"type:text;column:debtor_email" json:"debtor_email"`
	Principal     float64           `gorm:"not null" json:"principal"`
	OpenedAt      time.Time         `gorm:"not null;column:opened_at" json:"opened_at"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (CaseFile) TableName() string { return "case_files" }
