// Package domain contains persistence models for the payment service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	MethodBankTransfer = "bank_transfer"
	MethodCard         = "card"
	MethodCash         = "cash"
	MethodOther        = "other"
)

// Payment is money received against a case.
type Payment struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	FirmID     snowflake.ID `gorm:"not null;index" json:"firm_id"`
	CaseID     snowflake.ID `gorm:"not null;index;column:case_id" json:"case_id"`
	Amount     float64      `gorm:"not null" json:"amount"`
	Method     string       `gorm:"type:text;not null" json:"method"`
	Reference  string       `gorm:"type:text" json:"reference"`
	ReceivedAt time.Time    `gorm:"not null;index;column:received_at" json:"received_at"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
