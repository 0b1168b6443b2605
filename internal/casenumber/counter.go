package casenumber

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// CaseCounter is one sequential numbering partition. A partition is the
// composite of year, firm prefix, firm, department and the escalated flag:
// escalated cases draw from an independent sequence.
type CaseCounter struct {
	CounterKey string    `gorm:"column:counter_key;primaryKey;size:128" json:"counter_key"`
	Sequence   int64     `gorm:"not null;default:0" json:"sequence"`
	Year       int       `gorm:"not null" json:"year"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CaseCounter) TableName() string {
	return "case_counters"
}

// CounterKey builds the partition key for one numbering sequence.
func CounterKey(year int, prefix string, firmID, departmentID snowflake.ID, escalated bool) string {
	segment := "std"
	if escalated {
		segment = "esc"
	}
	return fmt.Sprintf("%d:%s:%d:%d:%s", year, prefix, firmID, departmentID, segment)
}
