package casenumber

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ErrMetadataNotFound means the firm or department backing a numbering
// request does not exist. It is recovered locally with a fallback
// identifier, never surfaced to case creation.
var ErrMetadataNotFound = errors.New("numbering metadata not found")

// Ref carries the formatting inputs resolved from firm and department.
type Ref struct {
	FirmPrefix     string
	DepartmentCode string
}

// Metadata resolves the prefix/code pair for a firm and department.
type Metadata interface {
	Resolve(ctx context.Context, firmID, departmentID snowflake.ID) (Ref, error)
}

type gormMetadata struct {
	db *gorm.DB
}

func NewGormMetadata(db *gorm.DB) Metadata {
	return &gormMetadata{db: db}
}

func (m *gormMetadata) Resolve(ctx context.Context, firmID, departmentID snowflake.ID) (Ref, error) {
	var rows []struct {
		Prefix string
		Code   string
	}
	err := m.db.WithContext(ctx).Raw(
		`SELECT f.prefix AS prefix, d.code AS code
		 FROM firms f
		 JOIN departments d ON d.firm_id = f.id
		 WHERE f.id = ? AND d.id = ?`,
		firmID,
		departmentID,
	).Scan(&rows).Error
	if err != nil {
		return Ref{}, err
	}
	if len(rows) == 0 || rows[0].Prefix == "" || rows[0].Code == "" {
		return Ref{}, ErrMetadataNotFound
	}
	return Ref{FirmPrefix: rows[0].Prefix, DepartmentCode: rows[0].Code}, nil
}
