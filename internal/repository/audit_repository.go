package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/modqueue/internal/model"
)

// AuditRepository 审计日志追加写
type AuditRepository interface {
	Append(ctx context.Context, entry *model.AuditLog) error
}

type auditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepository{db: db} }

func (r *auditRepository) Append(ctx context.Context, entry *model.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
