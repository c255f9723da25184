package model

import "time"

// AuditLog 审计日志（尽力而为的旁路记录，不保证必达）
type AuditLog struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Action     string    `json:"action" gorm:"type:varchar(32);index;not null"`
	TargetType string    `json:"target_type" gorm:"type:varchar(16);not null"`
	TargetID   string    `json:"target_id" gorm:"type:varchar(36);index;not null"`
	ActorID    string    `json:"actor_id" gorm:"type:varchar(36);index"`
	Detail     string    `json:"detail" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

func (AuditLog) TableName() string { return "audit_logs" }
