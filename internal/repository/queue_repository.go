package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/modqueue/internal/model"
)

// ErrStaleRow 带 updated_at 前置条件的更新未命中任何行：
// 要么行已被其他审核员改动，要么行不存在。
var ErrStaleRow = errors.New("row was modified by another moderator")

// QueueRepository 审核队列仓储接口
type QueueRepository interface {
	// Create 入队（通常在投稿事务内调用）
	Create(ctx context.Context, item *model.QueueItem) error

	// GetByID 按 ID 查询队列行
	GetByID(ctx context.Context, id string) (*model.QueueItem, error)

	// ListOpen 查询全部未出终态的行（pending + flagged）
	ListOpen(ctx context.Context) ([]*model.QueueItem, error)

	// ListSince 查询统计窗口内的行（含终态）
	ListSince(ctx context.Context, since time.Time) ([]*model.QueueItem, error)

	// Flag 标记：status=flagged、priority 强制 5、notes 写入原因
	Flag(ctx context.Context, id, reason string, seenAt time.Time) error

	// AssignModerator 指派审核员；moderatorID 为空串表示取消指派
	AssignModerator(ctx context.Context, id, moderatorID string, seenAt time.Time) error

	// UpdateStatus 更新队列行状态
	UpdateStatus(ctx context.Context, id, status string, seenAt time.Time) error
}

type queueRepository struct{ db *gorm.DB }

func NewQueueRepository(db *gorm.DB) QueueRepository { return &queueRepository{db: db} }

func (r *queueRepository) Create(ctx context.Context, item *model.QueueItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *queueRepository) GetByID(ctx context.Context, id string) (*model.QueueItem, error) {
	var item model.QueueItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *queueRepository) ListOpen(ctx context.Context) ([]*model.QueueItem, error) {
	var res []*model.QueueItem
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{model.StatusPending, model.StatusFlagged}).
		Order("priority DESC, created_at ASC").
		Find(&res).Error
	return res, err
}

func (r *queueRepository) ListSince(ctx context.Context, since time.Time) ([]*model.QueueItem, error) {
	var res []*model.QueueItem
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Find(&res).Error
	return res, err
}

func (r *queueRepository) Flag(ctx context.Context, id, reason string, seenAt time.Time) error {
	return r.update(ctx, id, seenAt, map[string]any{
		"status":           model.StatusFlagged,
		"priority":         model.PriorityFlagged,
		"moderation_notes": reason,
	})
}

func (r *queueRepository) AssignModerator(ctx context.Context, id, moderatorID string, seenAt time.Time) error {
	var v any
	if moderatorID != "" {
		v = moderatorID
	}
	return r.update(ctx, id, seenAt, map[string]any{"assigned_moderator_id": v})
}

func (r *queueRepository) UpdateStatus(ctx context.Context, id, status string, seenAt time.Time) error {
	return r.update(ctx, id, seenAt, map[string]any{"status": status})
}

// update 乐观并发更新：seenAt 非零时要求 updated_at 与读到的值一致，
// 未命中任何行返回 ErrStaleRow，后写者不再静默覆盖。
func (r *queueRepository) update(ctx context.Context, id string, seenAt time.Time, values map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&model.QueueItem{}).Where("id = ?", id)
	if !seenAt.IsZero() {
		tx = tx.Where("updated_at = ?", seenAt)
	}
	res := tx.Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleRow
	}
	return nil
}
