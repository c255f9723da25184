package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/modqueue/internal/model"
	"github.com/d60-Lab/modqueue/pkg/logger"
)

// 校验类错误：在发出任何网络/库写之前就拒绝
var (
	ErrReasonRequired  = errors.New("Please provide a reason for rejection")
	ErrNoItemsSelected = errors.New("no items selected")
	ErrUnknownAction   = errors.New("unknown bulk action")
)

// 批量动作名
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionFlag    = "flag"
)

// ActionDispatcher 执行审核动作并在写确认后整体刷新工作集。
// 本地状态只在写成功之后变化，不做乐观移除。
type ActionDispatcher struct {
	queueRepo QueueRepo
	subRepo   SubmissionRepo
	audit     *AuditWriter
	ws        *Workspace
}

// QueueRepo / SubmissionRepo 是 dispatcher 实际用到的窄接口，便于测试替身
type QueueRepo interface {
	Flag(ctx context.Context, id, reason string, seenAt time.Time) error
	AssignModerator(ctx context.Context, id, moderatorID string, seenAt time.Time) error
}

type SubmissionRepo interface {
	Review(ctx context.Context, kind, id, status string, comment *string, reviewedBy string, seenAt time.Time) error
}

func NewActionDispatcher(queueRepo QueueRepo, subRepo SubmissionRepo, audit *AuditWriter, ws *Workspace) *ActionDispatcher {
	return &ActionDispatcher{queueRepo: queueRepo, subRepo: subRepo, audit: audit, ws: ws}
}

// Approve 通过投稿。文章写 published（过审即发布），播客/评论写 approved。
func (d *ActionDispatcher) Approve(ctx context.Context, actorID, kind, id, comment string, seenAt time.Time) error {
	status := model.StatusApproved
	if kind == model.ContentTypeArticle {
		status = model.StatusPublished
	}
	if err := d.subRepo.Review(ctx, kind, id, status, optional(comment), actorID, seenAt); err != nil {
		return err
	}
	d.record(ActionApprove, kind, id, actorID, comment)
	d.reload(ctx)
	return nil
}

// Reject 驳回投稿；理由为空时在任何写之前拒绝
func (d *ActionDispatcher) Reject(ctx context.Context, actorID, kind, id, comment string, seenAt time.Time) error {
	if strings.TrimSpace(comment) == "" {
		return ErrReasonRequired
	}
	if err := d.subRepo.Review(ctx, kind, id, model.StatusRejected, optional(comment), actorID, seenAt); err != nil {
		return err
	}
	d.record(ActionReject, kind, id, actorID, comment)
	d.reload(ctx)
	return nil
}

// Flag 标记队列行：status=flagged、priority 强制 5、notes 记原因
func (d *ActionDispatcher) Flag(ctx context.Context, actorID, queueID, reason string, seenAt time.Time) error {
	if err := d.queueRepo.Flag(ctx, queueID, reason, seenAt); err != nil {
		return err
	}
	d.record(ActionFlag, "queue", queueID, actorID, reason)
	d.reload(ctx)
	return nil
}

// Assign 指派审核员；moderatorID 空串表示取消指派
func (d *ActionDispatcher) Assign(ctx context.Context, actorID, queueID, moderatorID string, seenAt time.Time) error {
	if err := d.queueRepo.AssignModerator(ctx, queueID, moderatorID, seenAt); err != nil {
		return err
	}
	d.record("assign", "queue", queueID, actorID, moderatorID)
	d.reload(ctx)
	return nil
}

// Bulk 逐条顺序执行批量动作。
// 校验一次做在最前面：空选集、批量驳回缺理由都会在第一条写之前中止。
// 循环中途失败即停，已落库的条目不补偿；返回已处理条数。
func (d *ActionDispatcher) Bulk(ctx context.Context, actorID, action, kind string, ids []string, comment string) (int, error) {
	if len(ids) == 0 {
		return 0, ErrNoItemsSelected
	}
	switch action {
	case ActionApprove, ActionFlag:
	case ActionReject:
		if strings.TrimSpace(comment) == "" {
			return 0, ErrReasonRequired
		}
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	processed := 0
	defer func() {
		if processed > 0 {
			d.reload(ctx)
		}
	}()

	for _, id := range ids {
		var err error
		switch action {
		case ActionApprove:
			status := model.StatusApproved
			if kind == model.ContentTypeArticle {
				status = model.StatusPublished
			}
			err = d.subRepo.Review(ctx, kind, id, status, optional(comment), actorID, time.Time{})
		case ActionReject:
			err = d.subRepo.Review(ctx, kind, id, model.StatusRejected, optional(comment), actorID, time.Time{})
		case ActionFlag:
			err = d.queueRepo.Flag(ctx, id, comment, time.Time{})
		}
		if err != nil {
			return processed, fmt.Errorf("bulk %s halted at %s: %w", action, id, err)
		}
		d.record(action, kind, id, actorID, comment)
		processed++
	}
	return processed, nil
}

func (d *ActionDispatcher) record(action, targetType, targetID, actorID, detail string) {
	if d.audit != nil {
		d.audit.Record(action, targetType, targetID, actorID, detail)
	}
}

// reload 写成功后的全量刷新；刷新失败不影响已落库的结果，只记日志
func (d *ActionDispatcher) reload(ctx context.Context) {
	if d.ws == nil {
		return
	}
	if _, err := d.ws.Reload(ctx); err != nil {
		logger.Warn("post-action reload failed", zap.Error(err))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
