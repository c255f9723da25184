package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/modqueue/internal/model"
)

// SubmissionRepository 三类投稿表的仓储接口
type SubmissionRepository interface {
	ListPendingPodcasts(ctx context.Context) ([]*model.PodcastSubmission, error)
	ListPendingComments(ctx context.Context) ([]*model.CommentSubmission, error)
	ListPendingArticles(ctx context.Context) ([]*model.ArticleSubmission, error)

	// Review 写入审核结论：status、admin_comments、reviewed_at，
	// 播客/文章额外写 reviewed_by（评论表没有该列）。
	Review(ctx context.Context, kind, id, status string, comment *string, reviewedBy string, seenAt time.Time) error
}

type submissionRepository struct{ db *gorm.DB }

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) ListPendingPodcasts(ctx context.Context) ([]*model.PodcastSubmission, error) {
	var res []*model.PodcastSubmission
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusPending).
		Order("submitted_at ASC").
		Find(&res).Error
	return res, err
}

func (r *submissionRepository) ListPendingComments(ctx context.Context) ([]*model.CommentSubmission, error) {
	var res []*model.CommentSubmission
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusPending).
		Order("submitted_at ASC").
		Find(&res).Error
	return res, err
}

func (r *submissionRepository) ListPendingArticles(ctx context.Context) ([]*model.ArticleSubmission, error) {
	var res []*model.ArticleSubmission
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusPending).
		Order("submitted_at ASC").
		Find(&res).Error
	return res, err
}

func (r *submissionRepository) Review(ctx context.Context, kind, id, status string, comment *string, reviewedBy string, seenAt time.Time) error {
	now := time.Now()
	values := map[string]any{
		"status":         status,
		"admin_comments": comment,
		"reviewed_at":    now,
	}

	var m any
	switch kind {
	case model.ContentTypePodcast:
		m = &model.PodcastSubmission{}
		values["reviewed_by"] = reviewedBy
	case model.ContentTypeArticle:
		m = &model.ArticleSubmission{}
		values["reviewed_by"] = reviewedBy
	case model.ContentTypeComment:
		m = &model.CommentSubmission{}
	default:
		return fmt.Errorf("unknown content kind %q", kind)
	}

	tx := r.db.WithContext(ctx).Model(m).Where("id = ? AND status = ?", id, model.StatusPending)
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
