package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/modqueue/internal/model"
)

// Ingestor 投稿入队：一个事务内落投稿行 + 队列行。
// 优先级按内容类型一次性确定（评论 2、播客 3、文章 4）。
type Ingestor struct{ db *gorm.DB }

func NewIngestor(db *gorm.DB) *Ingestor { return &Ingestor{db: db} }

// PodcastInput 播客投稿字段
type PodcastInput struct {
	Name        string
	FeedURL     string
	Description string
	SubmitterID string
	CategoryID  string
}

// CommentInput 评论投稿字段
type CommentInput struct {
	Content     string
	AuthorName  string
	ArticleID   string
	SubmitterID string
}

// ArticleInput 文章投稿字段
type ArticleInput struct {
	Title       string
	Content     string
	AuthorName  string
	SubmitterID string
	CategoryID  string
}

func (s *Ingestor) SubmitPodcast(ctx context.Context, in PodcastInput) (string, error) {
	id := uuid.New().String()
	now := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := &model.PodcastSubmission{
			ID:          id,
			Name:        in.Name,
			FeedURL:     in.FeedURL,
			Description: in.Description,
			SubmitterID: optional(in.SubmitterID),
			CategoryID:  optional(in.CategoryID),
			Status:      model.StatusPending,
			SubmittedAt: now,
			UpdatedAt:   now,
		}
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		return tx.Create(s.queueItem(id, model.ContentTypePodcast, model.PriorityPodcast, in.SubmitterID, in.CategoryID, now)).Error
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Ingestor) SubmitComment(ctx context.Context, in CommentInput) (string, error) {
	id := uuid.New().String()
	now := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := &model.CommentSubmission{
			ID:          id,
			Content:     in.Content,
			AuthorName:  in.AuthorName,
			ArticleID:   optional(in.ArticleID),
			SubmitterID: optional(in.SubmitterID),
			Status:      model.StatusPending,
			SubmittedAt: now,
			UpdatedAt:   now,
		}
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		return tx.Create(s.queueItem(id, model.ContentTypeComment, model.PriorityComment, in.SubmitterID, "", now)).Error
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Ingestor) SubmitArticle(ctx context.Context, in ArticleInput) (string, error) {
	id := uuid.New().String()
	now := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := &model.ArticleSubmission{
			ID:          id,
			Title:       in.Title,
			Content:     in.Content,
			AuthorName:  in.AuthorName,
			SubmitterID: optional(in.SubmitterID),
			CategoryID:  optional(in.CategoryID),
			Status:      model.StatusPending,
			SubmittedAt: now,
			UpdatedAt:   now,
		}
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		return tx.Create(s.queueItem(id, model.ContentTypeArticle, model.PriorityArticle, in.SubmitterID, in.CategoryID, now)).Error
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Ingestor) queueItem(contentID, kind string, priority int, submitterID, categoryID string, now time.Time) *model.QueueItem {
	return &model.QueueItem{
		ID:          uuid.New().String(),
		ContentID:   contentID,
		ContentType: kind,
		Status:      model.StatusPending,
		Priority:    priority,
		SubmitterID: optional(submitterID),
		CategoryID:  optional(categoryID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
