package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/modqueue/internal/model"
)

// LookupRepository 外键名称批量反查（分类名、用户名、文章标题）
type LookupRepository interface {
	CategoryNames(ctx context.Context, ids []string) (map[string]string, error)
	UserNames(ctx context.Context, ids []string) (map[string]string, error)
	ArticleTitles(ctx context.Context, ids []string) (map[string]string, error)
}

type lookupRepository struct{ db *gorm.DB }

func NewLookupRepository(db *gorm.DB) LookupRepository { return &lookupRepository{db: db} }

func (r *lookupRepository) CategoryNames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	var rows []model.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}

func (r *lookupRepository) UserNames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	var rows []model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Username
	}
	return out, nil
}

func (r *lookupRepository) ArticleTitles(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	var rows []model.ArticleSubmission
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Title
	}
	return out, nil
}
