package model

import "time"

// PodcastSubmission 播客投稿
type PodcastSubmission struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string     `json:"name" gorm:"type:varchar(255);not null"`
	FeedURL       string     `json:"feed_url" gorm:"type:varchar(512)"`
	Description   string     `json:"description" gorm:"type:text"`
	SubmitterID   *string    `json:"submitter_id" gorm:"type:varchar(36);index"`
	CategoryID    *string    `json:"category_id" gorm:"type:varchar(36)"`
	Status        string     `json:"status" gorm:"type:varchar(16);index;not null;default:pending"`
	AdminComments *string    `json:"admin_comments" gorm:"type:text"`
	SubmittedAt   time.Time  `json:"submitted_at" gorm:"index"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	ReviewedBy    *string    `json:"reviewed_by" gorm:"type:varchar(36)"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (PodcastSubmission) TableName() string { return "podcast_submissions" }

// CommentSubmission 评论投稿（评论表没有 reviewed_by 列）
type CommentSubmission struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Content       string     `json:"content" gorm:"type:text;not null"`
	AuthorName    string     `json:"author_name" gorm:"type:varchar(255)"`
	ArticleID     *string    `json:"article_id" gorm:"type:varchar(36);index"`
	SubmitterID   *string    `json:"submitter_id" gorm:"type:varchar(36);index"`
	Status        string     `json:"status" gorm:"type:varchar(16);index;not null;default:pending"`
	AdminComments *string    `json:"admin_comments" gorm:"type:text"`
	SubmittedAt   time.Time  `json:"submitted_at" gorm:"index"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (CommentSubmission) TableName() string { return "comment_submissions" }

// ArticleSubmission 文章投稿
type ArticleSubmission struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title         string     `json:"title" gorm:"type:varchar(255);not null"`
	Content       string     `json:"content" gorm:"type:text"`
	AuthorName    string     `json:"author_name" gorm:"type:varchar(255)"`
	SubmitterID   *string    `json:"submitter_id" gorm:"type:varchar(36);index"`
	CategoryID    *string    `json:"category_id" gorm:"type:varchar(36)"`
	Status        string     `json:"status" gorm:"type:varchar(16);index;not null;default:pending"`
	AdminComments *string    `json:"admin_comments" gorm:"type:text"`
	SubmittedAt   time.Time  `json:"submitted_at" gorm:"index"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	ReviewedBy    *string    `json:"reviewed_by" gorm:"type:varchar(36)"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (ArticleSubmission) TableName() string { return "article_submissions" }
