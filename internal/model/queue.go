package model

import "time"

// 内容类型
const (
	ContentTypePodcast = "podcast"
	ContentTypeComment = "comment"
	ContentTypeArticle = "article"
)

// 审核状态
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusFlagged  = "flagged"
	// 文章通过后直接进入发布态（与播客/评论的 approved 有意不同）
	StatusPublished = "published"
)

// 优先级：入队时按内容类型一次性确定，之后只有 flag 操作会改写
const (
	PriorityComment = 2
	PriorityPodcast = 3
	PriorityArticle = 4
	PriorityFlagged = 5

	// priority >= 4 视为高优先级
	PriorityHighThreshold = 4
)

// QueueItem 审核队列行
type QueueItem struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ContentID           string    `json:"content_id" gorm:"type:varchar(36);index:idx_queue_content;not null"`
	ContentType         string    `json:"content_type" gorm:"type:varchar(16);index:idx_queue_content;not null"`
	Status              string    `json:"status" gorm:"type:varchar(16);index;not null;default:pending"`
	Priority            int       `json:"priority" gorm:"index;not null;default:1"`
	AutoFlagged         bool      `json:"auto_flagged" gorm:"not null;default:false"`
	FlaggedReasons      []string  `json:"auto_flagged_reasons" gorm:"serializer:json;type:text"`
	ModerationNotes     string    `json:"moderation_notes" gorm:"type:text"`
	AssignedModeratorID *string   `json:"assigned_moderator_id" gorm:"type:varchar(36);index"`
	SubmitterID         *string   `json:"submitter_id" gorm:"type:varchar(36)"`
	CategoryID          *string   `json:"category_id" gorm:"type:varchar(36)"`
	CreatedAt           time.Time `json:"created_at" gorm:"index"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (QueueItem) TableName() string { return "moderation_queue" }
