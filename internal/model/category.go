package model

import "time"

// Category 内容分类（仅用于名称反查）
type Category struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Name      string `gorm:"type:varchar(128);not null"`
	CreatedAt time.Time
}

func (Category) TableName() string { return "categories" }
