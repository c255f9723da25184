package model

import "time"

// User 账号（投稿人与审核员共用一张表，仅用于名称反查）
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Username  string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email     string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
