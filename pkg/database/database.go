package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/modqueue/config"
	"github.com/d60-Lab/modqueue/internal/model"
)

// InitDB 打开 Postgres 连接并设置连接池
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	return db, nil
}

// Migrate 初始化审核相关表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.QueueItem{},
		&model.PodcastSubmission{},
		&model.CommentSubmission{},
		&model.ArticleSubmission{},
		&model.User{},
		&model.Category{},
		&model.AuditLog{},
	)
}
