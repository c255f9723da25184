package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/modqueue/internal/model"
)

func TestMigrateCreatesAllTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	m := db.Migrator()
	for _, table := range []any{
		&model.QueueItem{},
		&model.PodcastSubmission{},
		&model.CommentSubmission{},
		&model.ArticleSubmission{},
		&model.User{},
		&model.Category{},
		&model.AuditLog{},
	} {
		assert.True(t, m.HasTable(table), "missing table for %T", table)
	}
}
