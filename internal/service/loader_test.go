package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/modqueue/internal/cache"
	"github.com/d60-Lab/modqueue/internal/model"
	"github.com/d60-Lab/modqueue/internal/repository"
)

func strPtr(s string) *string { return &s }

type failingComments struct {
	repository.SubmissionRepository
}

func (failingComments) ListPendingComments(context.Context) ([]*model.CommentSubmission, error) {
	return nil, errors.New("comments table unavailable")
}

type failingWindow struct {
	repository.QueueRepository
}

func (failingWindow) ListSince(context.Context, time.Time) ([]*model.QueueItem, error) {
	return nil, errors.New("window query unavailable")
}

func TestLoadPartialFetchFailureIsDegraded(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, db.Create(&model.PodcastSubmission{
		ID: "p1", Name: "Cosmic Waves", Status: model.StatusPending, SubmittedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&model.CommentSubmission{
		ID: "c1", Content: "great episode", Status: model.StatusPending, SubmittedAt: now, UpdatedAt: now,
	}).Error)

	loader := NewQueueLoader(
		repository.NewQueueRepository(db),
		failingComments{repository.NewSubmissionRepository(db)},
		repository.NewLookupRepository(db),
		nil, 0,
	)

	// 评论拉取挂了不影响其它集合
	snap, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.PendingPodcasts, 1)
	assert.Empty(t, snap.PendingComments)
	assert.NotNil(t, snap.Stats)
}

func TestLoadFailsOnlyWhenEveryFetchFails(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close()) // 连接关死，五个 fetch 全挂

	loader := NewQueueLoader(
		repository.NewQueueRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewLookupRepository(db),
		nil, 0,
	)
	_, err = loader.Load(context.Background())
	require.Error(t, err)
}

func TestNameResolutionWithPlaceholders(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, db.Create(&model.Category{ID: "cat1", Name: "Science"}).Error)
	require.NoError(t, db.Create(&model.User{ID: "u1", Username: "alice"}).Error)
	require.NoError(t, db.Create(&model.User{ID: "u2", Username: "bob"}).Error)

	require.NoError(t, db.Create(&model.QueueItem{
		ID: "q1", ContentID: "p1", ContentType: model.ContentTypePodcast,
		Status: model.StatusPending, Priority: 3,
		CategoryID: strPtr("cat1"), SubmitterID: strPtr("u1"), AssignedModeratorID: strPtr("u2"),
		CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&model.QueueItem{
		ID: "q2", ContentID: "p2", ContentType: model.ContentTypePodcast,
		Status: model.StatusPending, Priority: 3,
		CategoryID: strPtr("ghost-cat"), SubmitterID: strPtr("ghost-user"),
		CreatedAt: now, UpdatedAt: now,
	}).Error)

	loader := NewQueueLoader(
		repository.NewQueueRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewLookupRepository(db),
		nil, 0,
	)
	snap, err := loader.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.QueueView, 2)

	byID := map[string]ViewItem{}
	for _, it := range snap.QueueView {
		byID[it.ID] = it
	}
	assert.Equal(t, "Science", byID["q1"].CategoryName)
	assert.Equal(t, "alice", byID["q1"].SubmitterName)
	assert.Equal(t, "bob", byID["q1"].AssignedTo)

	// 外键悬空：三种占位名
	assert.Equal(t, "Unknown Category", byID["q2"].CategoryName)
	assert.Equal(t, "Unknown User", byID["q2"].SubmitterName)
	assert.Equal(t, "Unassigned", byID["q2"].AssignedTo)
}

func TestStatsFallsBackToCacheWhenWindowFails(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	statsCache := cache.NewStatsCache(rdb, time.Minute)
	require.NoError(t, statsCache.Set(ctx, &Stats{Total: 42, ResolutionRate: 50, AvgResponseTime: "3.0h"}))

	loader := NewQueueLoader(
		failingWindow{repository.NewQueueRepository(db)},
		repository.NewSubmissionRepository(db),
		repository.NewLookupRepository(db),
		statsCache, 0,
	)
	snap, err := loader.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Stats)
	assert.Equal(t, 42, snap.Stats.Total)
	assert.Equal(t, "3.0h", snap.Stats.AvgResponseTime)
}

func TestQueueViewMergesSubmissionFields(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, db.Create(&model.ArticleSubmission{
		ID: "a1", Title: "Field Notes", AuthorName: "carol",
		Status: model.StatusPending, SubmittedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&model.QueueItem{
		ID: "q1", ContentID: "a1", ContentType: model.ContentTypeArticle,
		Status: model.StatusPending, Priority: 4, CreatedAt: now, UpdatedAt: now,
	}).Error)

	loader := NewQueueLoader(
		repository.NewQueueRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewLookupRepository(db),
		nil, 0,
	)
	snap, err := loader.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.QueueView, 1)
	assert.Equal(t, "Field Notes", snap.QueueView[0].Title)
	assert.Equal(t, "carol", snap.QueueView[0].Author)
	require.Len(t, snap.ArticleView, 1)
	assert.Equal(t, model.PriorityArticle, snap.ArticleView[0].Priority)
}
