package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/modqueue/internal/model"
)

func TestSubmitCreatesSubmissionAndQueueRowTogether(t *testing.T) {
	db := setupTestDB(t)
	ing := NewIngestor(db)
	ctx := context.Background()

	id, err := ing.SubmitPodcast(ctx, PodcastInput{Name: "Cosmic Waves", SubmitterID: "u1"})
	require.NoError(t, err)

	var sub model.PodcastSubmission
	require.NoError(t, db.First(&sub, "id = ?", id).Error)
	assert.Equal(t, model.StatusPending, sub.Status)

	var q model.QueueItem
	require.NoError(t, db.First(&q, "content_id = ?", id).Error)
	assert.Equal(t, model.ContentTypePodcast, q.ContentType)
	assert.Equal(t, model.PriorityPodcast, q.Priority)
	assert.Equal(t, model.StatusPending, q.Status)
}

func TestSubmitPriorityPerKind(t *testing.T) {
	db := setupTestDB(t)
	ing := NewIngestor(db)
	ctx := context.Background()

	cid, err := ing.SubmitComment(ctx, CommentInput{Content: "nice read"})
	require.NoError(t, err)
	aid, err := ing.SubmitArticle(ctx, ArticleInput{Title: "Field Notes"})
	require.NoError(t, err)

	var q model.QueueItem
	require.NoError(t, db.First(&q, "content_id = ?", cid).Error)
	assert.Equal(t, model.PriorityComment, q.Priority)
	q = model.QueueItem{}
	require.NoError(t, db.First(&q, "content_id = ?", aid).Error)
	assert.Equal(t, model.PriorityArticle, q.Priority)
}
