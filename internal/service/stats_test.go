package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/d60-Lab/modqueue/internal/model"
)

func TestDeriveStatsNoResolvedRows(t *testing.T) {
	rows := []*model.QueueItem{
		{ID: "a", Status: model.StatusPending, Priority: 2},
		{ID: "b", Status: model.StatusPending, Priority: 4},
	}
	s := DeriveStats(rows)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, 0, s.ResolutionRate)
	assert.Equal(t, "N/A", s.AvgResponseTime)
	assert.Equal(t, 1, s.HighPriority)
}

func TestDeriveStatsEmptyWindow(t *testing.T) {
	s := DeriveStats(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.ResolutionRate)
	assert.Equal(t, "N/A", s.AvgResponseTime)
}

func TestDeriveStatsResolutionAndResponseTime(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := []*model.QueueItem{
		{ID: "a", Status: model.StatusApproved, Priority: 3, CreatedAt: base, UpdatedAt: base.Add(2 * time.Hour)},
		{ID: "b", Status: model.StatusRejected, Priority: 5, CreatedAt: base, UpdatedAt: base.Add(3 * time.Hour)},
		{ID: "c", Status: model.StatusPending, Priority: 1, CreatedAt: base},
	}
	s := DeriveStats(rows)
	assert.Equal(t, 1, s.Approved)
	assert.Equal(t, 1, s.Rejected)
	assert.Equal(t, 1, s.Pending)
	// round(2/3*100) = 67
	assert.Equal(t, 67, s.ResolutionRate)
	// (2h+3h)/2 = 2.5h
	assert.Equal(t, "2.5h", s.AvgResponseTime)
}

func TestDeriveStatsPublishedCountsAsApproved(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	rows := []*model.QueueItem{
		{ID: "a", Status: model.StatusPublished, CreatedAt: base, UpdatedAt: base.Add(time.Hour)},
	}
	s := DeriveStats(rows)
	assert.Equal(t, 1, s.Approved)
	assert.Equal(t, 100, s.ResolutionRate)
	assert.Equal(t, "1.0h", s.AvgResponseTime)
}
