package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/modqueue/internal/model"
)

type memAuditRepo struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func (r *memAuditRepo) Append(_ context.Context, entry *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func TestAuditWriterDeliversEntries(t *testing.T) {
	repo := &memAuditRepo{}
	w := NewAuditWriter(repo, 16)
	stop := w.Start(1)

	w.Record("approve", "podcast", "p1", "m1", "Looks good")
	w.Record("reject", "comment", "c1", "m1", "spam")

	deadline := time.After(2 * time.Second)
	for repo.count() < 2 {
		select {
		case <-deadline:
			t.Fatalf("audit entries not delivered, got %d", repo.count())
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	require.NoError(t, stop(context.Background()))

	assert.Equal(t, "approve", repo.entries[0].Action)
	assert.Equal(t, "p1", repo.entries[0].TargetID)
}

func TestAuditWriterDropsWhenFullWithoutBlocking(t *testing.T) {
	repo := &memAuditRepo{}
	// 容量 1，不启动 worker：第二条起只能丢
	w := NewAuditWriter(repo, 1)

	done := make(chan struct{})
	go func() {
		w.Record("approve", "podcast", "p1", "m1", "")
		w.Record("approve", "podcast", "p2", "m1", "")
		w.Record("approve", "podcast", "p3", "m1", "")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full queue")
	}
	assert.Equal(t, 1, w.QueueLen())
}
