package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/modqueue/internal/model"
	"github.com/d60-Lab/modqueue/internal/repository"
	"github.com/d60-Lab/modqueue/pkg/logger"
)

type auditJob struct {
	entry model.AuditLog
}

// AuditWriter 审计日志的异步旁路写入器。
// 尽力而为：队列满了直接丢并打日志，绝不阻塞也绝不回滚主操作。
type AuditWriter struct {
	repo repository.AuditRepository
	ch   chan auditJob
}

func NewAuditWriter(repo repository.AuditRepository, queueSize int) *AuditWriter {
	if queueSize <= 0 {
		queueSize = 10000
	}
	return &AuditWriter{repo: repo, ch: make(chan auditJob, queueSize)}
}

// Start 启动若干写入 worker；返回停止函数，停止时等队列自然排空一小段时间。
func (w *AuditWriter) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case job := <-w.ch:
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					if err := w.repo.Append(ctx, &job.entry); err != nil {
						logger.Warn("audit append failed",
							zap.String("action", job.entry.Action),
							zap.String("target", job.entry.TargetID),
							zap.Error(err))
					}
					cancel()
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		timeout := time.After(2 * time.Second)
		for {
			select {
			case <-timeout:
				return nil
			default:
				if len(w.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

// Record 投递一条审计记录，非阻塞
func (w *AuditWriter) Record(action, targetType, targetID, actorID, detail string) {
	job := auditJob{
		entry: model.AuditLog{
			Action:     action,
			TargetType: targetType,
			TargetID:   targetID,
			ActorID:    actorID,
			Detail:     detail,
		},
	}
	select {
	case w.ch <- job:
	default:
		logger.Warn("audit queue full, drop entry",
			zap.String("action", action), zap.String("target", targetID))
	}
}

// QueueLen 当前积压长度（采样值）
func (w *AuditWriter) QueueLen() int { return len(w.ch) }
