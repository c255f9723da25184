package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/modqueue/pkg/logger"
)

// Refresher 按固定间隔整体刷新工作集。
// Start 返回停止函数；停止后 ticker 即被回收，不会有定时器活过 teardown。
type Refresher struct {
	ws       *Workspace
	interval time.Duration
}

func NewRefresher(ws *Workspace, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Refresher{ws: ws, interval: interval}
}

func (r *Refresher) Start() func(context.Context) error {
	stop := make(chan struct{})
	go r.loop(stop)
	return func(ctx context.Context) error { close(stop); return nil }
}

func (r *Refresher) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			if _, err := r.ws.Reload(ctx); err != nil {
				logger.Warn("auto refresh failed", zap.Error(err))
			}
			cancel()
		}
	}
}
