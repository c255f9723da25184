package service

import (
	"context"
	"sync/atomic"
)

// Workspace 持有最近一次成功加载的快照。
// 队列集合只经由这里读；写路径一律走 Reload 整体换新，不做局部修补。
type Workspace struct {
	loader *QueueLoader
	cur    atomic.Pointer[Snapshot]
}

func NewWorkspace(loader *QueueLoader) *Workspace {
	return &Workspace{loader: loader}
}

// Reload 全量重新加载并原子替换快照
func (w *Workspace) Reload(ctx context.Context) (*Snapshot, error) {
	snap, err := w.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	w.cur.Store(snap)
	return snap, nil
}

// Current 返回当前快照；尚未加载过时先做一次 Reload
func (w *Workspace) Current(ctx context.Context) (*Snapshot, error) {
	if snap := w.cur.Load(); snap != nil {
		return snap, nil
	}
	return w.Reload(ctx)
}
