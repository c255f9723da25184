package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/modqueue/internal/cache"
	"github.com/d60-Lab/modqueue/internal/model"
	"github.com/d60-Lab/modqueue/internal/repository"
	"github.com/d60-Lab/modqueue/pkg/logger"
)

// 外键无法反查时的占位名
const (
	unknownCategory = "Unknown Category"
	unknownUser     = "Unknown User"
	unassigned      = "Unassigned"
)

// Snapshot 一次加载得到的审核工作集
type Snapshot struct {
	Queue           []*model.QueueItem
	Stats           *Stats
	PendingPodcasts []*model.PodcastSubmission
	PendingComments []*model.CommentSubmission
	PendingArticles []*model.ArticleSubmission

	// 已完成名称反查的展示视图，直接喂给过滤/排序/分页流水线
	QueueView   []ViewItem
	PodcastView []ViewItem
	CommentView []ViewItem
	ArticleView []ViewItem

	LoadedAt time.Time
}

// QueueLoader 并发拉取五个独立结果集并做外键名称反查。
// 各 fetch 互不阻塞，单个失败只记日志、留空集合；五个全挂才算加载失败。
type QueueLoader struct {
	queueRepo   repository.QueueRepository
	subRepo     repository.SubmissionRepository
	lookups     repository.LookupRepository
	statsCache  *cache.StatsCache // 可为 nil
	statsWindow time.Duration
}

func NewQueueLoader(queueRepo repository.QueueRepository, subRepo repository.SubmissionRepository, lookups repository.LookupRepository, statsCache *cache.StatsCache, statsWindow time.Duration) *QueueLoader {
	if statsWindow <= 0 {
		statsWindow = 30 * 24 * time.Hour
	}
	return &QueueLoader{
		queueRepo:   queueRepo,
		subRepo:     subRepo,
		lookups:     lookups,
		statsCache:  statsCache,
		statsWindow: statsWindow,
	}
}

// Load 组装审核工作集
func (l *QueueLoader) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{LoadedAt: time.Now()}

	var (
		wg        sync.WaitGroup
		failed    atomic.Int32
		window    []*model.QueueItem
		windowErr error
	)
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				failed.Add(1)
				logger.Warn("queue fetch failed", zap.String("fetch", name), zap.Error(err))
			}
		}()
	}

	run("queue", func() error {
		rows, err := l.queueRepo.ListOpen(ctx)
		if err != nil {
			return err
		}
		snap.Queue = rows
		return nil
	})
	run("stats_window", func() error {
		rows, err := l.queueRepo.ListSince(ctx, snap.LoadedAt.Add(-l.statsWindow))
		if err != nil {
			windowErr = err
			return err
		}
		window = rows
		return nil
	})
	run("podcasts", func() error {
		rows, err := l.subRepo.ListPendingPodcasts(ctx)
		if err != nil {
			return err
		}
		snap.PendingPodcasts = rows
		return nil
	})
	run("comments", func() error {
		rows, err := l.subRepo.ListPendingComments(ctx)
		if err != nil {
			return err
		}
		snap.PendingComments = rows
		return nil
	})
	run("articles", func() error {
		rows, err := l.subRepo.ListPendingArticles(ctx)
		if err != nil {
			return err
		}
		snap.PendingArticles = rows
		return nil
	})
	wg.Wait()

	if failed.Load() == 5 {
		return nil, errors.New("moderation load failed: all fetches errored")
	}

	snap.Stats = l.deriveStats(ctx, window, windowErr)
	names := l.resolveNames(ctx, snap)
	l.buildViews(snap, names)
	return snap, nil
}

// deriveStats 窗口拉取成功时现算并回填缓存；失败时退回缓存里略旧的数字
func (l *QueueLoader) deriveStats(ctx context.Context, window []*model.QueueItem, windowErr error) *Stats {
	if windowErr == nil {
		stats := DeriveStats(window)
		if l.statsCache != nil {
			if err := l.statsCache.Set(ctx, stats); err != nil {
				logger.Warn("stats cache set failed", zap.Error(err))
			}
		}
		return stats
	}
	if l.statsCache != nil {
		var cached Stats
		ok, err := l.statsCache.Get(ctx, &cached)
		if err != nil {
			logger.Warn("stats cache get failed", zap.Error(err))
		}
		if ok {
			return &cached
		}
	}
	return DeriveStats(nil)
}

type nameMaps struct {
	categories map[string]string
	users      map[string]string
	articles   map[string]string
}

// resolveNames 汇总去重后的外键集合并分三批反查；失败只降级为占位名
func (l *QueueLoader) resolveNames(ctx context.Context, snap *Snapshot) nameMaps {
	catSet := map[string]struct{}{}
	userSet := map[string]struct{}{}
	artSet := map[string]struct{}{}
	addPtr := func(set map[string]struct{}, id *string) {
		if id != nil && *id != "" {
			set[*id] = struct{}{}
		}
	}

	for _, q := range snap.Queue {
		addPtr(catSet, q.CategoryID)
		addPtr(userSet, q.SubmitterID)
		addPtr(userSet, q.AssignedModeratorID)
	}
	for _, p := range snap.PendingPodcasts {
		addPtr(catSet, p.CategoryID)
		addPtr(userSet, p.SubmitterID)
	}
	for _, c := range snap.PendingComments {
		addPtr(userSet, c.SubmitterID)
		addPtr(artSet, c.ArticleID)
	}
	for _, a := range snap.PendingArticles {
		addPtr(catSet, a.CategoryID)
		addPtr(userSet, a.SubmitterID)
	}

	names := nameMaps{
		categories: map[string]string{},
		users:      map[string]string{},
		articles:   map[string]string{},
	}
	if m, err := l.lookups.CategoryNames(ctx, keys(catSet)); err != nil {
		logger.Warn("category lookup failed", zap.Error(err))
	} else {
		names.categories = m
	}
	if m, err := l.lookups.UserNames(ctx, keys(userSet)); err != nil {
		logger.Warn("user lookup failed", zap.Error(err))
	} else {
		names.users = m
	}
	if m, err := l.lookups.ArticleTitles(ctx, keys(artSet)); err != nil {
		logger.Warn("article title lookup failed", zap.Error(err))
	} else {
		names.articles = m
	}
	return names
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func (n nameMaps) category(id *string) string {
	if id != nil {
		if name, ok := n.categories[*id]; ok {
			return name
		}
	}
	return unknownCategory
}

func (n nameMaps) user(id *string) string {
	if id != nil {
		if name, ok := n.users[*id]; ok {
			return name
		}
	}
	return unknownUser
}

func (n nameMaps) moderator(id *string) string {
	if id != nil {
		if name, ok := n.users[*id]; ok {
			return name
		}
	}
	return unassigned
}

func (l *QueueLoader) buildViews(snap *Snapshot, names nameMaps) {
	// 按 content_id 建索引，把投稿的展示字段并进队列视图
	podcasts := make(map[string]*model.PodcastSubmission, len(snap.PendingPodcasts))
	for _, p := range snap.PendingPodcasts {
		podcasts[p.ID] = p
	}
	comments := make(map[string]*model.CommentSubmission, len(snap.PendingComments))
	for _, c := range snap.PendingComments {
		comments[c.ID] = c
	}
	articles := make(map[string]*model.ArticleSubmission, len(snap.PendingArticles))
	for _, a := range snap.PendingArticles {
		articles[a.ID] = a
	}

	snap.QueueView = make([]ViewItem, 0, len(snap.Queue))
	for _, q := range snap.Queue {
		it := ViewItem{
			ID:             q.ID,
			Kind:           q.ContentType,
			Status:         q.Status,
			Priority:       q.Priority,
			AutoFlagged:    q.AutoFlagged,
			FlaggedReasons: q.FlaggedReasons,
			SubmitterName:  names.user(q.SubmitterID),
			CategoryName:   names.category(q.CategoryID),
			AssignedTo:     names.moderator(q.AssignedModeratorID),
			Notes:          q.ModerationNotes,
			CreatedAt:      q.CreatedAt,
			UpdatedAt:      q.UpdatedAt,
		}
		switch q.ContentType {
		case model.ContentTypePodcast:
			if p, ok := podcasts[q.ContentID]; ok {
				it.Name = p.Name
			}
		case model.ContentTypeComment:
			if c, ok := comments[q.ContentID]; ok {
				it.Content = c.Content
				it.Author = c.AuthorName
			}
		case model.ContentTypeArticle:
			if a, ok := articles[q.ContentID]; ok {
				it.Title = a.Title
				it.Author = a.AuthorName
			}
		}
		snap.QueueView = append(snap.QueueView, it)
	}

	snap.PodcastView = make([]ViewItem, 0, len(snap.PendingPodcasts))
	for _, p := range snap.PendingPodcasts {
		snap.PodcastView = append(snap.PodcastView, ViewItem{
			ID:            p.ID,
			Kind:          model.ContentTypePodcast,
			Status:        p.Status,
			Priority:      model.PriorityPodcast,
			Name:          p.Name,
			SubmitterName: names.user(p.SubmitterID),
			CategoryName:  names.category(p.CategoryID),
			SubmittedAt:   &p.SubmittedAt,
			UpdatedAt:     p.UpdatedAt,
		})
	}

	snap.CommentView = make([]ViewItem, 0, len(snap.PendingComments))
	for _, c := range snap.PendingComments {
		title := ""
		if c.ArticleID != nil {
			title = names.articles[*c.ArticleID]
		}
		snap.CommentView = append(snap.CommentView, ViewItem{
			ID:            c.ID,
			Kind:          model.ContentTypeComment,
			Status:        c.Status,
			Priority:      model.PriorityComment,
			Content:       c.Content,
			Author:        c.AuthorName,
			Title:         title,
			SubmitterName: names.user(c.SubmitterID),
			SubmittedAt:   &c.SubmittedAt,
			UpdatedAt:     c.UpdatedAt,
		})
	}

	snap.ArticleView = make([]ViewItem, 0, len(snap.PendingArticles))
	for _, a := range snap.PendingArticles {
		snap.ArticleView = append(snap.ArticleView, ViewItem{
			ID:            a.ID,
			Kind:          model.ContentTypeArticle,
			Status:        a.Status,
			Priority:      model.PriorityArticle,
			Title:         a.Title,
			Content:       a.Content,
			Author:        a.AuthorName,
			SubmitterName: names.user(a.SubmitterID),
			CategoryName:  names.category(a.CategoryID),
			SubmittedAt:   &a.SubmittedAt,
			UpdatedAt:     a.UpdatedAt,
		})
	}
}
