package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/modqueue/internal/model"
	"github.com/d60-Lab/modqueue/internal/service"
	"github.com/d60-Lab/modqueue/pkg/response"
)

// ListQueue 审核队列列表
// @Summary 审核队列（过滤/排序/分页）
// @Tags 审核
// @Param status query string false "过滤档位" Enums(pending, flagged, high_priority, all) default(pending)
// @Param search query string false "搜索词"
// @Param sort_by query string false "排序键" Enums(date, priority, status) default(priority)
// @Param order query string false "方向" Enums(asc, desc) default(desc)
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/moderation/queue [get]
func (h *Handler) ListQueue(c *gin.Context) {
	h.listView(c, service.FilterPending, func(snap *service.Snapshot) []service.ViewItem {
		return snap.QueueView
	})
}

// ListSubmissions 按内容类型列出待审投稿
// @Summary 待审投稿列表
// @Tags 审核
// @Param kind path string true "内容类型" Enums(podcast, comment, article)
// @Success 200 {object} response.Response
// @Router /api/v1/moderation/submissions/{kind} [get]
func (h *Handler) ListSubmissions(c *gin.Context) {
	kind := c.Param("kind")
	if !validKind(kind) {
		response.BadRequest(c, "unknown content kind: "+kind)
		return
	}
	h.listView(c, service.FilterAll, func(snap *service.Snapshot) []service.ViewItem {
		switch kind {
		case model.ContentTypePodcast:
			return snap.PodcastView
		case model.ContentTypeComment:
			return snap.CommentView
		default:
			return snap.ArticleView
		}
	})
}

func (h *Handler) listView(c *gin.Context, defaultStatus string, pick func(*service.Snapshot) []service.ViewItem) {
	var opts service.ViewOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if opts.Status == "" {
		opts.Status = defaultStatus
	}
	if opts.PageSize < 1 {
		opts.PageSize = h.pageSize
	}

	snap, err := h.ws.Current(c.Request.Context())
	if err != nil {
		actionError(c, err)
		return
	}
	items, total, totalPages := service.ApplyView(pick(snap), opts)
	response.Success(c, gin.H{
		"list":        items,
		"total":       total,
		"total_pages": totalPages,
		"loaded_at":   snap.LoadedAt,
	})
}

// Stats 统计窗口聚合
// @Summary 30 天窗口统计
// @Tags 审核
// @Success 200 {object} response.Response{data=service.Stats}
// @Router /api/v1/moderation/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	snap, err := h.ws.Current(c.Request.Context())
	if err != nil {
		actionError(c, err)
		return
	}
	response.Success(c, snap.Stats)
}

// Refresh 手动全量刷新工作集
// @Summary 手动刷新
// @Tags 审核
// @Success 200 {object} response.Response
// @Router /api/v1/moderation/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	snap, err := h.ws.Reload(c.Request.Context())
	if err != nil {
		actionError(c, err)
		return
	}
	response.Success(c, gin.H{"loaded_at": snap.LoadedAt, "queue_size": len(snap.Queue)})
}
