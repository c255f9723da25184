package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/modqueue/internal/api/middleware"
	"github.com/d60-Lab/modqueue/pkg/response"
)

type reviewRequest struct {
	Comment string `json:"comment"`
	// 客户端读到该行时的 updated_at，带上即启用乐观并发校验
	SeenUpdatedAt *time.Time `json:"seen_updated_at"`
}

type flagRequest struct {
	Reason        string     `json:"reason"`
	SeenUpdatedAt *time.Time `json:"seen_updated_at"`
}

type assignRequest struct {
	// 空串表示取消指派
	ModeratorID   string     `json:"moderator_id"`
	SeenUpdatedAt *time.Time `json:"seen_updated_at"`
}

type bulkRequest struct {
	Action  string   `json:"action" binding:"required,oneof=approve reject flag"`
	Kind    string   `json:"kind" binding:"required,contentkind"`
	IDs     []string `json:"ids"`
	Comment string   `json:"comment"`
}

// Approve 通过单条投稿
// @Summary 通过投稿（文章直接发布）
// @Tags 审核
// @Param kind path string true "内容类型" Enums(podcast, comment, article)
// @Param id path string true "投稿 ID"
// @Param request body reviewRequest false "审核意见"
// @Success 200 {object} response.Response
// @Router /api/v1/moderation/submissions/{kind}/{id}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	kind := c.Param("kind")
	if !validKind(kind) {
		response.BadRequest(c, "unknown content kind: "+kind)
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.dispatcher.Approve(c.Request.Context(), middleware.ModeratorID(c), kind, c.Param("id"), req.Comment, seenAt(req.SeenUpdatedAt))
	if err != nil {
		actionError(c, err)
		return
	}
	response.Success(c, nil)
}

// Reject 驳回单条投稿，必须带理由
// @Summary 驳回投稿
// @Tags 审核
// @Param kind path string true "内容类型" Enums(podcast, comment, article)
// @Param id path string true "投稿 ID"
// @Param request body reviewRequest true "驳回理由"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/moderation/submissions/{kind}/{id}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	kind := c.Param("kind")
	if !validKind(kind) {
		response.BadRequest(c, "unknown content kind: "+kind)
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.dispatcher.Reject(c.Request.Context(), middleware.ModeratorID(c), kind, c.Param("id"), req.Comment, seenAt(req.SeenUpdatedAt))
	if err != nil {
		actionError(c, err)
		return
	}
	response.Success(c, nil)
}

// Flag 标记队列行（priority 强制 5）
// @Summary 标记队列行
// @Tags 审核
// @Param id path string true "队列行 ID"
// @Param request body flagRequest false "标记原因"
// @Success 200 {object} response.Response
// @Router /api/v1/moderation/queue/{id}/flag [post]
func (h *Handler) Flag(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.dispatcher.Flag(c.Request.Context(), middleware.ModeratorID(c), c.Param("id"), req.Reason, seenAt(req.SeenUpdatedAt))
	if err != nil {
		actionError(c, err)
		return
	}
	response.Success(c, nil)
}

// Assign 指派/取消指派审核员
// @Summary 指派审核员
// @Tags 审核
// @Param id path string true "队列行 ID"
// @Param request body assignRequest true "审核员 ID，空串取消指派"
// @Success 200 {object} response.Response
// @Router /api/v1/moderation/queue/{id}/assign [post]
func (h *Handler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.dispatcher.Assign(c.Request.Context(), middleware.ModeratorID(c), c.Param("id"), req.ModeratorID, seenAt(req.SeenUpdatedAt))
	if err != nil {
		actionError(c, err)
		return
	}
	response.Success(c, nil)
}

// Bulk 批量审核，逐条顺序执行，失败即停
// @Summary 批量审核
// @Tags 审核
// @Param request body bulkRequest true "批量动作"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/moderation/bulk [post]
func (h *Handler) Bulk(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	processed, err := h.dispatcher.Bulk(c.Request.Context(), middleware.ModeratorID(c), req.Action, req.Kind, req.IDs, req.Comment)
	if err != nil {
		// 中途失败也要让客户端知道已处理到第几条
		c.Header("X-Processed-Count", strconv.Itoa(processed))
		actionError(c, err)
		return
	}
	response.Success(c, gin.H{"processed": processed})
}
