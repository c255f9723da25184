package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/modqueue/internal/model"
	"github.com/d60-Lab/modqueue/internal/service"
	"github.com/d60-Lab/modqueue/pkg/response"
)

type podcastSubmitRequest struct {
	Name        string `json:"name" binding:"required"`
	FeedURL     string `json:"feed_url" binding:"omitempty,url"`
	Description string `json:"description"`
	SubmitterID string `json:"submitter_id"`
	CategoryID  string `json:"category_id"`
}

type commentSubmitRequest struct {
	Content     string `json:"content" binding:"required"`
	AuthorName  string `json:"author_name"`
	ArticleID   string `json:"article_id"`
	SubmitterID string `json:"submitter_id"`
}

type articleSubmitRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	AuthorName  string `json:"author_name"`
	SubmitterID string `json:"submitter_id"`
	CategoryID  string `json:"category_id"`
}

// Submit 投稿入队（投稿行 + 队列行同一事务落地）
// @Summary 投稿入队
// @Tags 投稿
// @Param kind path string true "内容类型" Enums(podcast, comment, article)
// @Success 200 {object} response.Response
// @Router /api/v1/moderation/submissions/{kind} [post]
func (h *Handler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		id  string
		err error
	)
	switch c.Param("kind") {
	case model.ContentTypePodcast:
		var req podcastSubmitRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			response.BadRequest(c, bindErr.Error())
			return
		}
		id, err = h.ingestor.SubmitPodcast(ctx, service.PodcastInput{
			Name:        req.Name,
			FeedURL:     req.FeedURL,
			Description: req.Description,
			SubmitterID: req.SubmitterID,
			CategoryID:  req.CategoryID,
		})
	case model.ContentTypeComment:
		var req commentSubmitRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			response.BadRequest(c, bindErr.Error())
			return
		}
		id, err = h.ingestor.SubmitComment(ctx, service.CommentInput{
			Content:     req.Content,
			AuthorName:  req.AuthorName,
			ArticleID:   req.ArticleID,
			SubmitterID: req.SubmitterID,
		})
	case model.ContentTypeArticle:
		var req articleSubmitRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			response.BadRequest(c, bindErr.Error())
			return
		}
		id, err = h.ingestor.SubmitArticle(ctx, service.ArticleInput{
			Title:       req.Title,
			Content:     req.Content,
			AuthorName:  req.AuthorName,
			SubmitterID: req.SubmitterID,
			CategoryID:  req.CategoryID,
		})
	default:
		response.BadRequest(c, "unknown content kind: "+c.Param("kind"))
		return
	}
	if err != nil {
		actionError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}
