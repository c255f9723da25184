package handler

import (
	"errors"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/modqueue/internal/model"
	"github.com/d60-Lab/modqueue/internal/repository"
	"github.com/d60-Lab/modqueue/internal/service"
	"github.com/d60-Lab/modqueue/pkg/response"
)

// Handler 审核相关 HTTP 入口
type Handler struct {
	ws         *service.Workspace
	dispatcher *service.ActionDispatcher
	ingestor   *service.Ingestor
	pageSize   int
}

func New(ws *service.Workspace, dispatcher *service.ActionDispatcher, ingestor *service.Ingestor, defaultPageSize int) *Handler {
	if defaultPageSize < 1 {
		defaultPageSize = 10
	}
	return &Handler{ws: ws, dispatcher: dispatcher, ingestor: ingestor, pageSize: defaultPageSize}
}

// RegisterValidations 向 gin 的 validator 注册自定义校验
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("contentkind", func(fl validator.FieldLevel) bool {
			return validKind(fl.Field().String())
		})
	}
}

func validKind(kind string) bool {
	switch kind {
	case model.ContentTypePodcast, model.ContentTypeComment, model.ContentTypeArticle:
		return true
	}
	return false
}

// actionError 统一错误映射：校验类 400、并发冲突 409、其余 500 并上报 Sentry
func actionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrNoItemsSelected),
		errors.Is(err, service.ErrUnknownAction):
		response.BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrStaleRow):
		response.Conflict(c, err.Error())
	default:
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		response.InternalError(c, err)
	}
}

func seenAt(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
