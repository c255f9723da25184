package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/modqueue/config"
	"github.com/d60-Lab/modqueue/internal/api/handler"
	"github.com/d60-Lab/modqueue/internal/api/middleware"
)

// NewRouter 组装路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	handler.RegisterValidations()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		sentrygin.New(sentrygin.Options{Repanic: true}),
		otelgin.Middleware(cfg.Telemetry.ServiceName),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimit(100, 200),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1/moderation")
	v1.Use(middleware.Auth(cfg.Auth.JWTSecret))
	{
		v1.GET("/queue", h.ListQueue)
		v1.GET("/stats", h.Stats)
		v1.POST("/refresh", h.Refresh)

		v1.GET("/submissions/:kind", h.ListSubmissions)
		v1.POST("/submissions/:kind", h.Submit)
		v1.POST("/submissions/:kind/:id/approve", h.Approve)
		v1.POST("/submissions/:kind/:id/reject", h.Reject)

		v1.POST("/queue/:id/flag", h.Flag)
		v1.POST("/queue/:id/assign", h.Assign)

		v1.POST("/bulk", h.Bulk)
	}
	return r
}
