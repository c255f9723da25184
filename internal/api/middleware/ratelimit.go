package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/modqueue/pkg/response"
)

// RateLimit 全局令牌桶限流
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Response{
				Code: http.StatusTooManyRequests,
				Msg:  "too many requests",
			})
			return
		}
		c.Next()
	}
}
