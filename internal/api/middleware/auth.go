package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/modqueue/pkg/response"
)

const moderatorKey = "moderator_id"

// Auth 校验上游签发的 Bearer JWT，把审核员 ID 放进请求上下文。
// 登录与签发不在本服务职责内，这里只认 HMAC 签名与 sub 声明。
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, prefix) {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		token, err := jwt.Parse(strings.TrimPrefix(h, prefix), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "invalid token")
			return
		}
		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			response.Unauthorized(c, "token has no subject")
			return
		}
		c.Set(moderatorKey, sub)
		c.Next()
	}
}

// ModeratorID 取当前请求的审核员 ID（Auth 之后必有值）
func ModeratorID(c *gin.Context) string {
	return c.GetString(moderatorKey)
}
