package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一 JSON 返回结构
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// Success 200
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: "ok", Data: data})
}

// BadRequest 400 参数或业务校验失败
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: 400, Msg: msg})
}

// Unauthorized 401
func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Code: 401, Msg: msg})
}

// Conflict 409 乐观并发冲突（行已被其他审核员改动）
func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, Response{Code: 409, Msg: msg})
}

// InternalError 500
func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Response{Code: 500, Msg: err.Error()})
}
