package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/middleware"
	"Vega_Tube/internal/model"
	"Vega_Tube/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 标准API错误响应结构
type ErrorResponse struct {
	Error string `json:"error"`
}

func sendErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// handleServiceError 把service层的哨兵错误翻译成HTTP状态码。
// 4xx把错误文本原样给调用方，5xx只给通用文案、细节进日志
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrBadRequest):
		sendErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		sendErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		sendErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		sendErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		logger.Log.WithError(err).WithField("path", c.FullPath()).Error("请求处理失败")
		sendErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
	}
}

// viewerFrom 从Context取观看者身份，中间件没放就是匿名
func viewerFrom(c *gin.Context) model.Viewer {
	if userID, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := userID.(string); ok && id != "" {
			return model.Identified(id)
		}
	}
	return model.Anonymous()
}

// queryLimit 解析limit查询参数；缺省返回0由service层填默认值
func queryLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("limit必须是整数")
	}
	return limit, nil
}

// queryOptional 取可选查询参数，空串视为未提供
func queryOptional(c *gin.Context, key string) *string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	return &raw
}
