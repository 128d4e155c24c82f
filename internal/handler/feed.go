package handler

import (
	"net/http"

	"Vega_Tube/internal/service"
	"Vega_Tube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type FeedHandler interface {
	GetFeed(c *gin.Context)
	GetTrending(c *gin.Context)
	GetSubscribed(c *gin.Context)
	GetVideoByID(c *gin.Context)
}

type feedHandler struct {
	feedService service.FeedService
}

func NewFeedHandler(feedService service.FeedService) FeedHandler {
	return &feedHandler{feedService: feedService}
}

// 全局Feed流：?cursor=&limit=&category_id=&owner_id=
func (h *feedHandler) GetFeed(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	viewer := viewerFrom(c)

	page, err := h.feedService.GetMany(viewer,
		queryOptional(c, "category_id"),
		queryOptional(c, "owner_id"),
		c.Query("cursor"), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	logger.Log.WithField("count", len(page.Items)).Info("Feed流请求完成")
	c.JSON(http.StatusOK, gin.H{"data": page})
}

// 热门流：按观看数倒序
func (h *feedHandler) GetTrending(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.feedService.GetTrending(viewerFrom(c), c.Query("cursor"), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page})
}

// 订阅流：必须带有效令牌（路由上挂了AuthMiddleware）
func (h *feedHandler) GetSubscribed(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.feedService.GetSubscribed(viewerFrom(c), c.Query("cursor"), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page})
}

func (h *feedHandler) GetVideoByID(c *gin.Context) {
	detail, err := h.feedService.GetOne(viewerFrom(c), c.Param("video_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": detail})
}
