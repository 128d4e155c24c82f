package handler

import (
	"net/http"

	"Vega_Tube/internal/model"
	"Vega_Tube/internal/service"
	"Vega_Tube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	CreateVideo(c *gin.Context)
	UpdateVideo(c *gin.Context)
	DeleteVideo(c *gin.Context)
	RecordView(c *gin.Context)
}

type videoHandler struct {
	videoService service.VideoService
	viewService  service.ViewService
}

func NewVideoHandler(videoService service.VideoService, viewService service.ViewService) VideoHandler {
	return &videoHandler{videoService: videoService, viewService: viewService}
}

type CreateVideoRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	CategoryID  *string `json:"category_id"`
	Visibility  string  `json:"visibility"`
}

type UpdateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id"`
	Visibility  *string `json:"visibility"`
}

// 发布视频：创建后状态waiting，等消费者进程回写转码结果
func (h *videoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	viewer := viewerFrom(c)
	logCtx := logger.Log.WithField("user_id", viewer.UserID)

	video, err := h.videoService.Create(viewer, service.VideoInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Visibility:  model.Visibility(req.Visibility),
	})
	if err != nil {
		logCtx.WithError(err).Warn("发布视频失败")
		handleServiceError(c, err)
		return
	}
	logCtx.WithField("video_id", video.ID).Info("视频发布成功")
	c.JSON(http.StatusCreated, gin.H{"data": video})
}

func (h *videoHandler) UpdateVideo(c *gin.Context) {
	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	input := service.VideoUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if req.Visibility != nil {
		v := model.Visibility(*req.Visibility)
		input.Visibility = &v
	}

	video, err := h.videoService.Update(viewerFrom(c), c.Param("video_id"), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": video})
}

func (h *videoHandler) DeleteVideo(c *gin.Context) {
	if err := h.videoService.Delete(viewerFrom(c), c.Param("video_id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "视频已删除"})
}

// 上报观看：幂等，同一(user, video)只记一次
func (h *videoHandler) RecordView(c *gin.Context) {
	view, err := h.viewService.Record(viewerFrom(c), c.Param("video_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": view})
}
