package handler

import (
	"net/http"

	"Vega_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler interface {
	GetComments(c *gin.Context)
	CreateComment(c *gin.Context)
}

type commentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) CommentHandler {
	return &commentHandler{commentService: commentService}
}

type CreateCommentRequest struct {
	Value    string  `json:"value" binding:"required"`
	ParentID *string `json:"parent_id"`
}

// 评论线程分页：?parent_id=取某条一级评论的回复，缺省取一级评论。
// 每页都带视频的一级评论总数
func (h *commentHandler) GetComments(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.commentService.GetMany(viewerFrom(c),
		c.Param("video_id"),
		queryOptional(c, "parent_id"),
		c.Query("cursor"), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page})
}

func (h *commentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	comment, err := h.commentService.Create(viewerFrom(c), c.Param("video_id"), req.ParentID, req.Value)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": comment})
}
