package handler

import (
	"net/http"

	"Vega_Tube/internal/model"
	"Vega_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type ReactionHandler interface {
	LikeVideo(c *gin.Context)
	DislikeVideo(c *gin.Context)
	LikeComment(c *gin.Context)
	DislikeComment(c *gin.Context)
}

type reactionHandler struct {
	reactionService service.ReactionService
}

func NewReactionHandler(reactionService service.ReactionService) ReactionHandler {
	return &reactionHandler{reactionService: reactionService}
}

// 四个端点都是同一个切换语义：没有→创建，同类型→删除，异类型→翻转
func (h *reactionHandler) toggleVideo(c *gin.Context, typ model.ReactionType) {
	result, err := h.reactionService.ToggleVideoReaction(viewerFrom(c), c.Param("video_id"), typ)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *reactionHandler) toggleComment(c *gin.Context, typ model.ReactionType) {
	result, err := h.reactionService.ToggleCommentReaction(viewerFrom(c), c.Param("comment_id"), typ)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *reactionHandler) LikeVideo(c *gin.Context)    { h.toggleVideo(c, model.ReactionLike) }
func (h *reactionHandler) DislikeVideo(c *gin.Context) { h.toggleVideo(c, model.ReactionDislike) }

func (h *reactionHandler) LikeComment(c *gin.Context)    { h.toggleComment(c, model.ReactionLike) }
func (h *reactionHandler) DislikeComment(c *gin.Context) { h.toggleComment(c, model.ReactionDislike) }
