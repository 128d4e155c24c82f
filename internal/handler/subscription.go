package handler

import (
	"net/http"

	"Vega_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler interface {
	Toggle(c *gin.Context)
	Remove(c *gin.Context)
}

type subscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{subscriptionService: subscriptionService}
}

// POST是切换语义：未订阅则订阅，已订阅则取消
func (h *subscriptionHandler) Toggle(c *gin.Context) {
	result, err := h.subscriptionService.Toggle(viewerFrom(c), c.Param("creator_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// DELETE是明确取消：未订阅返回404
func (h *subscriptionHandler) Remove(c *gin.Context) {
	sub, err := h.subscriptionService.Remove(viewerFrom(c), c.Param("creator_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sub})
}
