package handler

import (
	"net/http"

	"Vega_Tube/internal/repository"

	"github.com/gin-gonic/gin"
)

// 分类只有全量列表一个读接口，薄到不值得单独开service层
type CategoryHandler interface {
	GetCategories(c *gin.Context)
}

type categoryHandler struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryHandler(categoryRepo repository.CategoryRepository) CategoryHandler {
	return &categoryHandler{categoryRepo: categoryRepo}
}

func (h *categoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryRepo.FindAll()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}
