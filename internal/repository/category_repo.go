package repository

import (
	"errors"
	"fmt"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindByID(id string) (*model.Category, error)
	FindAll() ([]model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindByID(id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 分类不存在", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &category, nil
}

// 分类数量很小，全量返回
func (r *categoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
