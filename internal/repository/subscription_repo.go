package repository

import (
	"errors"
	"fmt"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	// 已订阅则取消并返回被删的行(removed=true)，未订阅则创建
	Toggle(viewerID, creatorID string) (*model.Subscription, bool, error)
	// 删除订阅边；不存在按NotFound处理，因为调用方的意图没有被满足
	Delete(viewerID, creatorID string) (*model.Subscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Toggle(viewerID, creatorID string) (*model.Subscription, bool, error) {
	var (
		row     model.Subscription
		removed bool
	)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// FOR UPDATE锁住现有边，避免并发双击下删、插交错
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "viewer_id = ? AND creator_id = ?", viewerID, creatorID).Error
		switch {
		case err == nil:
			removed = true
			return tx.Exec("DELETE FROM subscriptions WHERE viewer_id = ? AND creator_id = ?",
				viewerID, creatorID).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = model.Subscription{ViewerID: viewerID, CreatorID: creatorID}
			// 并发插入撞联合主键时什么都不做，保持恰好一条边
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "viewer_id"}, {Name: "creator_id"}},
				DoNothing: true,
			}).Create(&row).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}
	return &row, removed, nil
}

func (r *subscriptionRepository) Delete(viewerID, creatorID string) (*model.Subscription, error) {
	var row model.Subscription
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "viewer_id = ? AND creator_id = ?", viewerID, creatorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 未订阅该创作者", apperr.ErrNotFound)
			}
			return err
		}
		return tx.Exec("DELETE FROM subscriptions WHERE viewer_id = ? AND creator_id = ?",
			viewerID, creatorID).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}
