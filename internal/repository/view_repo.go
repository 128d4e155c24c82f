package repository

import (
	"Vega_Tube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ViewRepository interface {
	// 幂等创建：同一(user, video)重复上报返回已有记录，绝不产生第二行
	CreateIfAbsent(userID, videoID string) (*model.VideoView, error)
}

type viewRepository struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) ViewRepository {
	return &viewRepository{db: db}
}

func (r *viewRepository) CreateIfAbsent(userID, videoID string) (*model.VideoView, error) {
	view := model.VideoView{UserID: userID, VideoID: videoID}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoNothing: true,
	}).Create(&view).Error; err != nil {
		return nil, err
	}
	// 撞联合主键时Create不会回填原行的创建时间，统一回读
	var row model.VideoView
	if err := r.db.First(&row, "user_id = ? AND video_id = ?", userID, videoID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
