package model

import "time"

// 观看记录：一个用户对一个视频只记一次，重复上报是幂等的
type VideoView struct {
	UserID    string    `gorm:"type:char(36);primarykey" json:"user_id"`
	VideoID   string    `gorm:"type:char(36);primarykey;index" json:"video_id"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Video Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
}

func (VideoView) TableName() string {
	return "video_views"
}
