package model

import "time"

// 订阅关系：viewer关注creator，构成有向关注图
// 不允许自己订阅自己（viewer_id != creator_id），由service层校验
type Subscription struct {
	ViewerID  string    `gorm:"type:char(36);primarykey" json:"viewer_id"`
	CreatorID string    `gorm:"type:char(36);primarykey;index" json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Viewer  User `gorm:"foreignKey:ViewerID;constraint:OnDelete:CASCADE" json:"-"`
	Creator User `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
