package model

// 评论只允许一层嵌套：ParentID为nil是一级评论，非nil必须指向一级评论
// “回复的回复”在写入时直接拒绝，由service层校验
type Comment struct {
	BaseModel
	VideoID  string  `gorm:"type:char(36);not null;index" json:"video_id"`
	UserID   string  `gorm:"type:char(36);not null;index" json:"user_id"`
	ParentID *string `gorm:"type:char(36);index" json:"parent_id"`
	Value    string  `gorm:"type:text;not null" json:"value"`

	User   User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Video  Video    `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	Parent *Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
