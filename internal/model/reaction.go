package model

import "time"

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// 联合主键保证一个用户对一个视频至多一条反应记录
// 点赞切换为踩时是覆盖这一行，而不是新增第二行
type VideoReaction struct {
	UserID    string       `gorm:"type:char(36);primarykey" json:"user_id"`
	VideoID   string       `gorm:"type:char(36);primarykey;index" json:"video_id"`
	Type      ReactionType `gorm:"type:varchar(16);not null" json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Video Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
}

func (VideoReaction) TableName() string {
	return "video_reactions"
}

type CommentReaction struct {
	UserID    string       `gorm:"type:char(36);primarykey" json:"user_id"`
	CommentID string       `gorm:"type:char(36);primarykey;index" json:"comment_id"`
	Type      ReactionType `gorm:"type:varchar(16);not null" json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Comment Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CommentReaction) TableName() string {
	return "comment_reactions"
}
