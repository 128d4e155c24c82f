package model

// 视频可见性：private只有作者本人可见，public所有人可见
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// 转码状态由外部媒体管线经消费者进程回写，本服务只读这些列
const (
	ProcessingWaiting = "waiting"
	ProcessingRunning = "processing"
	ProcessingReady   = "ready"
	ProcessingFailed  = "failed"
)

type Video struct {
	BaseModel
	UserID      string     `gorm:"type:char(36);not null;index" json:"user_id"` // 作者ID
	CategoryID  *string    `gorm:"type:char(36);index" json:"category_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Visibility  Visibility `gorm:"type:varchar(16);not null;default:'private'" json:"visibility"`

	ProcessingStatus string `gorm:"type:varchar(16);not null;default:'waiting'" json:"processing_status"`
	PlaybackURL      string `json:"playback_url"`
	ThumbnailURL     string `json:"thumbnail_url"`
	Duration         int64  `gorm:"default:0" json:"duration"` // 毫秒

	Author   User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Video) TableName() string {
	return "videos"
}
