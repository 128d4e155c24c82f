package model

type User struct {
	BaseModel        // 包括 ID, CreatedAt, UpdatedAt
	Username  string `gorm:"unique;not null" json:"username"`
	Password  string `gorm:"not null" json:"-"`
	AvatarURL string `json:"avatar_url"`
}

func (User) TableName() string {
	return "users"
}
