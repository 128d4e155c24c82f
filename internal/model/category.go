package model

// 视频分类，由seeder预置；删除分类时视频的category_id置空
type Category struct {
	BaseModel
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `json:"description"`
}

func (Category) TableName() string {
	return "categories"
}
