package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 所有主实体统一用UUID字符串做主键，方便和外部系统（鉴权、转码回调）交换ID
// UpdatedAt是Feed流的主排序键，GORM每次写入都会自动刷新它
type BaseModel struct {
	ID        string    `gorm:"type:char(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// BeforeCreate 在插入前生成UUID；调用方已指定ID时（比如测试数据）不覆盖
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
