package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// UserRow 是带订阅者数的作者行，detail接口用
type UserRow struct {
	model.User
	SubscriberCount int64 `gorm:"column:subscriber_count" json:"subscriber_count"`
}

type UserRepository interface {
	Create(user *model.User) error
	FindByUsername(username string) (*model.User, error)
	FindByID(id string) (*model.User, error)
	// 按一批ID取用户，用于给Feed页挂作者信息；走Redis行缓存
	FindByIDs(ids []string) (map[string]model.User, error)
	// 带订阅者数的作者查询
	FindWithStats(id string) (*UserRow, error)
}

type userRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// rdb可以传nil（比如消费者进程、事务内），此时跳过缓存直查库
func NewUserRepository(db *gorm.DB, rdb *redis.Client) UserRepository {
	return &userRepository{db: db, rdb: rdb}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 用户不存在", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 用户不存在", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) keyUserInfo(id string) string {
	return "user:info:" + id
}

// 只缓存用户这种与观看者无关、变化极少的行；聚合计数永远现算，不进缓存
func (r *userRepository) getUserCache(id string) (*model.User, bool) {
	if r.rdb == nil {
		return nil, false
	}
	raw, err := r.rdb.Get(context.Background(), r.keyUserInfo(id)).Result()
	if err != nil {
		return nil, false
	}
	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (r *userRepository) setUserCache(user *model.User) {
	if r.rdb == nil {
		return
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	// 过期时间加随机量，避免同一页作者集中过期
	expiration := 10*time.Minute + time.Duration(rand.Intn(60))*time.Second
	_ = r.rdb.Set(context.Background(), r.keyUserInfo(user.ID), raw, expiration).Err()
}

func (r *userRepository) FindByIDs(ids []string) (map[string]model.User, error) {
	result := make(map[string]model.User, len(ids))

	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := result[id]; ok {
			continue
		}
		if user, ok := r.getUserCache(id); ok {
			result[id] = *user
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return result, nil
	}

	var users []model.User
	if err := r.db.Where("id IN (?)", missing).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		result[users[i].ID] = users[i]
		r.setUserCache(&users[i])
	}
	return result, nil
}

func (r *userRepository) FindWithStats(id string) (*UserRow, error) {
	var row UserRow
	err := r.db.Model(&model.User{}).
		Select("users.*, " + userSubscriberCountExpr).
		Where("users.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 用户不存在", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &row, nil
}
