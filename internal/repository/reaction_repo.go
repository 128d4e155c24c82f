package repository

import (
	"time"

	"Vega_Tube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 反应切换的状态机，每个(user, target)对：none/like/dislike
//   like:    none→like  like→none(删行)  dislike→like(改type)
//   dislike: 对称
// 实现是“先删同类型，删不到就upsert”，两步包在一个事务里；
// 联合主键兜底保证并发下也绝不会出现第二行
type ReactionRepository interface {
	// 返回切换后的行；removed=true表示本次是取消，返回的是被删掉的行
	ToggleVideoReaction(userID, videoID string, typ model.ReactionType) (*model.VideoReaction, bool, error)
	ToggleCommentReaction(userID, commentID string, typ model.ReactionType) (*model.CommentReaction, bool, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) ToggleVideoReaction(userID, videoID string, typ model.ReactionType) (*model.VideoReaction, bool, error) {
	var (
		row     model.VideoReaction
		removed bool
	)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 再点一次同一个按钮 = 取消。GORM对复合主键的Delete翻译不可靠，直接写SQL
		res := tx.Exec("DELETE FROM video_reactions WHERE user_id = ? AND video_id = ? AND type = ?",
			userID, videoID, typ)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			removed = true
			row = model.VideoReaction{UserID: userID, VideoID: videoID, Type: typ}
			return nil
		}
		// 没删到：要么没反应过（插入），要么是异类型（冲突时覆盖type）
		insert := model.VideoReaction{UserID: userID, VideoID: videoID, Type: typ}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"type":       typ,
				"updated_at": time.Now(),
			}),
		}).Create(&insert).Error; err != nil {
			return err
		}
		// upsert走更新分支时insert里的时间戳不准，回读最终行
		return tx.First(&row, "user_id = ? AND video_id = ?", userID, videoID).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &row, removed, nil
}

func (r *reactionRepository) ToggleCommentReaction(userID, commentID string, typ model.ReactionType) (*model.CommentReaction, bool, error) {
	var (
		row     model.CommentReaction
		removed bool
	)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("DELETE FROM comment_reactions WHERE user_id = ? AND comment_id = ? AND type = ?",
			userID, commentID, typ)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			removed = true
			row = model.CommentReaction{UserID: userID, CommentID: commentID, Type: typ}
			return nil
		}
		insert := model.CommentReaction{UserID: userID, CommentID: commentID, Type: typ}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "comment_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"type":       typ,
				"updated_at": time.Now(),
			}),
		}).Create(&insert).Error; err != nil {
			return err
		}
		return tx.First(&row, "user_id = ? AND comment_id = ?", userID, commentID).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &row, removed, nil
}
