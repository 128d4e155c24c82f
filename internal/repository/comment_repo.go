package repository

import (
	"errors"
	"fmt"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/pagination"

	"gorm.io/gorm"
)

// CommentRow 是评论线程查询的单行结果
type CommentRow struct {
	model.Comment
	LikeCount      int64   `gorm:"column:like_count" json:"like_count"`
	DislikeCount   int64   `gorm:"column:dislike_count" json:"dislike_count"`
	ReplyCount     int64   `gorm:"column:reply_count" json:"reply_count"`
	ViewerReaction *string `gorm:"column:viewer_reaction" json:"viewer_reaction"`
}

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(id string) (*model.Comment, error)

	// 评论线程分页：parentID为nil取视频的一级评论，非nil取该评论下的回复
	FindPage(videoID string, parentID *string, viewer model.Viewer, cur *pagination.Cursor, limit int) ([]CommentRow, error)
	// 视频的一级评论总数，与分页和parentID过滤无关，每一页都原样返回
	CountTopLevel(videoID string) (int64, error)

	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) FindByID(id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 评论不存在", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindPage(videoID string, parentID *string, viewer model.Viewer, cur *pagination.Cursor, limit int) ([]CommentRow, error) {
	viewerExpr, viewerArgs := commentViewerColumns(viewer)
	selectExpr := "comments.*, " + commentAggregateColumns() + ", " + viewerExpr
	order := pagination.Order{SortExpr: "comments.updated_at", IDExpr: "comments.id"}

	q := r.db.Model(&model.Comment{}).
		Select(selectExpr, viewerArgs...).
		Where("comments.video_id = ?", videoID)
	if parentID == nil {
		q = q.Where("comments.parent_id IS NULL")
	} else {
		q = q.Where("comments.parent_id = ?", *parentID)
	}

	var rows []CommentRow
	err := q.Scopes(order.Scope(cur, limit)).Find(&rows).Error
	return rows, err
}

func (r *commentRepository) CountTopLevel(videoID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).
		Where("video_id = ? AND parent_id IS NULL", videoID).
		Count(&count).Error
	return count, err
}
