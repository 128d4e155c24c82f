package repository

import (
	"errors"
	"fmt"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/pagination"

	"gorm.io/gorm"
)

// VideoRow 是Feed查询的单行结果：视频本体 + 现算的聚合列 + 观看者个性化列
type VideoRow struct {
	model.Video
	ViewCount        int64   `gorm:"column:view_count" json:"view_count"`
	LikeCount        int64   `gorm:"column:like_count" json:"like_count"`
	DislikeCount     int64   `gorm:"column:dislike_count" json:"dislike_count"`
	ViewerReaction   *string `gorm:"column:viewer_reaction" json:"viewer_reaction"`
	ViewerSubscribed bool    `gorm:"column:viewer_subscribed" json:"viewer_subscribed"`
}

// FeedFilter 是全局流的可选过滤条件
type FeedFilter struct {
	CategoryID *string
	OwnerID    *string
}

type VideoRepository interface {
	Create(video *model.Video) error
	Save(video *model.Video) error
	Delete(id string) error
	FindByID(id string) (*model.Video, error)
	UpdateProcessing(id, status, playbackURL, thumbnailURL string, duration int64) error

	// Feed查询，全部按(主排序键, id)倒序键集分页，返回最多limit+1行
	FindFeedPage(filter FeedFilter, viewer model.Viewer, cur *pagination.Cursor, limit int) ([]VideoRow, error)
	FindTrendingPage(viewer model.Viewer, cur *pagination.Cursor, limit int) ([]VideoRow, error)
	FindSubscribedPage(viewerID string, cur *pagination.Cursor, limit int) ([]VideoRow, error)
	// 单视频详情，不做可见性过滤（所有权判断在service层）
	FindOneWithStats(id string, viewer model.Viewer) (*VideoRow, error)

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{db: tx}
}

func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// Save 整行保存，UpdatedAt随之刷新（这正是Feed排序依赖的行为）
func (r *videoRepository) Save(video *model.Video) error {
	return r.db.Save(video).Error
}

func (r *videoRepository) Delete(id string) error {
	// 反应/观看/评论由外键级联清理
	return r.db.Delete(&model.Video{}, "id = ?", id).Error
}

func (r *videoRepository) FindByID(id string) (*model.Video, error) {
	var video model.Video
	if err := r.db.First(&video, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 视频不存在", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &video, nil
}

// UpdateProcessing 由消费者进程回写转码结果；Updates会刷新updated_at，
// 已翻过的视频可能因此在后续页面重新出现，属键集分页的既定取舍
func (r *videoRepository) UpdateProcessing(id, status, playbackURL, thumbnailURL string, duration int64) error {
	values := map[string]interface{}{"processing_status": status}
	if playbackURL != "" {
		values["playback_url"] = playbackURL
	}
	if thumbnailURL != "" {
		values["thumbnail_url"] = thumbnailURL
	}
	if duration > 0 {
		values["duration"] = duration
	}
	res := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: 视频不存在", apperr.ErrNotFound)
	}
	return nil
}

// baseFeedQuery 拼出Feed的SELECT部分：视频全列 + 聚合列 + 个性化列
func (r *videoRepository) baseFeedQuery(viewer model.Viewer) *gorm.DB {
	viewerExpr, viewerArgs := videoViewerColumns(viewer)
	selectExpr := "videos.*, " + videoAggregateColumns() + ", " + viewerExpr
	return r.db.Model(&model.Video{}).Select(selectExpr, viewerArgs...)
}

// 全局公开流：visibility=public，可按分类/作者过滤，按(updated_at, id)倒序
func (r *videoRepository) FindFeedPage(filter FeedFilter, viewer model.Viewer, cur *pagination.Cursor, limit int) ([]VideoRow, error) {
	order := pagination.Order{SortExpr: "videos.updated_at", IDExpr: "videos.id"}

	q := r.baseFeedQuery(viewer).
		Where("videos.visibility = ?", model.VisibilityPublic)
	if filter.CategoryID != nil {
		q = q.Where("videos.category_id = ?", *filter.CategoryID)
	}
	if filter.OwnerID != nil {
		q = q.Where("videos.user_id = ?", *filter.OwnerID)
	}

	var rows []VideoRow
	err := q.Scopes(order.Scope(cur, limit)).Find(&rows).Error
	return rows, err
}

// 热门流：排序键和游标键都是观看数子查询，id决胜
func (r *videoRepository) FindTrendingPage(viewer model.Viewer, cur *pagination.Cursor, limit int) ([]VideoRow, error) {
	order := pagination.Order{SortExpr: videoViewCountExpr, IDExpr: "videos.id"}

	var rows []VideoRow
	err := r.baseFeedQuery(viewer).
		Where("videos.visibility = ?", model.VisibilityPublic).
		Scopes(order.Scope(cur, limit)).
		Find(&rows).Error
	return rows, err
}

// 订阅流：只看观看者关注的创作者发布的公开视频
func (r *videoRepository) FindSubscribedPage(viewerID string, cur *pagination.Cursor, limit int) ([]VideoRow, error) {
	order := pagination.Order{SortExpr: "videos.updated_at", IDExpr: "videos.id"}

	var rows []VideoRow
	err := r.baseFeedQuery(model.Identified(viewerID)).
		Joins("JOIN subscriptions ON subscriptions.creator_id = videos.user_id AND subscriptions.viewer_id = ?", viewerID).
		Where("videos.visibility = ?", model.VisibilityPublic).
		Scopes(order.Scope(cur, limit)).
		Find(&rows).Error
	return rows, err
}

func (r *videoRepository) FindOneWithStats(id string, viewer model.Viewer) (*VideoRow, error) {
	var row VideoRow
	err := r.baseFeedQuery(viewer).
		Where("videos.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 视频不存在", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &row, nil
}
