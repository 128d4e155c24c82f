package dto

import (
	"time"

	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
)

// AuthorInfo 是挂在视频/评论上的简化作者信息
type AuthorInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// AuthorDetail 是detail接口的作者信息，多出订阅者数和“我是否已订阅”
type AuthorDetail struct {
	AuthorInfo
	SubscriberCount  int64 `json:"subscriber_count"`
	ViewerSubscribed bool  `json:"viewer_subscribed"`
}

type VideoResponse struct {
	ID               string     `json:"id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	CategoryID       *string    `json:"category_id"`
	Visibility       string     `json:"visibility"`
	ProcessingStatus string     `json:"processing_status"`
	PlaybackURL      string     `json:"playback_url"`
	ThumbnailURL     string     `json:"thumbnail_url"`
	Duration         int64      `json:"duration"`
	ViewCount        int64      `json:"view_count"`
	LikeCount        int64      `json:"like_count"`
	DislikeCount     int64      `json:"dislike_count"`
	ViewerReaction   *string    `json:"viewer_reaction"`
	Author           AuthorInfo `json:"author"`
}

// VideoPage 是Feed一页的响应：items + 下一页游标（nil表示翻到底）
type VideoPage struct {
	Items      []VideoResponse `json:"items"`
	NextCursor *string         `json:"next_cursor"`
}

// VideoDetailResponse 是单视频详情，作者带订阅信息
type VideoDetailResponse struct {
	VideoResponse
	Author AuthorDetail `json:"author"`
}

func toAuthorInfo(user model.User) AuthorInfo {
	return AuthorInfo{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
	}
}

// ToVideoResponse 把查询行转成响应，作者信息由调用方批量查好传入
func ToVideoResponse(row *repository.VideoRow, author model.User) VideoResponse {
	resp := VideoResponse{
		ID:               row.ID,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		Title:            row.Title,
		Description:      row.Description,
		CategoryID:       row.CategoryID,
		Visibility:       string(row.Visibility),
		ProcessingStatus: row.ProcessingStatus,
		PlaybackURL:      row.PlaybackURL,
		ThumbnailURL:     row.ThumbnailURL,
		Duration:         row.Duration,
		ViewCount:        row.ViewCount,
		LikeCount:        row.LikeCount,
		DislikeCount:     row.DislikeCount,
		ViewerReaction:   row.ViewerReaction,
	}
	if author.ID != "" {
		resp.Author = toAuthorInfo(author)
	} else {
		// 批量查询没带回作者（理论上不会发生），至少保证ID可用
		resp.Author.ID = row.UserID
	}
	return resp
}

// ToVideoPage 组装一页Feed响应
func ToVideoPage(rows []repository.VideoRow, authors map[string]model.User, nextCursor *string) *VideoPage {
	items := make([]VideoResponse, 0, len(rows))
	for i := range rows {
		items = append(items, ToVideoResponse(&rows[i], authors[rows[i].UserID]))
	}
	return &VideoPage{Items: items, NextCursor: nextCursor}
}

// ToVideoDetail 组装单视频详情
func ToVideoDetail(row *repository.VideoRow, author *repository.UserRow) *VideoDetailResponse {
	resp := &VideoDetailResponse{
		VideoResponse: ToVideoResponse(row, author.User),
	}
	resp.Author = AuthorDetail{
		AuthorInfo:       toAuthorInfo(author.User),
		SubscriberCount:  author.SubscriberCount,
		ViewerSubscribed: row.ViewerSubscribed,
	}
	return resp
}
