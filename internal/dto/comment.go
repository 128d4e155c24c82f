package dto

import (
	"time"

	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
)

type CommentResponse struct {
	ID             string     `json:"id"`
	VideoID        string     `json:"video_id"`
	ParentID       *string    `json:"parent_id"`
	Value          string     `json:"value"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LikeCount      int64      `json:"like_count"`
	DislikeCount   int64      `json:"dislike_count"`
	ReplyCount     int64      `json:"reply_count"`
	ViewerReaction *string    `json:"viewer_reaction"`
	Author         AuthorInfo `json:"author"`
}

// CommentPage 是评论线程一页的响应。
// TotalCount是视频一级评论总数，与本页取的是一级评论还是回复无关，每页都相同
type CommentPage struct {
	Items      []CommentResponse `json:"items"`
	NextCursor *string           `json:"next_cursor"`
	TotalCount int64             `json:"total_count"`
}

func ToCommentResponse(row *repository.CommentRow, author model.User) CommentResponse {
	resp := CommentResponse{
		ID:             row.ID,
		VideoID:        row.VideoID,
		ParentID:       row.ParentID,
		Value:          row.Value,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		LikeCount:      row.LikeCount,
		DislikeCount:   row.DislikeCount,
		ReplyCount:     row.ReplyCount,
		ViewerReaction: row.ViewerReaction,
	}
	if author.ID != "" {
		resp.Author = toAuthorInfo(author)
	} else {
		resp.Author.ID = row.UserID
	}
	return resp
}

func ToCommentPage(rows []repository.CommentRow, authors map[string]model.User, nextCursor *string, totalCount int64) *CommentPage {
	items := make([]CommentResponse, 0, len(rows))
	for i := range rows {
		items = append(items, ToCommentResponse(&rows[i], authors[rows[i].UserID]))
	}
	return &CommentPage{Items: items, NextCursor: nextCursor, TotalCount: totalCount}
}
