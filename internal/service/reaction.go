package service

import (
	"fmt"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"

	"github.com/sirupsen/logrus"
)

// ReactionResult 统一的切换结果：Removed=true时Reaction是被删掉的那一行
type ReactionResult[T any] struct {
	Reaction *T   `json:"reaction"`
	Removed  bool `json:"removed"`
}

type ReactionService interface {
	ToggleVideoReaction(viewer model.Viewer, videoID string, typ model.ReactionType) (*ReactionResult[model.VideoReaction], error)
	ToggleCommentReaction(viewer model.Viewer, commentID string, typ model.ReactionType) (*ReactionResult[model.CommentReaction], error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	videoRepo    repository.VideoRepository
	commentRepo  repository.CommentRepository
	log          *logrus.Logger
}

func NewReactionService(reactionRepo repository.ReactionRepository, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, log *logrus.Logger) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		videoRepo:    videoRepo,
		commentRepo:  commentRepo,
		log:          log,
	}
}

func (s *reactionService) ToggleVideoReaction(viewer model.Viewer, videoID string, typ model.ReactionType) (*ReactionResult[model.VideoReaction], error) {
	if !viewer.SignedIn() {
		return nil, fmt.Errorf("%w: 点赞需要登录", apperr.ErrUnauthorized)
	}
	if err := checkUUID(videoID, "video_id"); err != nil {
		return nil, err
	}
	// 目标必须存在且对观看者可见
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, err
	}
	if video.Visibility == model.VisibilityPrivate && video.UserID != viewer.UserID {
		return nil, fmt.Errorf("%w: 视频不存在", apperr.ErrNotFound)
	}

	row, removed, err := s.reactionRepo.ToggleVideoReaction(viewer.UserID, videoID, typ)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"user_id":  viewer.UserID,
		"video_id": videoID,
		"type":     typ,
		"removed":  removed,
	}).Info("视频反应切换完成")
	return &ReactionResult[model.VideoReaction]{Reaction: row, Removed: removed}, nil
}

func (s *reactionService) ToggleCommentReaction(viewer model.Viewer, commentID string, typ model.ReactionType) (*ReactionResult[model.CommentReaction], error) {
	if !viewer.SignedIn() {
		return nil, fmt.Errorf("%w: 点赞需要登录", apperr.ErrUnauthorized)
	}
	if err := checkUUID(commentID, "comment_id"); err != nil {
		return nil, err
	}
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		return nil, err
	}

	row, removed, err := s.reactionRepo.ToggleCommentReaction(viewer.UserID, commentID, typ)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"user_id":    viewer.UserID,
		"comment_id": commentID,
		"type":       typ,
		"removed":    removed,
	}).Info("评论反应切换完成")
	return &ReactionResult[model.CommentReaction]{Reaction: row, Removed: removed}, nil
}
