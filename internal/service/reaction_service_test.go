package service

import (
	"errors"
	"io"
	"testing"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"

	"github.com/sirupsen/logrus"
)

// fakeReactionRepo 用map复刻“每个(user, target)至多一行”的联合主键语义
type fakeReactionRepo struct {
	videoReactions   map[string]model.ReactionType
	commentReactions map[string]model.ReactionType
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{
		videoReactions:   map[string]model.ReactionType{},
		commentReactions: map[string]model.ReactionType{},
	}
}

func (f *fakeReactionRepo) ToggleVideoReaction(userID, videoID string, typ model.ReactionType) (*model.VideoReaction, bool, error) {
	key := userID + "|" + videoID
	if f.videoReactions[key] == typ {
		delete(f.videoReactions, key)
		return &model.VideoReaction{UserID: userID, VideoID: videoID, Type: typ}, true, nil
	}
	f.videoReactions[key] = typ
	return &model.VideoReaction{UserID: userID, VideoID: videoID, Type: typ}, false, nil
}

func (f *fakeReactionRepo) ToggleCommentReaction(userID, commentID string, typ model.ReactionType) (*model.CommentReaction, bool, error) {
	key := userID + "|" + commentID
	if f.commentReactions[key] == typ {
		delete(f.commentReactions, key)
		return &model.CommentReaction{UserID: userID, CommentID: commentID, Type: typ}, true, nil
	}
	f.commentReactions[key] = typ
	return &model.CommentReaction{UserID: userID, CommentID: commentID, Type: typ}, false, nil
}

func mutedLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type reactionFixture struct {
	svc       ReactionService
	repo      *fakeReactionRepo
	videoID   string
	commentID string
	userID    string
}

func newReactionFixture() *reactionFixture {
	videoID := uuidN(1)
	commentID := uuidN(2)
	userID := uuidN(900)

	videoRepo := &fakeVideoRepo{rows: []repository.VideoRow{publicRow(videoID, atMillis(1000), 0, uuidN(901))}}
	commentRepo := &fakeCommentRepo{}
	commentRepo.Create(&model.Comment{BaseModel: model.BaseModel{ID: commentID}, VideoID: videoID, UserID: userID, Value: "评论"})
	repo := newFakeReactionRepo()
	return &reactionFixture{
		svc:       NewReactionService(repo, videoRepo, commentRepo, mutedLogger()),
		repo:      repo,
		videoID:   videoID,
		commentID: commentID,
		userID:    userID,
	}
}

// 状态机：none→like→none，再like→dislike翻转
func TestVideoReactionStateMachine(t *testing.T) {
	fx := newReactionFixture()
	viewer := model.Identified(fx.userID)

	// none → like
	result, err := fx.svc.ToggleVideoReaction(viewer, fx.videoID, model.ReactionLike)
	if err != nil {
		t.Fatalf("首次点赞失败: %v", err)
	}
	if result.Removed || result.Reaction.Type != model.ReactionLike {
		t.Errorf("首次点赞应创建like行, 实际 removed=%v type=%s", result.Removed, result.Reaction.Type)
	}

	// like → none（再点一次同按钮）
	result, err = fx.svc.ToggleVideoReaction(viewer, fx.videoID, model.ReactionLike)
	if err != nil {
		t.Fatalf("重复点赞失败: %v", err)
	}
	if !result.Removed {
		t.Error("重复点赞应删除该行")
	}
	if len(fx.repo.videoReactions) != 0 {
		t.Errorf("取消后应无行残留, 实际 %d 行", len(fx.repo.videoReactions))
	}

	// none → like → dislike（翻转覆盖，不产生第二行）
	if _, err := fx.svc.ToggleVideoReaction(viewer, fx.videoID, model.ReactionLike); err != nil {
		t.Fatalf("点赞失败: %v", err)
	}
	result, err = fx.svc.ToggleVideoReaction(viewer, fx.videoID, model.ReactionDislike)
	if err != nil {
		t.Fatalf("翻转为踩失败: %v", err)
	}
	if result.Removed || result.Reaction.Type != model.ReactionDislike {
		t.Errorf("翻转应保留一行且type=dislike, 实际 removed=%v type=%s", result.Removed, result.Reaction.Type)
	}
	if len(fx.repo.videoReactions) != 1 {
		t.Errorf("翻转后应恰好一行, 实际 %d 行", len(fx.repo.videoReactions))
	}
}

func TestCommentReactionToggle(t *testing.T) {
	fx := newReactionFixture()
	viewer := model.Identified(fx.userID)

	result, err := fx.svc.ToggleCommentReaction(viewer, fx.commentID, model.ReactionDislike)
	if err != nil {
		t.Fatalf("评论点踩失败: %v", err)
	}
	if result.Removed || result.Reaction.Type != model.ReactionDislike {
		t.Errorf("首次点踩应创建dislike行, 实际 removed=%v type=%s", result.Removed, result.Reaction.Type)
	}

	result, err = fx.svc.ToggleCommentReaction(viewer, fx.commentID, model.ReactionDislike)
	if err != nil {
		t.Fatalf("重复点踩失败: %v", err)
	}
	if !result.Removed {
		t.Error("重复点踩应删除该行")
	}
}

func TestReactionValidation(t *testing.T) {
	fx := newReactionFixture()
	viewer := model.Identified(fx.userID)

	if _, err := fx.svc.ToggleVideoReaction(model.Anonymous(), fx.videoID, model.ReactionLike); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("匿名点赞应返回Unauthorized, 实际 %v", err)
	}
	if _, err := fx.svc.ToggleVideoReaction(viewer, uuidN(999), model.ReactionLike); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("点赞不存在的视频应返回NotFound, 实际 %v", err)
	}
	if _, err := fx.svc.ToggleCommentReaction(viewer, "bad-id", model.ReactionLike); !errors.Is(err, apperr.ErrBadRequest) {
		t.Errorf("非法评论ID应返回BadRequest, 实际 %v", err)
	}
}

// private视频只有作者能反应，其他人按不存在处理
func TestReactionPrivateVideo(t *testing.T) {
	ownerID := uuidN(901)
	videoID := uuidN(1)
	row := publicRow(videoID, atMillis(1000), 0, ownerID)
	row.Visibility = model.VisibilityPrivate
	videoRepo := &fakeVideoRepo{rows: []repository.VideoRow{row}}
	svc := NewReactionService(newFakeReactionRepo(), videoRepo, &fakeCommentRepo{}, mutedLogger())

	if _, err := svc.ToggleVideoReaction(model.Identified(uuidN(902)), videoID, model.ReactionLike); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("非作者反应private视频应返回NotFound, 实际 %v", err)
	}
	if _, err := svc.ToggleVideoReaction(model.Identified(ownerID), videoID, model.ReactionLike); err != nil {
		t.Errorf("作者反应自己的private视频应成功, 实际 %v", err)
	}
}
