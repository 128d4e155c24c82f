package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
)

type fakeCategoryRepo struct {
	categories map[string]model.Category
}

func (f *fakeCategoryRepo) FindByID(id string) (*model.Category, error) {
	if c, ok := f.categories[id]; ok {
		return &c, nil
	}
	return nil, fmt.Errorf("%w: 分类不存在", apperr.ErrNotFound)
}

func (f *fakeCategoryRepo) FindAll() ([]model.Category, error) {
	out := make([]model.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func newVideoFixture() (VideoService, *fakeVideoRepo, string) {
	ownerID := uuidN(900)
	videoRepo := &fakeVideoRepo{rows: []repository.VideoRow{publicRow(uuidN(1), atMillis(1000), 0, ownerID)}}
	category := model.Category{Name: "音乐"}
	category.ID = uuidN(800)
	categoryRepo := &fakeCategoryRepo{categories: map[string]model.Category{category.ID: category}}
	// MQ连接传nil：创建只落库，不发转码请求
	svc := NewVideoService(videoRepo, categoryRepo, nil, mutedLogger())
	return svc, videoRepo, ownerID
}

func TestVideoCreateValidation(t *testing.T) {
	svc, _, ownerID := newVideoFixture()
	viewer := model.Identified(ownerID)

	if _, err := svc.Create(model.Anonymous(), VideoInput{Title: "标题"}); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("匿名发布应返回Unauthorized, 实际 %v", err)
	}
	if _, err := svc.Create(viewer, VideoInput{Title: ""}); !errors.Is(err, apperr.ErrBadRequest) {
		t.Errorf("空标题应返回BadRequest, 实际 %v", err)
	}
	if _, err := svc.Create(viewer, VideoInput{Title: strings.Repeat("字", 201)}); !errors.Is(err, apperr.ErrBadRequest) {
		t.Errorf("超长标题应返回BadRequest, 实际 %v", err)
	}
	if _, err := svc.Create(viewer, VideoInput{Title: "标题", Visibility: "secret"}); !errors.Is(err, apperr.ErrBadRequest) {
		t.Errorf("非法可见性应返回BadRequest, 实际 %v", err)
	}
	unknownCategory := uuidN(999)
	if _, err := svc.Create(viewer, VideoInput{Title: "标题", CategoryID: &unknownCategory}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("不存在的分类应返回NotFound, 实际 %v", err)
	}
}

// 缺省可见性是private，转码状态是waiting
func TestVideoCreateDefaults(t *testing.T) {
	svc, _, ownerID := newVideoFixture()

	video, err := svc.Create(model.Identified(ownerID), VideoInput{Title: "新视频"})
	if err != nil {
		t.Fatalf("发布视频失败: %v", err)
	}
	if video.Visibility != model.VisibilityPrivate {
		t.Errorf("缺省可见性 = %s, 期望 private", video.Visibility)
	}
	if video.ProcessingStatus != model.ProcessingWaiting {
		t.Errorf("初始转码状态 = %s, 期望 waiting", video.ProcessingStatus)
	}
}

// 改和删都只许作者本人
func TestVideoOwnershipEnforced(t *testing.T) {
	svc, _, ownerID := newVideoFixture()
	stranger := model.Identified(uuidN(901))
	owner := model.Identified(ownerID)

	newTitle := "改过的标题"
	if _, err := svc.Update(stranger, uuidN(1), VideoUpdateInput{Title: &newTitle}); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("非作者更新应返回Forbidden, 实际 %v", err)
	}
	if err := svc.Delete(stranger, uuidN(1)); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("非作者删除应返回Forbidden, 实际 %v", err)
	}

	video, err := svc.Update(owner, uuidN(1), VideoUpdateInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("作者更新失败: %v", err)
	}
	if video.Title != newTitle {
		t.Errorf("标题 = %s, 期望 %s", video.Title, newTitle)
	}
	if err := svc.Delete(owner, uuidN(1)); err != nil {
		t.Errorf("作者删除失败: %v", err)
	}
}

func TestApplyProcessingResultValidation(t *testing.T) {
	svc, _, _ := newVideoFixture()

	err := svc.ApplyProcessingResult(ProcessingResultMessage{VideoID: uuidN(1), Status: "transcoded"})
	if !errors.Is(err, apperr.ErrBadRequest) {
		t.Errorf("非法转码状态应返回BadRequest, 实际 %v", err)
	}
	if err := svc.ApplyProcessingResult(ProcessingResultMessage{
		VideoID: uuidN(1), Status: model.ProcessingReady,
		PlaybackURL: "https://cdn.test/v.m3u8", Duration: 60000,
	}); err != nil {
		t.Errorf("合法转码结果应成功, 实际 %v", err)
	}
}
