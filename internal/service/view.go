package service

import (
	"fmt"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
)

type ViewService interface {
	// 上报一次观看；同一(user, video)只记一次，重复上报幂等返回已有记录
	Record(viewer model.Viewer, videoID string) (*model.VideoView, error)
}

type viewService struct {
	viewRepo  repository.ViewRepository
	videoRepo repository.VideoRepository
}

func NewViewService(viewRepo repository.ViewRepository, videoRepo repository.VideoRepository) ViewService {
	return &viewService{viewRepo: viewRepo, videoRepo: videoRepo}
}

func (s *viewService) Record(viewer model.Viewer, videoID string) (*model.VideoView, error) {
	if !viewer.SignedIn() {
		return nil, fmt.Errorf("%w: 上报观看需要登录", apperr.ErrUnauthorized)
	}
	if err := checkUUID(videoID, "video_id"); err != nil {
		return nil, err
	}
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, err
	}
	if video.Visibility == model.VisibilityPrivate && video.UserID != viewer.UserID {
		return nil, fmt.Errorf("%w: 视频不存在", apperr.ErrNotFound)
	}
	return s.viewRepo.CreateIfAbsent(viewer.UserID, videoID)
}
