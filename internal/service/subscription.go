package service

import (
	"fmt"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"

	"github.com/sirupsen/logrus"
)

type SubscriptionResult struct {
	Subscription *model.Subscription `json:"subscription"`
	Removed      bool                `json:"removed"`
}

type SubscriptionService interface {
	// 未订阅则订阅，已订阅则取消
	Toggle(viewer model.Viewer, creatorID string) (*SubscriptionResult, error)
	// 明确取消；未订阅时NotFound
	Remove(viewer model.Viewer, creatorID string) (*model.Subscription, error)
}

type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
	log      *logrus.Logger
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository, log *logrus.Logger) SubscriptionService {
	return &subscriptionService{subRepo: subRepo, userRepo: userRepo, log: log}
}

func (s *subscriptionService) check(viewer model.Viewer, creatorID string) error {
	if !viewer.SignedIn() {
		return fmt.Errorf("%w: 订阅需要登录", apperr.ErrUnauthorized)
	}
	if err := checkUUID(creatorID, "creator_id"); err != nil {
		return err
	}
	// 不允许订阅自己
	if viewer.UserID == creatorID {
		return fmt.Errorf("%w: 不能订阅自己", apperr.ErrBadRequest)
	}
	return nil
}

func (s *subscriptionService) Toggle(viewer model.Viewer, creatorID string) (*SubscriptionResult, error) {
	if err := s.check(viewer, creatorID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(creatorID); err != nil {
		return nil, err
	}

	row, removed, err := s.subRepo.Toggle(viewer.UserID, creatorID)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"viewer_id":  viewer.UserID,
		"creator_id": creatorID,
		"removed":    removed,
	}).Info("订阅切换完成")
	return &SubscriptionResult{Subscription: row, Removed: removed}, nil
}

func (s *subscriptionService) Remove(viewer model.Viewer, creatorID string) (*model.Subscription, error) {
	if err := s.check(viewer, creatorID); err != nil {
		return nil, err
	}
	return s.subRepo.Delete(viewer.UserID, creatorID)
}
