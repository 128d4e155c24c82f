package service

import (
	"errors"
	"fmt"
	"testing"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"
)

type fakeSubscriptionRepo struct {
	edges map[string]bool
}

func subKey(viewerID, creatorID string) string {
	return viewerID + "|" + creatorID
}

func (f *fakeSubscriptionRepo) Toggle(viewerID, creatorID string) (*model.Subscription, bool, error) {
	key := subKey(viewerID, creatorID)
	row := &model.Subscription{ViewerID: viewerID, CreatorID: creatorID}
	if f.edges[key] {
		delete(f.edges, key)
		return row, true, nil
	}
	f.edges[key] = true
	return row, false, nil
}

func (f *fakeSubscriptionRepo) Delete(viewerID, creatorID string) (*model.Subscription, error) {
	key := subKey(viewerID, creatorID)
	if !f.edges[key] {
		return nil, fmt.Errorf("%w: 未订阅该创作者", apperr.ErrNotFound)
	}
	delete(f.edges, key)
	return &model.Subscription{ViewerID: viewerID, CreatorID: creatorID}, nil
}

type subscriptionFixture struct {
	svc       SubscriptionService
	repo      *fakeSubscriptionRepo
	viewerID  string
	creatorID string
}

func newSubscriptionFixture() *subscriptionFixture {
	viewerID := uuidN(900)
	creatorID := uuidN(901)

	users := map[string]model.User{}
	for i, id := range []string{viewerID, creatorID} {
		u := model.User{Username: fmt.Sprintf("user_%d", i)}
		u.ID = id
		users[id] = u
	}
	repo := &fakeSubscriptionRepo{edges: map[string]bool{}}
	return &subscriptionFixture{
		svc:       NewSubscriptionService(repo, &fakeUserRepo{users: users}, mutedLogger()),
		repo:      repo,
		viewerID:  viewerID,
		creatorID: creatorID,
	}
}

// POST的切换语义：第一次订阅，第二次取消
func TestSubscriptionToggle(t *testing.T) {
	fx := newSubscriptionFixture()
	viewer := model.Identified(fx.viewerID)

	result, err := fx.svc.Toggle(viewer, fx.creatorID)
	if err != nil {
		t.Fatalf("订阅失败: %v", err)
	}
	if result.Removed {
		t.Error("首次订阅不应是取消")
	}

	result, err = fx.svc.Toggle(viewer, fx.creatorID)
	if err != nil {
		t.Fatalf("再次切换失败: %v", err)
	}
	if !result.Removed {
		t.Error("已订阅时再次切换应取消")
	}
	if len(fx.repo.edges) != 0 {
		t.Errorf("取消后应无边残留, 实际 %d 条", len(fx.repo.edges))
	}
}

func TestSubscriptionSelfRejected(t *testing.T) {
	fx := newSubscriptionFixture()
	viewer := model.Identified(fx.viewerID)

	if _, err := fx.svc.Toggle(viewer, fx.viewerID); !errors.Is(err, apperr.ErrBadRequest) {
		t.Errorf("订阅自己应返回BadRequest, 实际 %v", err)
	}
	if _, err := fx.svc.Remove(viewer, fx.viewerID); !errors.Is(err, apperr.ErrBadRequest) {
		t.Errorf("取消订阅自己应返回BadRequest, 实际 %v", err)
	}
}

func TestSubscriptionRemoveAbsent(t *testing.T) {
	fx := newSubscriptionFixture()
	viewer := model.Identified(fx.viewerID)

	if _, err := fx.svc.Remove(viewer, fx.creatorID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("取消不存在的订阅应返回NotFound, 实际 %v", err)
	}
}

func TestSubscriptionValidation(t *testing.T) {
	fx := newSubscriptionFixture()

	if _, err := fx.svc.Toggle(model.Anonymous(), fx.creatorID); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("匿名订阅应返回Unauthorized, 实际 %v", err)
	}
	if _, err := fx.svc.Toggle(model.Identified(fx.viewerID), uuidN(999)); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("订阅不存在的创作者应返回NotFound, 实际 %v", err)
	}
	if _, err := fx.svc.Toggle(model.Identified(fx.viewerID), "bad-id"); !errors.Is(err, apperr.ErrBadRequest) {
		t.Errorf("非法创作者ID应返回BadRequest, 实际 %v", err)
	}
}
