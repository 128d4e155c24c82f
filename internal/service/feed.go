package service

import (
	"fmt"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/dto"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/pagination"
	"Vega_Tube/internal/repository"
)

// Feed查询的统一流程：校验入参 → 解析游标 → 键集取limit+1行 →
// 截断并计算下一页游标 → 批量挂作者 → DTO
type FeedService interface {
	// 全局公开流，可按分类/作者过滤
	GetMany(viewer model.Viewer, categoryID, ownerID *string, cursorRaw string, limit int) (*dto.VideoPage, error)
	// 热门流，按观看数倒序
	GetTrending(viewer model.Viewer, cursorRaw string, limit int) (*dto.VideoPage, error)
	// 订阅流，必须已登录
	GetSubscribed(viewer model.Viewer, cursorRaw string, limit int) (*dto.VideoPage, error)
	// 单视频详情；不存在、或private且观看者不是作者，都是NotFound
	GetOne(viewer model.Viewer, videoID string) (*dto.VideoDetailResponse, error)
}

type feedService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
}

func NewFeedService(videoRepo repository.VideoRepository, userRepo repository.UserRepository) FeedService {
	return &feedService{videoRepo: videoRepo, userRepo: userRepo}
}

func (s *feedService) GetMany(viewer model.Viewer, categoryID, ownerID *string, cursorRaw string, limit int) (*dto.VideoPage, error) {
	limit, err := pagination.CheckLimit(limit)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		if err := checkUUID(*categoryID, "category_id"); err != nil {
			return nil, err
		}
	}
	if ownerID != nil {
		if err := checkUUID(*ownerID, "owner_id"); err != nil {
			return nil, err
		}
	}
	cur, err := pagination.Decode(cursorRaw, pagination.KindTime)
	if err != nil {
		return nil, err
	}

	filter := repository.FeedFilter{CategoryID: categoryID, OwnerID: ownerID}
	rows, err := s.videoRepo.FindFeedPage(filter, viewer, cur, limit)
	if err != nil {
		return nil, err
	}
	return s.buildPage(rows, limit, pagination.KindTime)
}

func (s *feedService) GetTrending(viewer model.Viewer, cursorRaw string, limit int) (*dto.VideoPage, error) {
	limit, err := pagination.CheckLimit(limit)
	if err != nil {
		return nil, err
	}
	cur, err := pagination.Decode(cursorRaw, pagination.KindCount)
	if err != nil {
		return nil, err
	}

	rows, err := s.videoRepo.FindTrendingPage(viewer, cur, limit)
	if err != nil {
		return nil, err
	}
	return s.buildPage(rows, limit, pagination.KindCount)
}

func (s *feedService) GetSubscribed(viewer model.Viewer, cursorRaw string, limit int) (*dto.VideoPage, error) {
	if !viewer.SignedIn() {
		return nil, fmt.Errorf("%w: 订阅流需要登录", apperr.ErrUnauthorized)
	}
	limit, err := pagination.CheckLimit(limit)
	if err != nil {
		return nil, err
	}
	cur, err := pagination.Decode(cursorRaw, pagination.KindTime)
	if err != nil {
		return nil, err
	}

	rows, err := s.videoRepo.FindSubscribedPage(viewer.UserID, cur, limit)
	if err != nil {
		return nil, err
	}
	return s.buildPage(rows, limit, pagination.KindTime)
}

func (s *feedService) GetOne(viewer model.Viewer, videoID string) (*dto.VideoDetailResponse, error) {
	if err := checkUUID(videoID, "video_id"); err != nil {
		return nil, err
	}
	row, err := s.videoRepo.FindOneWithStats(videoID, viewer)
	if err != nil {
		return nil, err
	}
	// private只有作者本人可见；对外不区分“不存在”和“看不到”，避免私有内容被探测
	if row.Visibility == model.VisibilityPrivate && row.UserID != viewer.UserID {
		return nil, fmt.Errorf("%w: 视频不存在", apperr.ErrNotFound)
	}
	author, err := s.userRepo.FindWithStats(row.UserID)
	if err != nil {
		return nil, err
	}
	return dto.ToVideoDetail(row, author), nil
}

// buildPage 截断limit+1行、计算下一页游标、批量挂作者
func (s *feedService) buildPage(rows []repository.VideoRow, limit int, kind pagination.Kind) (*dto.VideoPage, error) {
	items, hasMore := pagination.Cut(rows, limit)

	var nextCursor *string
	if hasMore {
		last := items[len(items)-1]
		var cur *pagination.Cursor
		if kind == pagination.KindCount {
			cur = pagination.CountCursor(last.ID, last.ViewCount)
		} else {
			cur = pagination.TimeCursor(last.ID, last.UpdatedAt)
		}
		token, err := cur.Encode()
		if err != nil {
			return nil, err
		}
		nextCursor = &token
	}

	authors, err := s.attachAuthors(items)
	if err != nil {
		return nil, err
	}
	return dto.ToVideoPage(items, authors, nextCursor), nil
}

func (s *feedService) attachAuthors(rows []repository.VideoRow) (map[string]model.User, error) {
	if len(rows) == 0 {
		return map[string]model.User{}, nil
	}
	ids := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for i := range rows {
		if _, ok := seen[rows[i].UserID]; ok {
			continue
		}
		seen[rows[i].UserID] = struct{}{}
		ids = append(ids, rows[i].UserID)
	}
	return s.userRepo.FindByIDs(ids)
}
