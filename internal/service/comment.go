package service

import (
	"fmt"
	"unicode/utf8"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/data"
	"Vega_Tube/internal/dto"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/pagination"
	"Vega_Tube/internal/repository"

	"golang.org/x/sync/errgroup"
)

const maxCommentLength = 1000

type CommentService interface {
	// parentID为nil发一级评论，非nil回复一级评论；回复的回复直接拒绝
	Create(viewer model.Viewer, videoID string, parentID *string, value string) (*model.Comment, error)
	// 评论线程分页：parentID为nil取一级评论，非nil取该评论的回复。
	// total_count是视频一级评论总数，每页原样返回
	GetMany(viewer model.Viewer, videoID string, parentID *string, cursorRaw string, limit int) (*dto.CommentPage, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	userRepo    repository.UserRepository
	uow         data.UnitOfWork
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository, userRepo repository.UserRepository, uow data.UnitOfWork) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		uow:         uow,
	}
}

func (s *commentService) Create(viewer model.Viewer, videoID string, parentID *string, value string) (*model.Comment, error) {
	if !viewer.SignedIn() {
		return nil, fmt.Errorf("%w: 评论需要登录", apperr.ErrUnauthorized)
	}
	if err := checkUUID(videoID, "video_id"); err != nil {
		return nil, err
	}
	if parentID != nil {
		if err := checkUUID(*parentID, "parent_id"); err != nil {
			return nil, err
		}
	}
	if utf8.RuneCountInString(value) == 0 || utf8.RuneCountInString(value) > maxCommentLength {
		return nil, fmt.Errorf("%w: 评论内容须在1到%d个字符之间", apperr.ErrBadRequest, maxCommentLength)
	}

	newComment := &model.Comment{
		VideoID:  videoID,
		UserID:   viewer.UserID,
		ParentID: parentID,
		Value:    value,
	}
	// 父评论校验和插入放进同一个事务，防止校验后父评论被并发删除
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if _, err := repos.VideoRepo.FindByID(videoID); err != nil {
			return err
		}
		if parentID != nil {
			parent, err := repos.CommentRepo.FindByID(*parentID)
			if err != nil {
				return err
			}
			if parent.VideoID != videoID {
				return fmt.Errorf("%w: 父评论不属于该视频", apperr.ErrBadRequest)
			}
			// 只允许一层嵌套
			if parent.ParentID != nil {
				return fmt.Errorf("%w: 不能回复一条回复", apperr.ErrBadRequest)
			}
		}
		return repos.CommentRepo.Create(newComment)
	})
	if err != nil {
		return nil, err
	}
	return newComment, nil
}

func (s *commentService) GetMany(viewer model.Viewer, videoID string, parentID *string, cursorRaw string, limit int) (*dto.CommentPage, error) {
	if err := checkUUID(videoID, "video_id"); err != nil {
		return nil, err
	}
	if parentID != nil {
		if err := checkUUID(*parentID, "parent_id"); err != nil {
			return nil, err
		}
	}
	limit, err := pagination.CheckLimit(limit)
	if err != nil {
		return nil, err
	}
	cur, err := pagination.Decode(cursorRaw, pagination.KindTime)
	if err != nil {
		return nil, err
	}

	// 本页数据和一级评论总数互不依赖，并发取
	var (
		rows       []repository.CommentRow
		totalCount int64
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		rows, err = s.commentRepo.FindPage(videoID, parentID, viewer, cur, limit)
		return err
	})
	g.Go(func() error {
		var err error
		totalCount, err = s.commentRepo.CountTopLevel(videoID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items, hasMore := pagination.Cut(rows, limit)
	var nextCursor *string
	if hasMore {
		last := items[len(items)-1]
		token, err := pagination.TimeCursor(last.ID, last.UpdatedAt).Encode()
		if err != nil {
			return nil, err
		}
		nextCursor = &token
	}

	authors, err := s.attachAuthors(items)
	if err != nil {
		return nil, err
	}
	return dto.ToCommentPage(items, authors, nextCursor, totalCount), nil
}

func (s *commentService) attachAuthors(rows []repository.CommentRow) (map[string]model.User, error) {
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
