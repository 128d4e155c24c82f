package data

import (
	"Vega_Tube/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork 把一个函数包在数据库事务里执行，
// 并向它注入绑定了该事务的Repository副本
type UnitOfWork interface {
	Execute(fn func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有需要在同一个事务中协作的Repository
type TransactionalRepositories struct {
	VideoRepo   repository.VideoRepository
	CommentRepo repository.CommentRepository
}

type gormUnitOfWork struct {
	db          *gorm.DB
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
}

// NewUnitOfWork 接收原始的、非事务的repositories
func NewUnitOfWork(db *gorm.DB, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository) UnitOfWork {
	return &gormUnitOfWork{
		db:          db,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
	}
}

func (u *gormUnitOfWork) Execute(fn func(repos *TransactionalRepositories) error) error {
	// fn返回error即ROLLBACK，返回nil即COMMIT
	return u.db.Transaction(func(tx *gorm.DB) error {
		repos := &TransactionalRepositories{
			VideoRepo:   u.videoRepo.WithTx(tx),
			CommentRepo: u.commentRepo.WithTx(tx),
		}
		return fn(repos)
	})
}
