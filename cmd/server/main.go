package main

import (
	"log"
	"os"

	"Vega_Tube/internal/data"
	"Vega_Tube/internal/handler"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
	"Vega_Tube/internal/router"
	"Vega_Tube/internal/service"
	"Vega_Tube/pkg/logger"
	"Vega_Tube/pkg/rabbitmq"
	"Vega_Tube/pkg/redis"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatalf(".env文件加载失败")
	}
	logger.InitLogger()

	redisClient, err := redis.InitRedis()
	if err != nil {
		logger.Log.Fatalf("无法连接到Redis: %v", err)
	}
	logger.Log.Info("Redis连接成功")

	rabbitMQConn, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()
	logger.Log.Info("RabbitMQ连接成功")

	db, err := gorm.Open(mysql.Open(os.Getenv("MYSQL_DSN")), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")

	// AutoMigrate只增不删：缺表建表，缺列补列
	err = db.AutoMigrate(
		&model.User{}, &model.Category{}, &model.Video{}, &model.Comment{},
		&model.VideoReaction{}, &model.CommentReaction{},
		&model.Subscription{}, &model.VideoView{},
	)
	if err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	userRepo := repository.NewUserRepository(db, redisClient)
	categoryRepo := repository.NewCategoryRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	viewRepo := repository.NewViewRepository(db)

	uow := data.NewUnitOfWork(db, videoRepo, commentRepo)

	userService := service.NewUserService(userRepo)
	feedService := service.NewFeedService(videoRepo, userRepo)
	videoService := service.NewVideoService(videoRepo, categoryRepo, rabbitMQConn, logger.Log)
	commentService := service.NewCommentService(commentRepo, videoRepo, userRepo, uow)
	reactionService := service.NewReactionService(reactionRepo, videoRepo, commentRepo, logger.Log)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, logger.Log)
	viewService := service.NewViewService(viewRepo, videoRepo)

	userHandler := handler.NewUserHandler(userService)
	feedHandler := handler.NewFeedHandler(feedService)
	videoHandler := handler.NewVideoHandler(videoService, viewService)
	commentHandler := handler.NewCommentHandler(commentService)
	reactionHandler := handler.NewReactionHandler(reactionService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)

	r := router.SetupRouter(userHandler, feedHandler, videoHandler,
		commentHandler, reactionHandler, subscriptionHandler, categoryHandler)

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	logger.Log.Infof("服务器将在 %s 启动", addr)
	if err := r.Run(addr); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}
