package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"Vega_Tube/internal/model"

	"github.com/go-faker/faker/v4"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var categoryNames = []string{
	"音乐", "游戏", "科技", "美食", "旅行", "运动", "教育", "影视",
}

func main() {
	fmt.Println("开始填充测试数据...")

	if err := godotenv.Load(); err != nil {
		log.Fatalf(".env文件加载失败")
	}
	db, err := gorm.Open(mysql.Open(os.Getenv("MYSQL_DSN")), &gorm.Config{})
	if err != nil {
		log.Fatalf("无法连接到数据库: %v", err)
	}
	fmt.Println("数据库连接成功")

	// 每次填充都从干净的表开始。注意：会删掉所有数据！
	db.Migrator().DropTable(
		&model.VideoView{}, &model.Subscription{},
		&model.CommentReaction{}, &model.VideoReaction{},
		&model.Comment{}, &model.Video{}, &model.Category{}, &model.User{},
	)
	if err := db.AutoMigrate(
		&model.User{}, &model.Category{}, &model.Video{}, &model.Comment{},
		&model.VideoReaction{}, &model.CommentReaction{},
		&model.Subscription{}, &model.VideoView{},
	); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	fmt.Println("数据库迁移成功")

	// 用户：统一密码"password"，方便本地登录调试
	userCount := 100
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码加密失败: %v", err)
	}
	userIDs := make([]string, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := model.User{
			Username: fmt.Sprintf("%s_%d", faker.Username(), i),
			Password: string(hashedPassword),
		}
		db.Create(&user)
		userIDs = append(userIDs, user.ID)
	}
	fmt.Printf("成功创建 %d 个用户\n", userCount)

	categoryIDs := make([]string, 0, len(categoryNames))
	for _, name := range categoryNames {
		category := model.Category{Name: name, Description: faker.Sentence()}
		db.Create(&category)
		categoryIDs = append(categoryIDs, category.ID)
	}
	fmt.Printf("成功创建 %d 个分类\n", len(categoryIDs))

	// 视频：少量private，其余public；约一成不挂分类
	videoCount := 500
	videoIDs := make([]string, 0, videoCount)
	for i := 0; i < videoCount; i++ {
		visibility := model.VisibilityPublic
		if rand.Intn(10) == 0 {
			visibility = model.VisibilityPrivate
		}
		video := model.Video{
			UserID:           userIDs[rand.Intn(userCount)],
			Title:            faker.Sentence(),
			Description:      faker.Paragraph(),
			Visibility:       visibility,
			ProcessingStatus: model.ProcessingReady,
			PlaybackURL:      "https://test.com/video.mp4",
			ThumbnailURL:     "https://test.com/thumbnail.jpg",
			Duration:         int64(rand.Intn(600000)),
		}
		if rand.Intn(10) != 0 {
			categoryID := categoryIDs[rand.Intn(len(categoryIDs))]
			video.CategoryID = &categoryID
		}
		db.Create(&video)
		videoIDs = append(videoIDs, video.ID)
	}
	fmt.Printf("成功创建 %d 个视频\n", videoCount)

	// 评论：一级评论加少量回复，回复只挂在一级评论下
	commentCount := 1000
	topLevelIDs := make([]string, 0, commentCount)
	topLevelVideo := make(map[string]string, commentCount)
	for i := 0; i < commentCount; i++ {
		comment := model.Comment{
			VideoID: videoIDs[rand.Intn(videoCount)],
			UserID:  userIDs[rand.Intn(userCount)],
			Value:   faker.Sentence(),
		}
		db.Create(&comment)
		topLevelIDs = append(topLevelIDs, comment.ID)
		topLevelVideo[comment.ID] = comment.VideoID
	}
	replyCount := 500
	for i := 0; i < replyCount; i++ {
		parentID := topLevelIDs[rand.Intn(len(topLevelIDs))]
		reply := model.Comment{
			VideoID:  topLevelVideo[parentID],
			UserID:   userIDs[rand.Intn(userCount)],
			ParentID: &parentID,
			Value:    faker.Sentence(),
		}
		db.Create(&reply)
	}
	fmt.Printf("成功创建 %d 条评论和 %d 条回复\n", commentCount, replyCount)

	// 观看/反应/订阅都是联合主键，OnConflict DoNothing吞掉随机撞出来的重复对
	viewCount := 5000
	for i := 0; i < viewCount; i++ {
		view := model.VideoView{
			UserID:  userIDs[rand.Intn(userCount)],
			VideoID: videoIDs[rand.Intn(videoCount)],
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).Create(&view)
	}
	fmt.Printf("成功创建(或尝试创建) %d 次观看\n", viewCount)

	reactionCount := 2000
	for i := 0; i < reactionCount; i++ {
		typ := model.ReactionLike
		if rand.Intn(5) == 0 {
			typ = model.ReactionDislike
		}
		reaction := model.VideoReaction{
			UserID:  userIDs[rand.Intn(userCount)],
			VideoID: videoIDs[rand.Intn(videoCount)],
			Type:    typ,
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).Create(&reaction)
	}
	fmt.Printf("成功创建(或尝试创建) %d 个视频反应\n", reactionCount)

	subscriptionCount := 1000
	for i := 0; i < subscriptionCount; i++ {
		viewerID := userIDs[rand.Intn(userCount)]
		creatorID := userIDs[rand.Intn(userCount)]
		if viewerID == creatorID {
			continue
		}
		sub := model.Subscription{ViewerID: viewerID, CreatorID: creatorID}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "viewer_id"}, {Name: "creator_id"}},
			DoNothing: true,
		}).Create(&sub)
	}
	fmt.Printf("成功创建(或尝试创建) %d 个订阅\n", subscriptionCount)

	fmt.Println("所有测试数据填充完毕!")
}
