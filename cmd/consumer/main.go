package main

import (
	"encoding/json"
	"errors"
	"log"
	"os"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/repository"
	"Vega_Tube/internal/service"
	"Vega_Tube/pkg/logger"
	"Vega_Tube/pkg/rabbitmq"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 消费者进程：外部转码器把结果发到result队列，这里回写videos表。
// 状态回写会刷新updated_at，转码完成的视频因此浮到Feed流顶部
func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatalf(".env文件加载失败")
	}
	logger.InitLogger()

	db, err := gorm.Open(gorm_mysql.Open(os.Getenv("MYSQL_DSN")), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到数据库: %v", err)
	}

	rabbitMQConn, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()

	videoRepo := repository.NewVideoRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	// 消费者只回写结果，不发转码请求，MQ连接传nil
	videoService := service.NewVideoService(videoRepo, categoryRepo, nil, logger.Log)

	consumeProcessingResults(rabbitMQConn, videoService)
}

// 判断是否是不值得重试的永久性失败
func isPermanent(err error) bool {
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrBadRequest) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	// 1062 Duplicate entry：重复消费同一条消息
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func consumeProcessingResults(conn *amqp.Connection, videoService service.VideoService) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	// 声明是幂等的；转码器可能先于消费者启动，两边都声明
	if _, err := ch.QueueDeclare(service.QueueProcessingResult, true, false, false, false, nil); err != nil {
		logger.Log.Fatalf("无法声明转码结果队列: %v", err)
	}

	msgs, err := ch.Consume(
		service.QueueProcessingResult, // queue
		"",                            // consumer
		false,                         // auto-ack
		false,                         // exclusive
		false,                         // no-local
		false,                         // no-wait
		nil,                           // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册转码结果消费者: %v", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			logCtx := logger.Log.WithField("body", string(d.Body)).WithField("redelivered", d.Redelivered)
			logCtx.Info("收到一条转码结果")

			var msg service.ProcessingResultMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				logCtx.WithError(err).Error("消息JSON解析失败")
				// 解析不了的坏消息，重试也没用，直接丢弃
				d.Nack(false, false)
				continue
			}

			err := videoService.ApplyProcessingResult(msg)
			switch {
			case err == nil:
				logCtx.WithField("video_id", msg.VideoID).WithField("status", msg.Status).Info("转码结果已回写")
				d.Ack(false)
			case isPermanent(err):
				// 比如视频在转码期间被作者删了，确认掉即可
				logCtx.WithError(err).Warn("转码结果无法应用，消息将被丢弃")
				d.Ack(false)
			default:
				logCtx.WithError(err).Error("转码结果回写失败，将进行重试")
				d.Nack(false, true)
			}
		}
	}()

	logger.Log.Info(" [*] 等待转码结果中. 按 CTRL+C 退出")
	<-forever
}
