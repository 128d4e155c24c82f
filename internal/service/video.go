package service

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	QueueProcessingRequest = "vega.video.processing_request.queue"
	QueueProcessingResult  = "vega.video.processing_result.queue"

	maxTitleLength       = 200
	maxDescriptionLength = 5000
)

// ProcessingRequestMessage 发给外部转码器的处理请求
type ProcessingRequestMessage struct {
	VideoID string `json:"video_id"`
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
}

// ProcessingResultMessage 转码器回报的处理结果，消费者进程回写数据库
type ProcessingResultMessage struct {
	VideoID      string `json:"video_id"`
	Status       string `json:"status"` // processing / ready / failed
	PlaybackURL  string `json:"playback_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Duration     int64  `json:"duration"`
}

// VideoInput 创建视频的入参
type VideoInput struct {
	Title       string
	Description string
	CategoryID  *string
	Visibility  model.Visibility
}

// VideoUpdateInput 更新视频的入参，nil字段表示不改
type VideoUpdateInput struct {
	Title       *string
	Description *string
	CategoryID  *string
	Visibility  *model.Visibility
}

type VideoService interface {
	// 创建后状态为waiting，并向MQ发布一条转码请求
	Create(viewer model.Viewer, input VideoInput) (*model.Video, error)
	// 仅作者可改；整行保存会刷新updated_at，视频随之回到各Feed流顶部
	Update(viewer model.Viewer, videoID string, input VideoUpdateInput) (*model.Video, error)
	// 仅作者可删；评论/反应/观看由外键级联清理
	Delete(viewer model.Viewer, videoID string) error
	// 消费者进程回写转码结果
	ApplyProcessingResult(msg ProcessingResultMessage) error
}

type videoService struct {
	videoRepo    repository.VideoRepository
	categoryRepo repository.CategoryRepository
	rabbitMQConn *amqp.Connection
	log          *logrus.Logger
}

// rabbitMQConn可以传nil（消费者进程不发转码请求），此时Create只落库不发消息
func NewVideoService(videoRepo repository.VideoRepository, categoryRepo repository.CategoryRepository, rabbitMQConn *amqp.Connection, log *logrus.Logger) VideoService {
	if rabbitMQConn != nil {
		ch, err := rabbitMQConn.Channel()
		if err != nil {
			panic("无法打开RabbitMQ Channel")
		}
		defer ch.Close()
		// 队列声明是幂等的，存在就什么都不做
		if _, err := ch.QueueDeclare(QueueProcessingRequest, true, false, false, false, nil); err != nil {
			panic("无法声明转码请求队列")
		}
	}
	return &videoService{
		videoRepo:    videoRepo,
		categoryRepo: categoryRepo,
		rabbitMQConn: rabbitMQConn,
		log:          log,
	}
}

func checkTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n == 0 || n > maxTitleLength {
		return fmt.Errorf("%w: 标题须在1到%d个字符之间", apperr.ErrBadRequest, maxTitleLength)
	}
	return nil
}

func checkDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return fmt.Errorf("%w: 简介最长%d个字符", apperr.ErrBadRequest, maxDescriptionLength)
	}
	return nil
}

func checkVisibility(visibility model.Visibility) error {
	if visibility != model.VisibilityPrivate && visibility != model.VisibilityPublic {
		return fmt.Errorf("%w: 非法的可见性", apperr.ErrBadRequest)
	}
	return nil
}

func (s *videoService) checkCategory(categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	if err := checkUUID(*categoryID, "category_id"); err != nil {
		return err
	}
	_, err := s.categoryRepo.FindByID(*categoryID)
	return err
}

func (s *videoService) Create(viewer model.Viewer, input VideoInput) (*model.Video, error) {
	if !viewer.SignedIn() {
		return nil, fmt.Errorf("%w: 发布视频需要登录", apperr.ErrUnauthorized)
	}
	if err := checkTitle(input.Title); err != nil {
		return nil, err
	}
	if err := checkDescription(input.Description); err != nil {
		return nil, err
	}
	if input.Visibility == "" {
		input.Visibility = model.VisibilityPrivate
	}
	if err := checkVisibility(input.Visibility); err != nil {
		return nil, err
	}
	if err := s.checkCategory(input.CategoryID); err != nil {
		return nil, err
	}

	video := &model.Video{
		UserID:           viewer.UserID,
		CategoryID:       input.CategoryID,
		Title:            input.Title,
		Description:      input.Description,
		Visibility:       input.Visibility,
		ProcessingStatus: model.ProcessingWaiting,
	}
	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	logCtx := s.log.WithFields(logrus.Fields{"video_id": video.ID, "user_id": viewer.UserID})
	if err := s.publishProcessingRequest(ProcessingRequestMessage{
		VideoID: video.ID,
		UserID:  viewer.UserID,
		Title:   video.Title,
	}); err != nil {
		// 视频已落库，转码请求发不出去只记日志，等人工或定时任务补发
		logCtx.WithError(err).Error("转码请求发布失败")
	} else {
		logCtx.Info("视频已创建，转码请求已发布")
	}
	return video, nil
}

// 取出视频并校验所有权，Update/Delete共用
func (s *videoService) findOwned(viewer model.Viewer, videoID string) (*model.Video, error) {
	if !viewer.SignedIn() {
		return nil, fmt.Errorf("%w: 需要登录", apperr.ErrUnauthorized)
	}
	if err := checkUUID(videoID, "video_id"); err != nil {
		return nil, err
	}
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, err
	}
	if video.UserID != viewer.UserID {
		return nil, fmt.Errorf("%w: 只有作者可以操作该视频", apperr.ErrForbidden)
	}
	return video, nil
}

func (s *videoService) Update(viewer model.Viewer, videoID string, input VideoUpdateInput) (*model.Video, error) {
	video, err := s.findOwned(viewer, videoID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		if err := checkTitle(*input.Title); err != nil {
			return nil, err
		}
		video.Title = *input.Title
	}
	if input.Description != nil {
		if err := checkDescription(*input.Description); err != nil {
			return nil, err
		}
		video.Description = *input.Description
	}
	if input.Visibility != nil {
		if err := checkVisibility(*input.Visibility); err != nil {
			return nil, err
		}
		video.Visibility = *input.Visibility
	}
	if input.CategoryID != nil {
		if err := s.checkCategory(input.CategoryID); err != nil {
			return nil, err
		}
		video.CategoryID = input.CategoryID
	}
	if err := s.videoRepo.Save(video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *videoService) Delete(viewer model.Viewer, videoID string) error {
	video, err := s.findOwned(viewer, videoID)
	if err != nil {
		return err
	}
	if err := s.videoRepo.Delete(video.ID); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"video_id": video.ID, "user_id": viewer.UserID}).Info("视频已删除")
	return nil
}

func (s *videoService) ApplyProcessingResult(msg ProcessingResultMessage) error {
	if err := checkUUID(msg.VideoID, "video_id"); err != nil {
		return err
	}
	switch msg.Status {
	case model.ProcessingRunning, model.ProcessingReady, model.ProcessingFailed:
	default:
		return fmt.Errorf("%w: 非法的转码状态 %q", apperr.ErrBadRequest, msg.Status)
	}
	return s.videoRepo.UpdateProcessing(msg.VideoID, msg.Status, msg.PlaybackURL, msg.ThumbnailURL, msg.Duration)
}

// 每条消息单独开channel，互不影响
func (s *videoService) publishProcessingRequest(msg ProcessingRequestMessage) error {
	if s.rabbitMQConn == nil {
		return nil
	}
	ch, err := s.rabbitMQConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return ch.Publish(
		"",                     // exchange默认交换机
		QueueProcessingRequest, // routing key
		false,                  // mandatory
		false,                  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
}
