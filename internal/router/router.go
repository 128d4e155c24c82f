package router

import (
	"net/http"

	"Vega_Tube/internal/handler"
	"Vega_Tube/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	userHandler handler.UserHandler,
	feedHandler handler.FeedHandler,
	videoHandler handler.VideoHandler,
	commentHandler handler.CommentHandler,
	reactionHandler handler.ReactionHandler,
	subscriptionHandler handler.SubscriptionHandler,
	categoryHandler handler.CategoryHandler,
) *gin.Engine {
	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := r.Group("/api/v1")
	{
		userGroup := apiV1.Group("/users")
		{
			userGroup.POST("/register", userHandler.Register)
			userGroup.POST("/login", userHandler.Login)
		}

		apiV1.GET("/categories", categoryHandler.GetCategories)

		// 读接口对匿名开放，带令牌则多出个性化列
		optional := apiV1.Group("/")
		optional.Use(middleware.OptionalAuthMiddleware())
		{
			optional.GET("/feed", feedHandler.GetFeed)
			optional.GET("/feed/trending", feedHandler.GetTrending)
			optional.GET("/videos/:video_id", feedHandler.GetVideoByID)
			optional.GET("/videos/:video_id/comments", commentHandler.GetComments)
		}

		authorized := apiV1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			authorized.GET("/profile", userHandler.GetProfile)
			authorized.GET("/feed/subscribed", feedHandler.GetSubscribed)

			authorized.POST("/videos", videoHandler.CreateVideo)
			authorized.PATCH("/videos/:video_id", videoHandler.UpdateVideo)
			authorized.DELETE("/videos/:video_id", videoHandler.DeleteVideo)
			authorized.POST("/videos/:video_id/views", videoHandler.RecordView)

			authorized.POST("/videos/:video_id/comments", commentHandler.CreateComment)

			authorized.POST("/videos/:video_id/like", reactionHandler.LikeVideo)
			authorized.POST("/videos/:video_id/dislike", reactionHandler.DislikeVideo)
			authorized.POST("/comments/:comment_id/like", reactionHandler.LikeComment)
			authorized.POST("/comments/:comment_id/dislike", reactionHandler.DislikeComment)

			authorized.POST("/subscriptions/:creator_id", subscriptionHandler.Toggle)
			authorized.DELETE("/subscriptions/:creator_id", subscriptionHandler.Remove)
		}
	}

	return r
}
