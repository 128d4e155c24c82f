package handler

import (
	"net/http"

	"Vega_Tube/internal/service"
	"Vega_Tube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	GetProfile(c *gin.Context)
}

type userHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) UserHandler {
	return &userHandler{userService: userService}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *userHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	logCtx := logger.Log.WithField("username", req.Username)

	user, err := h.userService.Register(req.Username, req.Password)
	if err != nil {
		logCtx.WithError(err).Warn("用户注册失败")
		handleServiceError(c, err)
		return
	}
	logCtx.WithField("user_id", user.ID).Info("用户注册成功")
	// 密码哈希被json:"-"挡住，但这里还是只回必要字段
	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

func (h *userHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	logCtx := logger.Log.WithField("username", req.Username)

	token, err := h.userService.Login(req.Username, req.Password)
	if err != nil {
		logCtx.WithError(err).Warn("用户登录失败")
		handleServiceError(c, err)
		return
	}
	logCtx.Info("用户登录成功")
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"token": token}})
}

func (h *userHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(viewerFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}
