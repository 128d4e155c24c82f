package service

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"Vega_Tube/internal/apperr"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(username, password string) (*model.User, error)
	// 登录成功返回JWT
	Login(username, password string) (string, error)
	// 当前用户资料，带现算的订阅者数
	GetProfile(viewer model.Viewer) (*repository.UserRow, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// 注册：1、校验用户名/密码 2、查重 3、bcrypt加密存储
func (s *userService) Register(username, password string) (*model.User, error) {
	if n := utf8.RuneCountInString(username); n < 2 || n > 32 {
		return nil, fmt.Errorf("%w: 用户名须在2到32个字符之间", apperr.ErrBadRequest)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: 密码至少6个字符", apperr.ErrBadRequest)
	}
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: 用户名已存在", apperr.ErrBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	newUser := &model.User{
		Username: username,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

// 登录：1、取用户 2、bcrypt比对 3、签发HS256 JWT
// 用户名不存在和密码错误返回同一个错误，不给撞库者提示
func (s *userService) Login(username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return "", fmt.Errorf("%w: 用户名或密码错误", apperr.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: 用户名或密码错误", apperr.ErrUnauthorized)
	}

	// Payload不加密，不能放密码
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour * 72).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secretKey := []byte(os.Getenv("JWT_SECRET_KEY"))
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (s *userService) GetProfile(viewer model.Viewer) (*repository.UserRow, error) {
	if !viewer.SignedIn() {
		return nil, fmt.Errorf("%w: 需要登录", apperr.ErrUnauthorized)
	}
	return s.userRepo.FindWithStats(viewer.UserID)
}
