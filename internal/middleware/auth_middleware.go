package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID 是解析成功后用户ID在gin.Context中的键
const ContextUserID = "userID"

// 从"Bearer [token]"里解析出用户ID；任何一步失败返回空串
func parseUserID(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	secretKey := []byte(os.Getenv("JWT_SECRET_KEY"))
	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		// 只接受对称加密族，防算法替换攻击
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名方法")
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}

// AuthMiddleware 写操作用：没有有效令牌直接401拦下
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := parseUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "请求未包含有效的授权令牌"})
			return
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware 读操作用：令牌缺失或无效都按匿名放行，
// 匿名只影响个性化列（viewer_reaction/viewer_subscribed），不影响数据本身
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := parseUserID(c); userID != "" {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}
