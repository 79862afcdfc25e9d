package user

import (
	"net/http"
	"strings"

	"github.com/Cazhime/online-voting-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

const (
	// CookieName 是承载会话令牌的Cookie名称
	CookieName = "session-token"
	// CookieMaxAge 是会话Cookie的生存时间（秒）
	CookieMaxAge = 24 * 60 * 60

	// UserIDKey 是已认证用户ID在Gin上下文中的键
	UserIDKey = "userID"
	// IsAdminKey 是管理员标志在Gin上下文中的键
	IsAdminKey = "isAdmin"
)

// extractToken 依次尝试从Cookie和Authorization头中取出会话令牌。
// 浏览器端走Cookie，API客户端走Bearer头，两者等价。
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RequireAuth 校验请求携带的会话令牌，并把身份信息放入Gin上下文。
// 校验失败时中断请求并返回401。
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
			c.Abort()
			return
		}

		claims, err := token.ParseSessionToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "会话无效或已过期"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(IsAdminKey, claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin 在RequireAuth之后使用，只放行管理员。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin := c.GetBool(IsAdminKey)
		if !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "拒绝访问"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID 从Gin上下文中取出已认证用户的ID。
// 只应在RequireAuth之后的处理器中调用。
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
