package user

import (
	"errors"
	"net/http"

	"github.com/Cazhime/online-voting-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

// RegisterRequestBody 定义了注册接口的请求体JSON结构
type RegisterRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequestBody 定义了登录接口的请求体JSON结构
type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 处理新用户注册
func Register(c *gin.Context) {
	var body RegisterRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	newUser, err := CreateUser(body.Name, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": ErrDuplicateEmail.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册失败"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "注册成功，请登录", "user_id": newUser.ID})
}

// Login 处理用户登录，成功时签发会话令牌并写入Cookie
func Login(c *gin.Context) {
	var body LoginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	u, err := AuthenticateUser(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentials.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败"})
		return
	}

	tokenString, err := token.GenerateSessionToken(u.ID, u.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法签发会话令牌"})
		return
	}

	c.SetCookie(CookieName, tokenString, CookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

// Logout 清除会话Cookie。
// 令牌本身不可吊销，依赖较短的有效期自然过期。
func Logout(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

// AdminOverview 是管理员专属的状态视图
func AdminOverview(c *gin.Context) {
	userID, _ := CurrentUserID(c)
	c.JSON(http.StatusOK, gin.H{
		"message":  "管理后台",
		"admin_id": userID,
	})
}
