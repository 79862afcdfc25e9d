package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// secretKey 是用于签发会话令牌的密钥。
// 配置中提供了固定密钥时使用配置值，否则在启动时随机生成。
var secretKey []byte

// tokenTTL 是签发出的会话令牌的有效期。
var tokenTTL = time.Hour

// ErrInvalidToken 表示令牌无法解析、签名不符或已过期。
var ErrInvalidToken = errors.New("会话令牌无效")

// SessionClaims 定义了会话令牌中携带的身份信息。
// 系统的其余部分只依赖其中的用户引用和管理员标志。
type SessionClaims struct {
	UserID  uint `json:"uid"`
	IsAdmin bool `json:"adm"`
	jwt.RegisteredClaims
}

// Configure 设置签发密钥和令牌有效期。
// secret为空时生成一个密码学安全的32字节随机密钥，
// 这意味着重启后所有旧会话失效。
func Configure(secret string, ttlMinutes int) {
	if secret != "" {
		secretKey = []byte(secret)
	} else {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("无法生成安全的密钥: " + err.Error())
		}
		secretKey = key
		fmt.Println("会话密钥已随机生成。")
	}

	if ttlMinutes > 0 {
		tokenTTL = time.Duration(ttlMinutes) * time.Minute
	}
}

// GenerateSessionToken 为一个已认证的用户签发HS256会话令牌。
func GenerateSessionToken(userID uint, isAdmin bool) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("无法签发会话令牌: %w", err)
	}
	return signed, nil
}

// ParseSessionToken 验证令牌并取出其中的身份信息。
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// 只接受启动时约定的HMAC签名算法，防止算法替换攻击
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("意外的签名算法: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
