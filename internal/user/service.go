package user

import (
	"errors"
	"fmt"

	"github.com/Cazhime/online-voting-backend/internal/platform/database"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateEmail 表示注册时邮箱已被占用
	ErrDuplicateEmail = errors.New("该邮箱已被注册")

	// ErrInvalidCredentials 表示登录凭证无效。
	// 不区分"邮箱不存在"和"密码错误"，避免泄露账户是否存在。
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
)

// CreateUser 注册一个新用户并返回持久化后的记录。
// 邮箱唯一性先做应用层预检查，再由数据库唯一索引兜底，
// 并发注册同一邮箱时靠约束冲突翻译回同一个错误。
func CreateUser(name, email, password string) (*User, error) {
	var count int64
	if err := database.DB.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("无法检查邮箱占用情况: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("无法生成密码哈希: %w", err)
	}

	newUser := User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("无法创建用户: %w", err)
	}

	return &newUser, nil
}

// AuthenticateUser 校验邮箱和密码，成功时返回用户记录。
func AuthenticateUser(email, password string) (*User, error) {
	var u User
	if err := database.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("无法查询用户: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &u, nil
}

// GetUserByID 根据主键查询用户，不存在时返回gorm.ErrRecordNotFound。
func GetUserByID(id uint) (*User, error) {
	var u User
	if err := database.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
