package user

import "gorm.io/gorm"

// User 定义了注册用户在数据库中的持久化模型
type User struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// Name 是用户的显示名称
	Name string `gorm:"not null" json:"name"`

	// Email 是用户的登录标识，全局唯一
	Email string `gorm:"uniqueIndex;not null;type:varchar(100)" json:"email"`

	// PasswordHash 存储bcrypt加盐哈希，绝不存储明文密码
	PasswordHash string `gorm:"not null" json:"-"`

	// IsAdmin 标记该用户是否拥有管理权限
	IsAdmin bool `gorm:"default:false" json:"is_admin"`
}
