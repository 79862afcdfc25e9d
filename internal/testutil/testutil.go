package testutil

import (
	"fmt"
	"testing"

	"github.com/Cazhime/online-voting-backend/internal/platform/database"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB 为一个测试用例准备独立的内存SQLite数据库，
// 并把全局的database.DB指向它。测试结束后连接自动释放。
//
// Redis在测试中保持未初始化，依赖缓存的代码会走数据库直读路径。
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 每个测试用例使用独立的共享内存库，互不串数据
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// 与生产配置保持一致，唯一约束冲突翻译成gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("无法打开测试数据库: %v", err)
	}

	// SQLite对并发写入支持有限，串行化连接池让并发测试不会碰到SQLITE_BUSY
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("无法获取底层连接池: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	database.DB = db
	return db
}
