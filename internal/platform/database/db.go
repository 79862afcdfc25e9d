package database

import (
	"fmt"
	"log"
	"os"

	"github.com/Cazhime/online-voting-backend/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例，供项目其他部分使用
var DB *gorm.DB

// InitDB 根据配置初始化数据库连接
func InitDB(cfg config.DatabaseConfig) {
	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	gormCfg := &gorm.Config{
		Logger: newLogger,
		// 让GORM把驱动层的唯一约束冲突翻译成gorm.ErrDuplicatedKey，
		// 投票台账依赖这个翻译来兜底"每人每场只投一票"的约束
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Postgres.DSN)
	default:
		dialector = sqlite.Open(cfg.Sqlite.Path)
	}

	var err error
	DB, err = gorm.Open(dialector, gormCfg)
	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}
