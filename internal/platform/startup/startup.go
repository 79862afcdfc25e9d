package startup

import (
	"fmt"

	"github.com/Cazhime/online-voting-backend/internal/election"
	"github.com/Cazhime/online-voting-backend/internal/platform/database"
	"github.com/Cazhime/online-voting-backend/internal/platform/metadata"
	"github.com/Cazhime/online-voting-backend/internal/user"
	"github.com/Cazhime/online-voting-backend/internal/vote"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// 按依赖顺序驱动各模块完成建表、播种和缓存预热。
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if err := user.PrimeDB(); err != nil {
		return err
	}
	if err := election.PrimeCachedDB(); err != nil {
		return err
	}
	if err := vote.PrimeDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RewarmCaches 在Redis从故障中恢复后重建缓存内容。
// 重建期间持有模块写锁，避免读到半成品缓存。
func RewarmCaches() error {
	if !database.IsRedisHealthy() {
		return fmt.Errorf("Redis当前不可用，无法重建缓存")
	}

	fmt.Println("开始缓存热重建...")

	election.LockRepository()
	err := election.WarmupCache()
	election.UnlockRepository()
	if err != nil {
		return err
	}

	fmt.Println("缓存热重建完成。")
	return nil
}
