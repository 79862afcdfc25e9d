package health

import (
	"context"
	"fmt"
	"time"

	"github.com/Cazhime/online-voting-backend/internal/platform/database"
	"github.com/Cazhime/online-voting-backend/internal/platform/startup"
	"github.com/Cazhime/online-voting-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// pingRedis 带超时地探测一次Redis连接
func pingRedis() error {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()
	return database.RDB.Ping(ctx).Err()
}

// StartRedisHealthCheck 启动后台的Redis健康检查循环。
// 探测失败时把缓存层标记为不可用，让各模块退回数据库直读；
// 探测恢复时先重建缓存，再把状态翻回可用。
// 它应该在一个独立的Goroutine中运行，直到收到停机信号。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()

	if database.RDB == nil {
		fmt.Println("健康检查: 未配置Redis客户端，检查器退出。")
		return
	}

	wasHealthy := database.IsRedisHealthy()

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			// 收到停机信号
			return
		}

		err := pingRedis()
		if err != nil {
			if wasHealthy {
				fmt.Printf("健康检查: Redis探测失败: %v\n", err)
			}
			database.UpdateRedisStatus(false)
			wasHealthy = false
			continue
		}

		if !wasHealthy {
			// 恢复顺序很重要：先重建缓存内容，再宣布可用。
			// 中途Redis再次挂掉时保持不可用状态，等下一轮重试。
			database.UpdateRedisStatus(true)
			if rebuildErr := startup.RewarmCaches(); rebuildErr != nil {
				fmt.Printf("健康检查: 缓存重建失败，维持降级状态: %v\n", rebuildErr)
				database.UpdateRedisStatus(false)
				continue
			}
			wasHealthy = true
		}
	}
}
