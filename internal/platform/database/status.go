package database

import (
	"fmt"
	"sync"
)

// statusManager 负责线程安全地管理和提供缓存层的健康状态。
type statusManager struct {
	mu             sync.RWMutex
	isRedisHealthy bool
}

// 全局的状态管理器实例
// Redis在InitRedis成功之前视为不可用
var globalStatus = &statusManager{}

// IsRedisHealthy 返回当前Redis的健康状态。
// 各个模块在走缓存快路径之前都应该先询问这里。
func IsRedisHealthy() bool {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return RDB != nil && globalStatus.isRedisHealthy
}

// UpdateRedisStatus 用于线程安全地更新健康状态。
func UpdateRedisStatus(isHealthy bool) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()

	// 只有当状态发生变化时才打印日志
	if globalStatus.isRedisHealthy != isHealthy {
		globalStatus.isRedisHealthy = isHealthy
		if isHealthy {
			fmt.Println("健康检查: Redis服务状态已更新为 [可用]")
		} else {
			fmt.Println("健康检查警告: Redis服务状态已更新为 [不可用]")
		}
	}
}
