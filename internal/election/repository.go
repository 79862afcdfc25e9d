package election

import (
	"sync"
)

// --- Redis 键名常量 ---

const (
	// CandidatesKey 是一个 Redis Hash 的键，用于缓存每场选举的候选人名单。
	// Field: 选举ID的十进制字符串
	// Value: []CachedCandidate 的JSON序列化字符串
	CandidatesKey = "election:candidates"
)

// --- Redis 数据结构 ---

// CachedCandidate 定义了在候选人缓存中以JSON格式存储的条目。
// 候选人名单在选举创建后不再变化，适合整份缓存。
type CachedCandidate struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// --- 并发控制 ---

// repoMutex 是一个模块内部的、不导出的全局读写锁，
// 用于保护对本模块管理的Redis键的并发访问。
var repoMutex sync.RWMutex

// LockRepository 封装了对模块全局锁的写锁定操作。
func LockRepository() {
	repoMutex.Lock()
}

// UnlockRepository 封装了对模块全局锁的写解锁操作。
func UnlockRepository() {
	repoMutex.Unlock()
}

// RLockRepository 封装了对模块全局锁的读锁定操作。
func RLockRepository() {
	repoMutex.RLock()
}

// RUnlockRepository 封装了对模块全局锁的读解锁操作。
func RUnlockRepository() {
	repoMutex.RUnlock()
}
