package results

// --- Redis 键名常量 ---

const (
	// TallyKey 是一个 Redis Hash 的键，用于缓存已结束选举的计票结果。
	// Field: 选举ID的十进制字符串
	// Value: map[候选人名称]票数 的JSON序列化字符串
	//
	// 只有已结束的选举才会被写入，票数不会再变化，缓存无需失效。
	TallyKey = "results:tally"
)
