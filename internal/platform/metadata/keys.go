package metadata

const (
	// DemoSeedVersionKey 记录演示数据的版本号。
	// 版本号没有变化时，启动阶段跳过重复播种。
	DemoSeedVersionKey = "demo_seed_version"
)
