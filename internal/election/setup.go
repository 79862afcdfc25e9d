package election

import (
	"fmt"
	"time"

	"github.com/Cazhime/online-voting-backend/internal/platform/database"
	"github.com/Cazhime/online-voting-backend/internal/platform/metadata"
	"gorm.io/gorm"
)

// demoSeedVersion 是当前演示数据的版本号。
// 修改演示数据后递增版本号，下一次启动会重新播种。
const demoSeedVersion = "1"

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Election{}, &Candidate{}); err != nil {
		return fmt.Errorf("无法迁移election表: %w", err)
	}
	fmt.Println("Election数据库表迁移成功。")
	return nil
}

// seedDemoData 在首次启动时播种一场演示选举，方便本地联调。
// 已播种过相同版本时跳过。
func seedDemoData() error {
	seeded, err := metadata.GetValue(database.DB, metadata.DemoSeedVersionKey)
	if err != nil {
		return fmt.Errorf("无法读取播种版本: %w", err)
	}
	if seeded == demoSeedVersion {
		return nil
	}

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		demo := Election{
			Name:      "演示选举",
			StartTime: now,
			EndTime:   now.Add(7 * 24 * time.Hour),
		}
		if err := tx.Create(&demo).Error; err != nil {
			return err
		}
		for _, name := range []string{"候选人甲", "候选人乙", "候选人丙"} {
			if err := tx.Create(&Candidate{Name: name, ElectionID: demo.ID}).Error; err != nil {
				return err
			}
		}
		return metadata.SetValue(tx, metadata.DemoSeedVersionKey, demoSeedVersion)
	})
	if err != nil {
		return fmt.Errorf("播种演示数据失败: %w", err)
	}

	fmt.Println("演示选举播种完成。")
	return nil
}

// PrimeCachedDB 是election模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := seedDemoData(); err != nil {
		return err
	}
	if database.IsRedisHealthy() {
		if err := WarmupCache(); err != nil {
			return err
		}
	}
	return nil
}
