package election

import (
	"time"

	"gorm.io/gorm"
)

// Election 定义了数据库中选举的数据结构。
// 一场选举是一个有界的投票窗口，关联一组候选人。
type Election struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// Name 是选举的名称
	Name string `gorm:"not null" json:"name"`

	// StartTime 是投票窗口的开始时间
	StartTime time.Time `gorm:"not null" json:"start_time"`

	// EndTime 是投票窗口的结束时间，创建时保证晚于StartTime
	EndTime time.Time `gorm:"not null" json:"end_time"`
}

// Candidate 定义了候选人的数据结构，每个候选人只属于一场选举
type Candidate struct {
	gorm.Model

	// Name 是候选人的名称
	Name string `gorm:"not null" json:"name"`

	// ElectionID 是所属选举的外键
	ElectionID uint `gorm:"not null;index" json:"election_id"`
}

// IsActiveAt 判断给定时刻是否落在投票窗口内（两端均含）
func (e *Election) IsActiveAt(t time.Time) bool {
	return !t.Before(e.StartTime) && !t.After(e.EndTime)
}

// HasEndedAt 判断给定时刻选举是否已经结束
func (e *Election) HasEndedAt(t time.Time) bool {
	return !t.Before(e.EndTime)
}
