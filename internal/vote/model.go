package vote

import "gorm.io/gorm"

// Vote 定义了单次投票记录的数据结构。
// 记录一旦写入就不可变更，也不存在删除路径。
type Vote struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	// CreatedAt 即投票时刻
	gorm.Model

	// ReceiptID 是本次投票的回执编号，对外暴露时使用它而不是自增主键
	ReceiptID string `gorm:"uniqueIndex;not null;type:varchar(36)" json:"receipt_id"`

	// UserID 是投票人的外键。
	// (UserID, ElectionID) 上的复合唯一索引是"每人每场只投一票"
	// 这一不变量在存储层的最终仲裁者。
	UserID uint `gorm:"not null;uniqueIndex:idx_votes_user_election" json:"user_id"`

	// ElectionID 是所属选举的外键
	ElectionID uint `gorm:"not null;uniqueIndex:idx_votes_user_election" json:"election_id"`

	// CandidateID 是被投候选人的外键
	CandidateID uint `gorm:"not null;index" json:"candidate_id"`
}
