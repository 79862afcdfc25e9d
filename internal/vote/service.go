package vote

import (
	"errors"
	"fmt"
	"time"

	"github.com/Cazhime/online-voting-backend/internal/election"
	"github.com/Cazhime/online-voting-backend/internal/platform/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CastVote 是投票台账的核心函数，负责记录一次 (用户, 选举, 候选人) 投票。
//
// 前置条件按顺序检查，每一条失败都短路返回各自的哨兵错误:
//  1. 选举存在
//  2. 当前时刻落在投票窗口 [StartTime, EndTime] 内
//  3. 该用户在这场选举中尚未投票
//  4. 候选人属于这场选举
//
// 所有检查和写入在同一个事务中完成。预检查只负责给出友好的错误；
// 两个并发请求可能同时通过预检查，此时 (UserID, ElectionID) 的唯一索引
// 是正确性的兜底，约束冲突会被翻译回同一个ErrAlreadyVoted。
func CastVote(userID, electionID, candidateID uint) (*Vote, error) {
	newVote := Vote{
		ReceiptID:   uuid.NewString(),
		UserID:      userID,
		ElectionID:  electionID,
		CandidateID: candidateID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 1. 选举必须存在
		var e election.Election
		if err := tx.First(&e, electionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return election.ErrElectionNotFound
			}
			return fmt.Errorf("无法查询选举: %w", err)
		}

		// 2. 必须在投票窗口内
		if !e.IsActiveAt(time.Now()) {
			return ErrElectionNotActive
		}

		// 3. 每人每场只能投一票（预检查）
		var count int64
		if err := tx.Model(&Vote{}).
			Where("user_id = ? AND election_id = ?", userID, electionID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("无法检查投票记录: %w", err)
		}
		if count > 0 {
			return ErrAlreadyVoted
		}

		// 4. 候选人必须属于这场选举
		var cand election.Candidate
		if err := tx.Where("id = ? AND election_id = ?", candidateID, electionID).
			First(&cand).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCandidateMismatch
			}
			return fmt.Errorf("无法查询候选人: %w", err)
		}

		// 5. 写入唯一的一行投票记录，失败时整个事务回滚
		if err := tx.Create(&newVote).Error; err != nil {
			return translateStorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &newVote, nil
}

// translateStorageError 把存储层的错误翻译成业务错误。
// 唯一索引冲突对应"重复投票"，对调用方呈现和预检查相同的错误；
// 其他错误原样包装上抛。
func translateStorageError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyVoted
	}
	return fmt.Errorf("无法写入投票记录: %w", err)
}

// HasVoted 查询用户在指定选举中是否已经投票
func HasVoted(userID, electionID uint) (bool, error) {
	var count int64
	if err := database.DB.Model(&Vote{}).
		Where("user_id = ? AND election_id = ?", userID, electionID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("无法检查投票记录: %w", err)
	}
	return count > 0, nil
}
