package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Cazhime/online-voting-backend/internal/election"
	"github.com/Cazhime/online-voting-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// ErrResultsNotAvailable 表示选举尚未结束，计票结果还不可见
var ErrResultsNotAvailable = errors.New("选举尚未结束，暂不公布结果")

// Tally 统计一场已结束选举的每位候选人得票数。
// 选举结束之前严格返回ErrResultsNotAvailable；
// 没有得票的候选人也会出现在结果中，计数为0。
func Tally(electionID uint) (map[string]int64, error) {
	e, err := election.GetElectionByID(electionID)
	if err != nil {
		return nil, err
	}

	if !e.HasEndedAt(time.Now()) {
		return nil, ErrResultsNotAvailable
	}

	// 已结束选举的票数不再变化，优先读缓存
	field := strconv.FormatUint(uint64(electionID), 10)
	if database.IsRedisHealthy() {
		cached, err := database.RDB.HGet(database.Ctx, TallyKey, field).Result()
		if err == nil {
			var tally map[string]int64
			if jsonErr := json.Unmarshal([]byte(cached), &tally); jsonErr == nil {
				return tally, nil
			}
		} else if err != redis.Nil {
			database.UpdateRedisStatus(false)
		}
	}

	tally, err := tallyFromDB(electionID)
	if err != nil {
		return nil, err
	}

	// 尽力回填缓存，失败不影响本次请求
	if database.IsRedisHealthy() {
		if payload, err := json.Marshal(tally); err == nil {
			_ = database.RDB.HSet(database.Ctx, TallyKey, field, payload).Err()
		}
	}

	return tally, nil
}

// tallyRow 是分组计票查询的扫描目标
type tallyRow struct {
	Name  string
	Count int64
}

// tallyFromDB 在数据库中按候选人分组计票。
// 左连接保证零票候选人也有一行。
func tallyFromDB(electionID uint) (map[string]int64, error) {
	var rows []tallyRow
	err := database.DB.Table("candidates").
		Select("candidates.name AS name, COUNT(votes.id) AS count").
		Joins("LEFT JOIN votes ON votes.candidate_id = candidates.id AND votes.deleted_at IS NULL").
		Where("candidates.election_id = ? AND candidates.deleted_at IS NULL", electionID).
		Group("candidates.id, candidates.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("无法统计票数: %w", err)
	}

	tally := make(map[string]int64, len(rows))
	for _, row := range rows {
		tally[row.Name] = row.Count
	}
	return tally, nil
}
