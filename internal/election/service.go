package election

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Cazhime/online-voting-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	// ErrElectionNotFound 表示指定的选举不存在
	ErrElectionNotFound = errors.New("找不到指定的选举")

	// ErrInvalidWindow 表示投票窗口不合法（开始时间不早于结束时间）
	ErrInvalidWindow = errors.New("投票窗口不合法: 开始时间必须早于结束时间")

	// ErrNoCandidates 表示创建选举时没有提供足够的候选人
	ErrNoCandidates = errors.New("一场选举至少需要两名候选人")
)

// ListElections 返回所有选举，按创建顺序（主键顺序）排列。
// 只读操作，没有副作用。
func ListElections() ([]Election, error) {
	var elections []Election
	if err := database.DB.Order("id").Find(&elections).Error; err != nil {
		return nil, fmt.Errorf("无法查询选举列表: %w", err)
	}
	return elections, nil
}

// GetElectionByID 根据ID查询单场选举。
func GetElectionByID(id uint) (*Election, error) {
	var e Election
	if err := database.DB.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrElectionNotFound
		}
		return nil, fmt.Errorf("无法查询选举: %w", err)
	}
	return &e, nil
}

// ListCandidates 返回一场选举的候选人名单。
// 优先走Redis缓存的快路径，缓存不可用或未命中时回退到数据库。
func ListCandidates(electionID uint) ([]CachedCandidate, error) {
	if database.IsRedisHealthy() {
		RLockRepository()
		cached, err := database.RDB.HGet(database.Ctx, CandidatesKey, strconv.FormatUint(uint64(electionID), 10)).Result()
		RUnlockRepository()
		if err == nil {
			var list []CachedCandidate
			if jsonErr := json.Unmarshal([]byte(cached), &list); jsonErr == nil {
				return list, nil
			}
			// 缓存内容损坏时走数据库，并在下面重新回填
		} else if err != redis.Nil {
			database.UpdateRedisStatus(false)
		}
	}

	list, err := listCandidatesFromDB(electionID)
	if err != nil {
		return nil, err
	}

	// 尽力回填缓存，失败不影响本次请求
	if database.IsRedisHealthy() {
		_ = cacheCandidates(electionID, list)
	}

	return list, nil
}

// listCandidatesFromDB 直接从数据库读取候选人名单
func listCandidatesFromDB(electionID uint) ([]CachedCandidate, error) {
	var candidates []Candidate
	if err := database.DB.Where("election_id = ?", electionID).Order("id").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("无法查询候选人名单: %w", err)
	}

	list := make([]CachedCandidate, 0, len(candidates))
	for _, cand := range candidates {
		list = append(list, CachedCandidate{ID: cand.ID, Name: cand.Name})
	}
	return list, nil
}

// cacheCandidates 将一场选举的候选人名单写入Redis
func cacheCandidates(electionID uint, list []CachedCandidate) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("无法序列化候选人名单: %w", err)
	}

	LockRepository()
	defer UnlockRepository()
	if err := database.RDB.HSet(database.Ctx, CandidatesKey, strconv.FormatUint(uint64(electionID), 10), payload).Err(); err != nil {
		return fmt.Errorf("无法写入候选人缓存: %w", err)
	}
	return nil
}

// CreateElection 由管理员创建一场新选举及其候选人名单。
// 窗口校验在写入前完成，选举和候选人的写入在同一个事务中。
func CreateElection(name string, start, end time.Time, candidateNames []string) (*Election, error) {
	if !start.Before(end) {
		return nil, ErrInvalidWindow
	}
	if len(candidateNames) < 2 {
		return nil, ErrNoCandidates
	}

	newElection := Election{Name: name, StartTime: start, EndTime: end}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newElection).Error; err != nil {
			return fmt.Errorf("无法创建选举: %w", err)
		}
		for _, candidateName := range candidateNames {
			cand := Candidate{Name: candidateName, ElectionID: newElection.ID}
			if err := tx.Create(&cand).Error; err != nil {
				return fmt.Errorf("无法创建候选人: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 事务提交后刷新该选举的候选人缓存，失败只降级不报错
	if database.IsRedisHealthy() {
		if list, err := listCandidatesFromDB(newElection.ID); err == nil {
			_ = cacheCandidates(newElection.ID, list)
		}
	}

	return &newElection, nil
}

// WarmupCache 从数据库加载全部候选人名单，并预热到Redis中
func WarmupCache() error {
	var candidates []Candidate
	if err := database.DB.Order("id").Find(&candidates).Error; err != nil {
		return fmt.Errorf("无法从数据库读取候选人: %w", err)
	}

	if len(candidates) == 0 {
		fmt.Println("无现有候选人数据，无需预热候选人缓存。")
		return nil
	}

	// 按选举分组
	grouped := make(map[uint][]CachedCandidate)
	for _, cand := range candidates {
		grouped[cand.ElectionID] = append(grouped[cand.ElectionID], CachedCandidate{ID: cand.ID, Name: cand.Name})
	}

	// 使用Pipeline批量写入，先清空旧缓存确保数据一致性
	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, CandidatesKey)
	for electionID, list := range grouped {
		payload, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("无法序列化选举 %d 的候选人名单: %w", electionID, err)
		}
		pipe.HSet(database.Ctx, CandidatesKey, strconv.FormatUint(uint64(electionID), 10), payload)
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热候选人缓存失败: %w", err)
	}

	fmt.Printf("成功预热 %d 场选举的候选人名单到Redis。\n", len(grouped))
	return nil
}
