package results

import (
	"errors"
	"testing"
	"time"

	"github.com/Cazhime/online-voting-backend/internal/election"
	"github.com/Cazhime/online-voting-backend/internal/platform/database"
	"github.com/Cazhime/online-voting-backend/internal/testutil"
	"github.com/Cazhime/online-voting-backend/internal/user"
	"github.com/Cazhime/online-voting-backend/internal/vote"
)

func setupResultsDB(t *testing.T) {
	t.Helper()
	testutil.SetupTestDB(t)
	err := database.DB.AutoMigrate(&user.User{}, &election.Election{}, &election.Candidate{}, &vote.Vote{})
	if err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
}

// endElection 将选举的结束时间改写到过去，模拟窗口关闭
func endElection(t *testing.T, electionID uint) {
	t.Helper()
	err := database.DB.Model(&election.Election{}).
		Where("id = ?", electionID).
		Update("end_time", time.Now().Add(-time.Second)).Error
	if err != nil {
		t.Fatalf("关闭选举失败: %v", err)
	}
}

func TestTallyGatedUntilElectionEnds(t *testing.T) {
	setupResultsDB(t)
	now := time.Now()
	e, err := election.CreateElection("进行中的选举", now.Add(-time.Hour), now.Add(time.Hour), []string{"甲", "乙"})
	if err != nil {
		t.Fatalf("创建选举失败: %v", err)
	}

	// 选举未结束时严格拒绝公布结果
	if _, err := Tally(e.ID); !errors.Is(err, ErrResultsNotAvailable) {
		t.Fatalf("err = %v, 期望 ErrResultsNotAvailable", err)
	}

	endElection(t, e.ID)

	// 结束后立即可以计票
	tally, err := Tally(e.ID)
	if err != nil {
		t.Fatalf("结束后计票失败: %v", err)
	}
	if len(tally) != 2 {
		t.Errorf("计票结果候选人数量 = %d, 期望 2", len(tally))
	}
}

func TestTallyElectionNotFound(t *testing.T) {
	setupResultsDB(t)

	_, err := Tally(9999)
	if !errors.Is(err, election.ErrElectionNotFound) {
		t.Errorf("err = %v, 期望 ErrElectionNotFound", err)
	}
}

func TestTallyScenario(t *testing.T) {
	setupResultsDB(t)

	// 场景: 窗口内的选举，候选人A和B，用户U给A投一票
	u, err := user.CreateUser("用户U", "u@example.com", "secret123")
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	now := time.Now()
	e, err := election.CreateElection("场景选举", now.Add(-time.Minute), now.Add(time.Hour), []string{"A", "B"})
	if err != nil {
		t.Fatalf("创建选举失败: %v", err)
	}
	candidates, err := election.ListCandidates(e.ID)
	if err != nil {
		t.Fatalf("查询候选人失败: %v", err)
	}

	if _, err := vote.CastVote(u.ID, e.ID, candidates[0].ID); err != nil {
		t.Fatalf("投票失败: %v", err)
	}

	// U再给B投票必须被拒绝，且不改变台账
	if _, err := vote.CastVote(u.ID, e.ID, candidates[1].ID); !errors.Is(err, vote.ErrAlreadyVoted) {
		t.Fatalf("err = %v, 期望 ErrAlreadyVoted", err)
	}

	endElection(t, e.ID)

	tally, err := Tally(e.ID)
	if err != nil {
		t.Fatalf("计票失败: %v", err)
	}

	// 零票的候选人也要出现在结果中
	if tally["A"] != 1 {
		t.Errorf("候选人A得票 = %d, 期望 1", tally["A"])
	}
	if count, ok := tally["B"]; !ok || count != 0 {
		t.Errorf("候选人B得票 = %d (存在=%v), 期望 0票且出现在结果中", count, ok)
	}
}
