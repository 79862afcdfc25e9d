package vote

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Cazhime/online-voting-backend/internal/election"
	"github.com/Cazhime/online-voting-backend/internal/platform/database"
	"github.com/Cazhime/online-voting-backend/internal/testutil"
	"github.com/Cazhime/online-voting-backend/internal/user"
	"gorm.io/gorm"
)

func setupVoteDB(t *testing.T) {
	t.Helper()
	testutil.SetupTestDB(t)
	err := database.DB.AutoMigrate(&user.User{}, &election.Election{}, &election.Candidate{}, &Vote{})
	if err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
}

// createVoter 创建一个测试用户并返回其ID
func createVoter(t *testing.T, email string) uint {
	t.Helper()
	u, err := user.CreateUser("测试用户", email, "secret123")
	if err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return u.ID
}

// createElectionWindow 创建一场带两名候选人的选举，窗口为 [now+startOffset, now+endOffset]
func createElectionWindow(t *testing.T, startOffset, endOffset time.Duration) (*election.Election, []election.CachedCandidate) {
	t.Helper()
	now := time.Now()
	e, err := election.CreateElection("测试选举", now.Add(startOffset), now.Add(endOffset), []string{"候选人A", "候选人B"})
	if err != nil {
		t.Fatalf("创建测试选举失败: %v", err)
	}
	candidates, err := election.ListCandidates(e.ID)
	if err != nil {
		t.Fatalf("查询测试候选人失败: %v", err)
	}
	return e, candidates
}

func TestCastVoteSuccess(t *testing.T) {
	setupVoteDB(t)
	voterID := createVoter(t, "voter@example.com")
	e, candidates := createElectionWindow(t, -time.Hour, time.Hour)

	v, err := CastVote(voterID, e.ID, candidates[0].ID)
	if err != nil {
		t.Fatalf("投票失败: %v", err)
	}
	if v.ReceiptID == "" {
		t.Error("投票成功后应返回回执编号")
	}

	voted, err := HasVoted(voterID, e.ID)
	if err != nil {
		t.Fatalf("查询投票状态失败: %v", err)
	}
	if !voted {
		t.Error("投票后HasVoted应返回true")
	}
}

func TestCastVotePreconditions(t *testing.T) {
	setupVoteDB(t)
	voterID := createVoter(t, "voter@example.com")

	openElection, openCandidates := createElectionWindow(t, -time.Hour, time.Hour)
	notStarted, notStartedCandidates := createElectionWindow(t, time.Hour, 2*time.Hour)
	ended, endedCandidates := createElectionWindow(t, -2*time.Hour, -time.Hour)

	// 属于另一场选举的候选人，用于验证候选人归属检查
	foreignCandidate := notStartedCandidates[0]

	tests := []struct {
		name        string
		electionID  uint
		candidateID uint
		wantErr     error
	}{
		{"选举不存在", 9999, openCandidates[0].ID, election.ErrElectionNotFound},
		{"选举尚未开始", notStarted.ID, notStartedCandidates[0].ID, ErrElectionNotActive},
		{"选举已经结束", ended.ID, endedCandidates[0].ID, ErrElectionNotActive},
		{"候选人不属于该选举", openElection.ID, foreignCandidate.ID, ErrCandidateMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CastVote(voterID, tt.electionID, tt.candidateID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, 期望 %v", err, tt.wantErr)
			}
		})
	}

	// 所有失败路径都不允许写入任何投票记录
	var count int64
	if err := database.DB.Model(&Vote{}).Count(&count).Error; err != nil {
		t.Fatalf("统计投票记录失败: %v", err)
	}
	if count != 0 {
		t.Errorf("失败的投票留下了 %d 条记录, 期望 0", count)
	}
}

func TestCastVoteAlreadyVoted(t *testing.T) {
	setupVoteDB(t)
	voterID := createVoter(t, "voter@example.com")
	e, candidates := createElectionWindow(t, -time.Hour, time.Hour)

	if _, err := CastVote(voterID, e.ID, candidates[0].ID); err != nil {
		t.Fatalf("首次投票失败: %v", err)
	}

	// 第二次投票换一个候选人也必须被拒绝
	_, err := CastVote(voterID, e.ID, candidates[1].ID)
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("err = %v, 期望 ErrAlreadyVoted", err)
	}

	// 台账内容保持不变：仍然只有一条记录，投的还是第一个候选人
	var votes []Vote
	if err := database.DB.Find(&votes).Error; err != nil {
		t.Fatalf("查询投票记录失败: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("投票记录数量 = %d, 期望 1", len(votes))
	}
	if votes[0].CandidateID != candidates[0].ID {
		t.Errorf("投票记录指向候选人 %d, 期望 %d", votes[0].CandidateID, candidates[0].ID)
	}

	// 同一用户在另一场选举中仍然可以投票
	other, otherCandidates := createElectionWindow(t, -time.Hour, time.Hour)
	if _, err := CastVote(voterID, other.ID, otherCandidates[0].ID); err != nil {
		t.Errorf("另一场选举投票失败: %v", err)
	}
}

func TestCastVoteConcurrent(t *testing.T) {
	setupVoteDB(t)
	voterID := createVoter(t, "voter@example.com")
	e, candidates := createElectionWindow(t, -time.Hour, time.Hour)

	// 同一个用户并发提交多次投票，最终只允许一条记录落库
	const attempts = 8
	var successCount, alreadyVotedCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := CastVote(voterID, e.ID, candidates[idx%len(candidates)].ID)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrAlreadyVoted):
				alreadyVotedCount.Add(1)
			default:
				t.Errorf("意外的投票错误: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("成功投票次数 = %d, 期望 1", successCount.Load())
	}
	if alreadyVotedCount.Load() != attempts-1 {
		t.Errorf("重复投票拒绝次数 = %d, 期望 %d", alreadyVotedCount.Load(), attempts-1)
	}

	var count int64
	if err := database.DB.Model(&Vote{}).Where("user_id = ? AND election_id = ?", voterID, e.ID).Count(&count).Error; err != nil {
		t.Fatalf("统计投票记录失败: %v", err)
	}
	if count != 1 {
		t.Errorf("落库的投票记录 = %d, 期望 1", count)
	}
}

func TestTranslateStorageError(t *testing.T) {
	// 唯一约束冲突必须翻译成和预检查一致的业务错误
	if err := translateStorageError(gorm.ErrDuplicatedKey); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("唯一约束冲突翻译为 %v, 期望 ErrAlreadyVoted", err)
	}

	// 其他存储错误保持可追溯的包装
	storageErr := errors.New("disk is full")
	if err := translateStorageError(storageErr); !errors.Is(err, storageErr) {
		t.Errorf("存储错误未被正确包装: %v", err)
	}
}

func TestUniqueIndexBackstop(t *testing.T) {
	setupVoteDB(t)
	voterID := createVoter(t, "voter@example.com")
	e, candidates := createElectionWindow(t, -time.Hour, time.Hour)

	// 绕过预检查直接写第二行，验证存储层约束是最终仲裁者
	first := Vote{ReceiptID: "receipt-1", UserID: voterID, ElectionID: e.ID, CandidateID: candidates[0].ID}
	if err := database.DB.Create(&first).Error; err != nil {
		t.Fatalf("写入第一条记录失败: %v", err)
	}

	second := Vote{ReceiptID: "receipt-2", UserID: voterID, ElectionID: e.ID, CandidateID: candidates[1].ID}
	err := database.DB.Create(&second).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("err = %v, 期望 gorm.ErrDuplicatedKey", err)
	}
	if got := translateStorageError(err); !errors.Is(got, ErrAlreadyVoted) {
		t.Errorf("约束冲突翻译为 %v, 期望 ErrAlreadyVoted", got)
	}
}
