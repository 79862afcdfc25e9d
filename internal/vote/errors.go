package vote

import "errors"

var (
	// ErrElectionNotActive 表示当前时刻不在选举的投票窗口内
	ErrElectionNotActive = errors.New("选举不在投票时间内")

	// ErrAlreadyVoted 表示该用户在这场选举中已经投过票
	ErrAlreadyVoted = errors.New("您已经在这场选举中投过票")

	// ErrCandidateMismatch 表示候选人不属于指定的选举
	ErrCandidateMismatch = errors.New("候选人不属于这场选举")
)
