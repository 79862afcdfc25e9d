package vote

import (
	"errors"
	"net/http"

	"github.com/Cazhime/online-voting-backend/internal/election"
	"github.com/Cazhime/online-voting-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// VoteRequestBody 定义了前端提交投票时，请求体的JSON结构
type VoteRequestBody struct {
	ElectionID  uint `json:"election_id" binding:"required"`
	CandidateID uint `json:"candidate_id" binding:"required"`
}

// SubmitVote 处理已登录用户提交的投票
func SubmitVote(c *gin.Context) {
	userID, ok := user.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	var body VoteRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	newVote, err := CastVote(userID, body.ElectionID, body.CandidateID)
	if err != nil {
		// 业务规则失败都在这里映射到明确的状态码，
		// 不让任何一类业务错误落进兜底的500
		switch {
		case errors.Is(err, election.ErrElectionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrElectionNotActive):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadyVoted):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrCandidateMismatch):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "处理投票失败"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "投票成功",
		"receipt_id": newVote.ReceiptID,
	})
}
