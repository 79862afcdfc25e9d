package election

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ElectionResponse 定义了选举列表接口的响应条目
type ElectionResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CandidateResponse 定义了候选人列表接口的响应条目
type CandidateResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CreateElectionRequestBody 定义了管理员创建选举的请求体JSON结构
type CreateElectionRequestBody struct {
	Name       string    `json:"name" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	Candidates []string  `json:"candidates" binding:"required,min=2"`
}

// parseElectionID 从路径参数中解析选举ID
func parseElectionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "选举ID格式错误"})
		return 0, false
	}
	return uint(id), true
}

// GetElections 返回全部选举及其投票窗口
func GetElections(c *gin.Context) {
	elections, err := ListElections()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取选举列表失败"})
		return
	}

	responses := make([]ElectionResponse, 0, len(elections))
	for _, e := range elections {
		responses = append(responses, ElectionResponse{
			ID:        e.ID,
			Name:      e.Name,
			StartTime: e.StartTime.Format(time.RFC3339),
			EndTime:   e.EndTime.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, responses)
}

// GetCandidates 返回一场选举的候选人名单
func GetCandidates(c *gin.Context) {
	electionID, ok := parseElectionID(c)
	if !ok {
		return
	}

	list, err := ListCandidates(electionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取候选人名单失败"})
		return
	}

	responses := make([]CandidateResponse, 0, len(list))
	for _, cand := range list {
		responses = append(responses, CandidateResponse{ID: cand.ID, Name: cand.Name})
	}
	c.JSON(http.StatusOK, responses)
}

// CreateElectionHandler 处理管理员创建选举的请求
func CreateElectionHandler(c *gin.Context) {
	var body CreateElectionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	newElection, err := CreateElection(body.Name, body.StartTime, body.EndTime, body.Candidates)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidWindow), errors.Is(err, ErrNoCandidates):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "创建选举失败"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "选举创建成功", "election_id": newElection.ID})
}
