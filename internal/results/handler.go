package results

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Cazhime/online-voting-backend/internal/election"
	"github.com/gin-gonic/gin"
)

// GetResults 返回一场已结束选举的计票结果
func GetResults(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "选举ID格式错误"})
		return
	}

	tally, err := Tally(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, election.ErrElectionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrResultsNotAvailable):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "获取计票结果失败"})
		}
		return
	}

	c.JSON(http.StatusOK, tally)
}
