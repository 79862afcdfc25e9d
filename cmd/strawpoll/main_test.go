package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStrawpoll(t *testing.T) *gin.Engine {
	t.Helper()

	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("无法打开测试数据库: %v", err)
	}
	if err := db.AutoMigrate(&StrawVote{}); err != nil {
		t.Fatalf("迁移votes表失败: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/vote", submitVote)
	r.GET("/results", getResults)
	return r
}

func postVote(r *gin.Engine, candidate string) *httptest.ResponseRecorder {
	form := url.Values{}
	if candidate != "" {
		form.Set("candidate", candidate)
	}
	req := httptest.NewRequest(http.MethodPost, "/vote", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStrawpollVoteAndResults(t *testing.T) {
	r := setupStrawpoll(t)

	// 简易变体没有任何门槛：同一对象可以被反复投票
	for _, candidate := range []string{"奶茶", "咖啡", "奶茶"} {
		if w := postVote(r, candidate); w.Code != http.StatusFound {
			t.Fatalf("投票返回 %d, 期望 302", w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/results", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("结果返回 %d", w.Code)
	}

	var results map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("解析结果失败: %v", err)
	}
	if results["奶茶"] != 2 || results["咖啡"] != 1 {
		t.Errorf("计票结果 = %v, 期望 奶茶:2 咖啡:1", results)
	}
}

func TestStrawpollMissingCandidate(t *testing.T) {
	r := setupStrawpoll(t)

	if w := postVote(r, ""); w.Code != http.StatusBadRequest {
		t.Errorf("缺少candidate字段返回 %d, 期望 400", w.Code)
	}
}
