package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// strawpoll 是仓库里保留的第一代简易投票应用:
// 单表存票，不需要账号，投票无条件入库，结果随时可见。
// 它与主服务不共享数据库，适合临时的即兴投票场景。

var db *gorm.DB

// StrawVote 定义了简易投票的单表模型
type StrawVote struct {
	gorm.Model

	// Candidate 是被投对象的名称，自由文本
	Candidate string `gorm:"not null;index" json:"candidate"`
}

// connectDatabase 打开SQLite数据库并完成建表
func connectDatabase(path string) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			LogLevel: logger.Silent,
			Colorful: true,
		},
	)

	var err error
	db, err = gorm.Open(sqlite.Open(path), &gorm.Config{Logger: newLogger})
	if err != nil {
		panic("连接数据库失败: " + err.Error())
	}

	if err := db.AutoMigrate(&StrawVote{}); err != nil {
		panic("迁移votes表失败: " + err.Error())
	}
	fmt.Println("数据库准备就绪。")
}

// submitVote 无条件记录一票，然后重定向回首页
func submitVote(c *gin.Context) {
	candidate := c.PostForm("candidate")
	if candidate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少candidate字段"})
		return
	}

	if err := db.Create(&StrawVote{Candidate: candidate}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "记录投票失败"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// tallyRow 是分组计票查询的扫描目标
type tallyRow struct {
	Candidate string
	Count     int64
}

// getResults 返回按候选对象分组的票数，没有任何时间门槛
func getResults(c *gin.Context) {
	var rows []tallyRow
	err := db.Model(&StrawVote{}).
		Select("candidate, COUNT(*) AS count").
		Group("candidate").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计票数失败"})
		return
	}

	results := make(map[string]int64, len(rows))
	for _, row := range rows {
		results[row.Candidate] = row.Count
	}
	c.JSON(http.StatusOK, results)
}

func main() {
	_ = godotenv.Load(".env")

	dbPath := os.Getenv("STRAWPOLL_DB_PATH")
	if dbPath == "" {
		dbPath = "strawpoll.db"
	}
	address := os.Getenv("STRAWPOLL_ADDRESS")
	if address == "" {
		address = ":8081"
	}

	connectDatabase(dbPath)

	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "欢迎使用简易投票"})
	})
	router.POST("/vote", submitVote)
	router.GET("/results", getResults)

	log.Println("简易投票服务开始监听 " + address)
	if err := router.Run(address); err != nil {
		panic("Failed to start server: " + err.Error())
	}
}
