package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Cazhime/online-voting-backend/api"
	"github.com/Cazhime/online-voting-backend/internal/platform/config"
	"github.com/Cazhime/online-voting-backend/internal/platform/database"
	"github.com/Cazhime/online-voting-backend/internal/platform/health"
	"github.com/Cazhime/online-voting-backend/internal/platform/shutdown"
	"github.com/Cazhime/online-voting-backend/internal/platform/startup"
	"github.com/Cazhime/online-voting-backend/pkg/lifecycle"
	"github.com/Cazhime/online-voting-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env用于本地开发时覆盖配置，文件不存在不算错误
	_ = godotenv.Load(".env")

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	token.Configure(cfg.Auth.Secret, cfg.Auth.TokenTTLMinutes)
	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)

	// 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 启动后台的持续健康检查器
	manager := lifecycle.NewManager()
	healthHandle, err := manager.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(fmt.Sprintf("无法注册健康检查服务: %v", err))
	}
	go health.StartRedisHealthCheck(healthHandle)

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Println("服务器已准备就绪，开始监听 " + cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 阻塞等待停机信号并执行优雅停机
	coordinator := shutdown.NewCoordinator(manager)
	coordinator.ListenForSignalsAndShutdown(server)
}
