package api

import (
	"github.com/Cazhime/online-voting-backend/internal/election"
	"github.com/Cazhime/online-voting-backend/internal/results"
	"github.com/Cazhime/online-voting-backend/internal/user"
	"github.com/Cazhime/online-voting-backend/internal/vote"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	// 认证相关的公开路由
	router.POST("/register", user.Register)
	router.POST("/login", user.Login)
	router.GET("/logout", user.RequireAuth(), user.Logout)

	// 管理员路由
	router.GET("/admin", user.RequireAuth(), user.RequireAdmin(), user.AdminOverview)

	api := router.Group("/api")
	api.Use(user.RequireAuth())
	{
		// 选举与候选人相关的只读路由
		api.GET("/elections", election.GetElections)
		api.GET("/elections/:id/candidates", election.GetCandidates)

		// 投票相关的路由
		api.POST("/vote", vote.SubmitVote)

		// 计票结果相关的路由
		api.GET("/elections/:id/results", results.GetResults)

		// 管理员创建选举
		admin := api.Group("/admin")
		admin.Use(user.RequireAdmin())
		{
			admin.POST("/elections", election.CreateElectionHandler)
		}
	}
}
