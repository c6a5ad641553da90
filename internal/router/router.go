package router

import (
	"github.com/Anamiiikka/fundhive/internal/ai"
	"github.com/Anamiiikka/fundhive/internal/config"
	"github.com/Anamiiikka/fundhive/internal/handler"
	"github.com/Anamiiikka/fundhive/internal/logic"
	"github.com/Anamiiikka/fundhive/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Store 路由层需要的完整存储能力
type Store interface {
	logic.ProjectStore
	logic.UserStore
}

// Deps 路由依赖
type Deps struct {
	Store    Store
	Uploader storage.Uploader
	AIClient *ai.Client
	Idem     *logic.Idempotency
	Config   *config.Config
}

// Setup 组装业务逻辑与路由
func Setup(deps Deps) *gin.Engine {
	cfg := deps.Config

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.CORS.Origin},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			handler.HeaderUserID, handler.HeaderUserPicture, handler.HeaderIdempotencyKey,
		},
	}))
	r.MaxMultipartMemory = cfg.Storage.MaxUploadMB << 20

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "fundhive",
		})
	})

	// 本地存储模式下静态提供上传的媒体文件
	if cfg.Storage.Driver == "local" {
		r.Static("/uploads", cfg.Storage.LocalDir)
	}

	userLogic := logic.NewUserLogic(deps.Store)
	projectLogic := logic.NewProjectLogic(deps.Store, userLogic)
	fundingLogic := logic.NewFundingLogic(deps.Store, cfg.Funding, deps.Idem)
	negotiationLogic := logic.NewNegotiationLogic(deps.Store, fundingLogic)
	engagementLogic := logic.NewEngagementLogic(deps.Store)

	projectHandler := handler.NewProjectHandler(projectLogic, deps.Uploader, cfg.Storage.MaxUploadMB)
	fundingHandler := handler.NewFundingHandler(fundingLogic)
	negotiationHandler := handler.NewNegotiationHandler(negotiationLogic)
	engagementHandler := handler.NewEngagementHandler(engagementLogic)
	analysisHandler := handler.NewAnalysisHandler(deps.AIClient)

	api := r.Group("/api")
	{
		api.POST("/projects", projectHandler.CreateProject)
		api.GET("/projects", projectHandler.GetProjects)
		api.GET("/projects/:id", projectHandler.GetProject)

		api.DELETE("/posts/:id", projectHandler.DeleteProject)
		api.POST("/posts/:id/like", engagementHandler.Like)
		api.POST("/posts/:id/comments", engagementHandler.Comment)
		api.POST("/posts/:id/invest", fundingHandler.Invest)
		api.POST("/posts/:id/crowdfund", fundingHandler.Crowdfund)
		api.POST("/posts/:id/negotiate", negotiationHandler.Negotiate)
		api.POST("/posts/:id/negotiate/:requestId/respond", negotiationHandler.Respond)
		api.POST("/posts/:id/release-escrow", fundingHandler.ReleaseEscrow)

		api.POST("/ai-analysis", analysisHandler.Analyze)
	}

	return r
}
