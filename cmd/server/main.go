package main

import (
	"context"
	"time"

	"github.com/Anamiiikka/fundhive/internal/ai"
	"github.com/Anamiiikka/fundhive/internal/config"
	"github.com/Anamiiikka/fundhive/internal/logger"
	"github.com/Anamiiikka/fundhive/internal/logic"
	"github.com/Anamiiikka/fundhive/internal/repository"
	"github.com/Anamiiikka/fundhive/internal/router"
	"github.com/Anamiiikka/fundhive/internal/storage"
	"github.com/Anamiiikka/fundhive/internal/task"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Output: cfg.Log.Output,
		File:   cfg.Log.File,
	}); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化存储
	var store router.Store
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("Using in-memory store, data will not survive a restart")
		store = repository.NewMemoryStore()
	default:
		db, err := repository.Init(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to initialize database: %v", err)
		}
		store = repository.NewStore(db, time.Duration(cfg.Database.TimeoutSeconds)*time.Second)
	}

	// 初始化幂等检查（可选）
	var idem *logic.Idempotency
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		idem = logic.NewIdempotency(client, time.Duration(cfg.Redis.IdempotencyTTLSeconds)*time.Second)
	}

	// 初始化媒体存储
	var uploader storage.Uploader
	switch cfg.Storage.Driver {
	case "s3":
		s3Uploader, err := storage.NewS3Uploader(context.Background(), cfg.Storage)
		if err != nil {
			logger.Fatal("Failed to initialize s3 uploader: %v", err)
		}
		uploader = s3Uploader
	default:
		localUploader, err := storage.NewLocalUploader(cfg.Storage.LocalDir, cfg.Storage.BaseURL)
		if err != nil {
			logger.Fatal("Failed to initialize local uploader: %v", err)
		}
		uploader = localUploader
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(router.Deps{
		Store:    store,
		Uploader: uploader,
		AIClient: ai.NewClient(cfg.AI),
		Idem:     idem,
		Config:   cfg,
	})

	// 启动账本对账任务
	manager := task.Start(store, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
