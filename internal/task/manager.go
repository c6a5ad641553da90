package task

import (
	"github.com/Anamiiikka/fundhive/internal/config"
	"github.com/Anamiiikka/fundhive/internal/logger"
	"github.com/Anamiiikka/fundhive/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// Manager 后台任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	store     logic.ProjectStore
	config    *config.Config
}

// NewManager 创建任务管理器
func NewManager(store logic.ProjectStore, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		store:     store,
		config:    cfg,
	}
}

// Start 注册任务并启动调度器
func Start(store logic.ProjectStore, cfg *config.Config) *Manager {
	manager := NewManager(store, cfg)
	manager.RegisterJobs()
	manager.scheduler.Start()
	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	m.registerReconcileJob()
}

func (m *Manager) registerReconcileJob() {
	job := NewReconcileJob(m.store, m.config.Funding)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
}
