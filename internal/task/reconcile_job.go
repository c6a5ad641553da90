package task

import (
	"context"
	"sync"
	"time"

	"github.com/Anamiiikka/fundhive/internal/config"
	"github.com/Anamiiikka/fundhive/internal/logger"
	"github.com/Anamiiikka/fundhive/internal/logic"
	"github.com/Anamiiikka/fundhive/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
)

const reconcileWorkers = 8

// ReconcileJob 账本对账任务。
// 托管账本是事实来源，周期性核对 current_funding 计数器与账本合计，
// 并检查已达标项目是否仍有 pending 托管记录。
type ReconcileJob struct {
	store    logic.ProjectStore
	interval time.Duration
}

// NewReconcileJob 创建对账任务
func NewReconcileJob(store logic.ProjectStore, cfg config.FundingConfig) *ReconcileJob {
	interval := time.Duration(cfg.ReconcileIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ReconcileJob{store: store, interval: interval}
}

// GetName 任务名
func (j *ReconcileJob) GetName() string {
	return "ledger-reconcile"
}

// GetSchedule 调度定义
func (j *ReconcileJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute 执行一轮对账，每个项目的核对提交到协程池并行处理
func (j *ReconcileJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	projects, err := j.store.FindProjects(ctx, model.ProjectFilter{})
	if err != nil {
		logger.Error("Reconcile: failed to list projects: %v", err)
		return
	}

	pool, err := ants.NewPool(reconcileWorkers)
	if err != nil {
		logger.Error("Reconcile: failed to create worker pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var drifted int64
	var mu sync.Mutex
	for i := range projects {
		p := projects[i]
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if !j.Audit(&p) {
				mu.Lock()
				drifted++
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			logger.Error("Reconcile: failed to submit audit for project %s: %v", p.ID, err)
		}
	}
	wg.Wait()

	if drifted > 0 {
		logger.Warn("Reconcile finished: %d of %d projects drifted", drifted, len(projects))
	} else {
		logger.Debug("Reconcile finished: %d projects consistent", len(projects))
	}
}

// Audit 核对单个项目，一致返回 true
func (j *ReconcileJob) Audit(p *model.Project) bool {
	sum := decimal.Zero
	pending := 0
	for _, tx := range p.EscrowTransactions {
		sum = sum.Add(tx.Amount)
		if tx.Status == model.EscrowStatusPending {
			pending++
		}
	}

	ok := true
	if !sum.Equal(p.CurrentFunding) {
		logger.Warn("Ledger drift on project %s: counter=$%s ledger=$%s",
			p.ID, p.CurrentFunding.StringFixed(2), sum.StringFixed(2))
		ok = false
	}
	if p.GoalReached() && pending > 0 {
		logger.Warn("Project %s reached its goal but still has %d pending escrow transactions", p.ID, pending)
		ok = false
	}
	return ok
}
