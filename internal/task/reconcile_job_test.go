package task

import (
	"context"
	"testing"
	"time"

	"github.com/Anamiiikka/fundhive/internal/config"
	"github.com/Anamiiikka/fundhive/internal/model"
	"github.com/Anamiiikka/fundhive/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditProject(goal, counter float64, txs []model.EscrowTransaction) *model.Project {
	return &model.Project{
		ID:                 uuid.NewString(),
		OwnerID:            "owner-1",
		Title:              "Solar kits",
		FundingGoal:        decimal.NewFromFloat(goal),
		CurrentFunding:     decimal.NewFromFloat(counter),
		Status:             model.ProjectStatusActive,
		EscrowTransactions: txs,
	}
}

func escrowTx(amount float64, status model.EscrowStatus) model.EscrowTransaction {
	return model.EscrowTransaction{
		ContributorID: "backer-1",
		Amount:        decimal.NewFromFloat(amount),
		Type:          model.ContributionCrowdfunding,
		Status:        status,
	}
}

func TestAuditConsistentProject(t *testing.T) {
	job := NewReconcileJob(repository.NewMemoryStore(), config.FundingConfig{})

	p := auditProject(1000, 300, []model.EscrowTransaction{
		escrowTx(100, model.EscrowStatusPending),
		escrowTx(200, model.EscrowStatusPending),
	})
	assert.True(t, job.Audit(p))

	// 没有任何出资的新项目也应一致
	assert.True(t, job.Audit(auditProject(1000, 0, nil)))
}

func TestAuditDetectsCounterDrift(t *testing.T) {
	job := NewReconcileJob(repository.NewMemoryStore(), config.FundingConfig{})

	p := auditProject(1000, 500, []model.EscrowTransaction{
		escrowTx(100, model.EscrowStatusPending),
	})
	assert.False(t, job.Audit(p))
}

func TestAuditDetectsPendingAfterGoal(t *testing.T) {
	job := NewReconcileJob(repository.NewMemoryStore(), config.FundingConfig{})

	// 计数器与账本一致，但达标项目仍有未释放的托管记录
	p := auditProject(1000, 1200, []model.EscrowTransaction{
		escrowTx(700, model.EscrowStatusReleased),
		escrowTx(500, model.EscrowStatusPending),
	})
	assert.False(t, job.Audit(p))

	released := auditProject(1000, 1200, []model.EscrowTransaction{
		escrowTx(700, model.EscrowStatusReleased),
		escrowTx(500, model.EscrowStatusReleased),
	})
	assert.True(t, job.Audit(released))
}

func TestExecuteScansAllProjects(t *testing.T) {
	store := repository.NewMemoryStore()
	for i := 0; i < 20; i++ {
		p := auditProject(1000, 100, []model.EscrowTransaction{
			escrowTx(100, model.EscrowStatusPending),
		})
		p.StartDate = time.Now()
		require.NoError(t, store.CreateProject(context.Background(), p))
	}

	job := NewReconcileJob(store, config.FundingConfig{ReconcileIntervalSeconds: 60})
	// 仅验证一轮扫描能在协程池上顺利跑完
	job.Execute()
}

func TestReconcileIntervalFallback(t *testing.T) {
	job := NewReconcileJob(repository.NewMemoryStore(), config.FundingConfig{})
	assert.Equal(t, 5*time.Minute, job.interval)

	job = NewReconcileJob(repository.NewMemoryStore(), config.FundingConfig{ReconcileIntervalSeconds: 30})
	assert.Equal(t, 30*time.Second, job.interval)
}
