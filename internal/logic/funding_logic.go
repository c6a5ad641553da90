package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/config"
	"github.com/Anamiiikka/fundhive/internal/logger"
	"github.com/Anamiiikka/fundhive/internal/model"
	"github.com/Anamiiikka/fundhive/internal/txid"
	"github.com/shopspring/decimal"
)

// FundingLogic 资金账本与托管引擎
type FundingLogic struct {
	store ProjectStore
	cfg   config.FundingConfig
	idem  *Idempotency // 可为 nil，此时不做重复提交检查
}

// NewFundingLogic 创建资金账本逻辑
func NewFundingLogic(store ProjectStore, cfg config.FundingConfig, idem *Idempotency) *FundingLogic {
	return &FundingLogic{store: store, cfg: cfg, idem: idem}
}

// Contribute 向项目出资。
// 校验全部通过后在一次原子更新内追加托管记录并累加融资额；
// 达到目标金额时同一次更新内释放该项目全部 pending 托管记录。
// 返回更新后的项目和本次生成的交易ID。
func (f *FundingLogic) Contribute(ctx context.Context, projectID, contributorID string, amount decimal.Decimal, kind model.ContributionKind, idemKey string) (*model.Project, string, error) {
	if !kind.Valid() {
		return nil, "", apperr.Validation("Unknown contribution type")
	}
	if contributorID == "" {
		return nil, "", apperr.Validation("User ID is required")
	}

	if f.idem != nil && idemKey != "" {
		if err := f.idem.Register(ctx, idemKey); err != nil {
			return nil, "", err
		}
	}

	var transactionID string
	project, err := f.store.UpdateProject(ctx, projectID, func(p *model.Project) error {
		if err := f.validateAmount(amount, kind); err != nil {
			return err
		}
		id, err := f.apply(p, contributorID, amount, kind)
		if err != nil {
			return err
		}
		transactionID = id
		return nil
	})
	if err != nil {
		// 被拒绝的出资不消耗幂等键，修正后的重试仍可使用同一键
		if f.idem != nil && idemKey != "" {
			f.idem.Release(ctx, idemKey)
		}
		return nil, "", err
	}

	logger.Info("Contribution %s of $%s (%s) applied to project %s, funding now $%s",
		transactionID, amount.StringFixed(2), kind, projectID, project.CurrentFunding.StringFixed(2))
	return project, transactionID, nil
}

// ReleaseEscrow 项目所有者手动释放全部 pending 托管记录
func (f *FundingLogic) ReleaseEscrow(ctx context.Context, projectID, requesterID string) (*model.Project, error) {
	project, err := f.store.UpdateProject(ctx, projectID, func(p *model.Project) error {
		if p.OwnerID != requesterID {
			return apperr.Forbidden("Only the project owner can release escrow")
		}
		releaseAll(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Escrow released for project %s by owner", projectID)
	return project, nil
}

// validateAmount 出资金额校验，按出资类型取最低限额
func (f *FundingLogic) validateAmount(amount decimal.Decimal, kind model.ContributionKind) error {
	if !amount.IsPositive() {
		return apperr.Validation("Contribution amount must be a positive number")
	}
	switch kind {
	case model.ContributionInvestment:
		if amount.LessThan(f.cfg.InvestmentMinDecimal()) {
			return apperr.Validation(fmt.Sprintf("Investment amount must be at least $%s", formatUSD(f.cfg.InvestmentMinDecimal())))
		}
	case model.ContributionCrowdfunding:
		if amount.LessThan(f.cfg.CrowdfundMinDecimal()) {
			return apperr.Validation(fmt.Sprintf("Crowdfunding amount must be at least $%s", formatUSD(f.cfg.CrowdfundMinDecimal())))
		}
	}
	return nil
}

// apply 将一笔已校验金额的出资计入账本。
// 协商接受路径也走这里，协商金额不受挂牌最低限额约束。
func (f *FundingLogic) apply(p *model.Project, contributorID string, amount decimal.Decimal, kind model.ContributionKind) (string, error) {
	if f.cfg.EnforceCap {
		if p.GoalReached() {
			return "", apperr.Conflict("Project is already fully funded")
		}
		if p.CurrentFunding.Add(amount).GreaterThan(p.FundingGoal) {
			return "", apperr.Validation(fmt.Sprintf(
				"Contribution exceeds the funding goal; maximum allowed is $%s", p.Remaining().StringFixed(2)))
		}
	}

	transactionID := txid.Generate(contributorID, p.ID, amount, string(kind))
	p.EscrowTransactions = append(p.EscrowTransactions, model.EscrowTransaction{
		ProjectID:     p.ID,
		ContributorID: contributorID,
		Amount:        amount,
		Type:          kind,
		TransactionID: transactionID,
		Status:        model.EscrowStatusPending,
	})
	p.CurrentFunding = p.CurrentFunding.Add(amount)

	// 达标时批量释放，不留 pending 记录
	if p.GoalReached() {
		releaseAll(p)
		p.Status = model.ProjectStatusFunded
	}
	return transactionID, nil
}

func releaseAll(p *model.Project) {
	for i := range p.EscrowTransactions {
		if p.EscrowTransactions[i].Status == model.EscrowStatusPending {
			p.EscrowTransactions[i].Status = model.EscrowStatusReleased
		}
	}
}

// formatUSD 金额展示，整数金额去掉小数并加千分位
func formatUSD(d decimal.Decimal) string {
	if !d.Equal(d.Truncate(0)) {
		return d.StringFixed(2)
	}
	s := d.Truncate(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
