package logic

import (
	"context"

	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/logger"
	"github.com/Anamiiikka/fundhive/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NegotiationLogic 投资条款协商流程
type NegotiationLogic struct {
	store   ProjectStore
	funding *FundingLogic
}

// NewNegotiationLogic 创建协商逻辑
func NewNegotiationLogic(store ProjectStore, funding *FundingLogic) *NegotiationLogic {
	return &NegotiationLogic{store: store, funding: funding}
}

// Propose 投资人发起自定义条款的协商请求
func (n *NegotiationLogic) Propose(ctx context.Context, projectID, investorID string, amount decimal.Decimal, equity float64) (*model.NegotiationRequest, error) {
	if investorID == "" {
		return nil, apperr.Validation("Investor ID is required")
	}
	if !amount.IsPositive() {
		return nil, apperr.Validation("Proposed amount must be a positive number")
	}

	request := model.NegotiationRequest{
		ID:             uuid.NewString(),
		ProjectID:      projectID,
		InvestorID:     investorID,
		ProposedAmount: amount,
		ProposedEquity: equity,
		Status:         model.NegotiationStatusPending,
	}
	_, err := n.store.UpdateProject(ctx, projectID, func(p *model.Project) error {
		p.NegotiationRequests = append(p.NegotiationRequests, request)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Negotiation request %s proposed on project %s: $%s for %.2f%% equity",
		request.ID, projectID, amount.StringFixed(2), equity)
	return &request, nil
}

// Respond 项目所有者回复协商请求，pending 状态只允许回复一次。
// 接受时按投资出资路径计入账本，股权比例仅作展示，不校验剩余股权。
func (n *NegotiationLogic) Respond(ctx context.Context, projectID, requestID, responderID string, decision model.NegotiationStatus) (*model.Project, error) {
	if !decision.Terminal() {
		return nil, apperr.Validation("Status must be either 'accepted' or 'rejected'")
	}

	project, err := n.store.UpdateProject(ctx, projectID, func(p *model.Project) error {
		if p.OwnerID != responderID {
			return apperr.Forbidden("Only the project owner can respond to negotiation requests")
		}

		var request *model.NegotiationRequest
		for i := range p.NegotiationRequests {
			if p.NegotiationRequests[i].ID == requestID {
				request = &p.NegotiationRequests[i]
				break
			}
		}
		if request == nil {
			return apperr.NotFound("Negotiation request not found")
		}
		if request.Status.Terminal() {
			return apperr.Conflict("Negotiation request has already been responded to")
		}

		request.Status = decision
		if decision == model.NegotiationStatusAccepted {
			_, err := n.funding.apply(p, request.InvestorID, request.ProposedAmount, model.ContributionInvestment)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Negotiation request %s on project %s %s", requestID, projectID, decision)
	return project, nil
}
