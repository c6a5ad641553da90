package handler

import (
	"net/http"

	"github.com/Anamiiikka/fundhive/internal/logic"
	"github.com/Anamiiikka/fundhive/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FundingHandler 出资与托管处理器
type FundingHandler struct {
	fundingLogic *logic.FundingLogic
}

// NewFundingHandler 创建出资处理器
func NewFundingHandler(fundingLogic *logic.FundingLogic) *FundingHandler {
	return &FundingHandler{fundingLogic: fundingLogic}
}

// Invest 投资出资
func (h *FundingHandler) Invest(c *gin.Context) {
	h.contribute(c, model.ContributionInvestment, "Investment successful")
}

// Crowdfund 众筹出资
func (h *FundingHandler) Crowdfund(c *gin.Context) {
	h.contribute(c, model.ContributionCrowdfunding, "Crowdfunding contribution successful")
}

func (h *FundingHandler) contribute(c *gin.Context, kind model.ContributionKind, successMessage string) {
	var req ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	project, transactionID, err := h.fundingLogic.Contribute(
		c.Request.Context(),
		c.Param("id"),
		req.UserID,
		decimal.NewFromFloat(req.Amount),
		kind,
		c.GetHeader(HeaderIdempotencyKey),
	)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       successMessage,
		"project":       project,
		"transactionId": transactionID,
	})
}

// ReleaseEscrow 所有者手动释放托管资金
func (h *FundingHandler) ReleaseEscrow(c *gin.Context) {
	userID := c.GetHeader(HeaderUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
		return
	}

	project, err := h.fundingLogic.ReleaseEscrow(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Escrow released", "project": project})
}
