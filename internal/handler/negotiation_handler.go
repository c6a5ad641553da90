package handler

import (
	"net/http"

	"github.com/Anamiiikka/fundhive/internal/logic"
	"github.com/Anamiiikka/fundhive/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// NegotiationHandler 投资协商处理器
type NegotiationHandler struct {
	negotiationLogic *logic.NegotiationLogic
}

// NewNegotiationHandler 创建协商处理器
func NewNegotiationHandler(negotiationLogic *logic.NegotiationLogic) *NegotiationHandler {
	return &NegotiationHandler{negotiationLogic: negotiationLogic}
}

// Negotiate 投资人发起协商请求
func (h *NegotiationHandler) Negotiate(c *gin.Context) {
	var req NegotiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	request, err := h.negotiationLogic.Propose(
		c.Request.Context(),
		c.Param("id"),
		req.InvestorID,
		decimal.NewFromFloat(req.ProposedAmount),
		req.ProposedEquity,
	)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Negotiation request submitted", "request": request})
}

// Respond 项目所有者回复协商请求
func (h *NegotiationHandler) Respond(c *gin.Context) {
	userID := c.GetHeader(HeaderUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	project, err := h.negotiationLogic.Respond(
		c.Request.Context(),
		c.Param("id"),
		c.Param("requestId"),
		userID,
		model.NegotiationStatus(req.Status),
	)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Negotiation request " + req.Status, "project": project})
}
