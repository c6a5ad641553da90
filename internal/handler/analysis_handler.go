package handler

import (
	"net/http"

	"github.com/Anamiiikka/fundhive/internal/ai"
	"github.com/Anamiiikka/fundhive/internal/logger"
	"github.com/gin-gonic/gin"
)

// AnalysisHandler AI商业分析透传处理器
type AnalysisHandler struct {
	client *ai.Client
}

// NewAnalysisHandler 创建分析处理器
func NewAnalysisHandler(client *ai.Client) *AnalysisHandler {
	return &AnalysisHandler{client: client}
}

// Analyze 透传提示词到文本生成服务并返回评分与报告
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Prompt is required"})
		return
	}

	analysis, err := h.client.Analyze(c.Request.Context(), req.Prompt)
	if err != nil {
		logger.Error("AI analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, analysis)
}
