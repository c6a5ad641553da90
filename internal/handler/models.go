package handler

// 请求体为显式声明的结构，未知/畸形的请求在进入引擎前被拒绝。

// LikeRequest 点赞请求
type LikeRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// CommentRequest 评论请求
type CommentRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Content string `json:"content"`
}

// ContributionRequest 出资请求（投资/众筹共用）
type ContributionRequest struct {
	UserID string  `json:"userId" binding:"required"`
	Amount float64 `json:"amount"`
}

// NegotiateRequest 协商请求
type NegotiateRequest struct {
	InvestorID     string  `json:"investorId" binding:"required"`
	ProposedAmount float64 `json:"proposedAmount"`
	ProposedEquity float64 `json:"proposedEquity"`
}

// RespondRequest 协商回复请求
type RespondRequest struct {
	Status string `json:"status" binding:"required"`
}

// AnalysisRequest AI分析请求
type AnalysisRequest struct {
	Prompt string `json:"prompt"`
}
