package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// NegotiationRequest 投资人自定义条款的协商请求
type NegotiationRequest struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ProjectID      string          `json:"projectId" gorm:"type:varchar(36);not null;index"`
	InvestorID     string          `json:"investorId" gorm:"not null"`
	ProposedAmount decimal.Decimal `json:"proposedAmount" gorm:"type:numeric(20,2);not null"`
	ProposedEquity float64         `json:"proposedEquity" gorm:"not null"`

	// pending -> accepted/rejected，终态不可再变更
	Status NegotiationStatus `json:"status" gorm:"type:varchar(16);default:'pending'"`
}

// TableName 自定义表名
func (NegotiationRequest) TableName() string {
	return "negotiation_request"
}

// NegotiationStatus 协商状态
type NegotiationStatus string

const (
	NegotiationStatusPending  NegotiationStatus = "pending"  // 待回复
	NegotiationStatusAccepted NegotiationStatus = "accepted" // 已接受
	NegotiationStatusRejected NegotiationStatus = "rejected" // 已拒绝
)

// Terminal 是否已处于终态
func (s NegotiationStatus) Terminal() bool {
	return s == NegotiationStatusAccepted || s == NegotiationStatusRejected
}
