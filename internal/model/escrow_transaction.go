package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EscrowTransaction 托管交易记录，模拟资金冻结与释放
type EscrowTransaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ProjectID     string           `json:"projectId" gorm:"type:varchar(36);not null;index"`
	ContributorID string           `json:"userId" gorm:"not null"`
	Amount        decimal.Decimal  `json:"amount" gorm:"type:numeric(20,2);not null"`
	Type          ContributionKind `json:"type" gorm:"type:varchar(16);not null"`

	// 本地生成的模拟交易ID，项目内唯一
	TransactionID string `json:"transactionId" gorm:"uniqueIndex;not null"`

	Status EscrowStatus `json:"status" gorm:"type:varchar(16);default:'pending'"`
}

// TableName 自定义表名
func (EscrowTransaction) TableName() string {
	return "escrow_transaction"
}

// ContributionKind 出资类型
type ContributionKind string

const (
	ContributionInvestment   ContributionKind = "investment"   // 股权投资
	ContributionCrowdfunding ContributionKind = "crowdfunding" // 普通众筹
)

// Valid 是否为已知的出资类型
func (k ContributionKind) Valid() bool {
	return k == ContributionInvestment || k == ContributionCrowdfunding
}

// EscrowStatus 托管状态
type EscrowStatus string

const (
	EscrowStatusPending  EscrowStatus = "pending"  // 冻结中
	EscrowStatusReleased EscrowStatus = "released" // 已释放
)
