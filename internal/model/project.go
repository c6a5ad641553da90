package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Project 众筹项目聚合根
type Project struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 创建者（身份提供方的外部用户ID）
	OwnerID string `json:"userId" gorm:"not null;index"`

	// 基本信息
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text;not null"`
	Category    string `json:"category" gorm:"not null;index"`
	MediaURL    string `json:"mediaUrl"`

	// 融资信息
	FundingGoal    decimal.Decimal `json:"fundingGoal" gorm:"type:numeric(20,2);not null"`
	CurrentFunding decimal.Decimal `json:"currentFunding" gorm:"type:numeric(20,2);not null"`
	EquityOffered  float64         `json:"equityOffered" gorm:"not null"`

	// 时间信息，duration 单位为天，仅用于展示剩余时间
	Duration  int       `json:"duration" gorm:"not null"`
	StartDate time.Time `json:"startDate" gorm:"not null"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"type:varchar(16);default:'active'"`

	// 社交子状态
	Likes    pq.StringArray `json:"likes" gorm:"type:text[]"`
	Comments []Comment      `json:"comments" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`

	// 资金账本
	EscrowTransactions  []EscrowTransaction  `json:"escrowTransactions" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	NegotiationRequests []NegotiationRequest `json:"negotiationRequests" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName 自定义表名
func (Project) TableName() string {
	return "project"
}

// GoalReached 当前融资是否已达到目标金额
func (p *Project) GoalReached() bool {
	return p.CurrentFunding.GreaterThanOrEqual(p.FundingGoal)
}

// Remaining 距离目标金额的剩余额度，已达标时为0
func (p *Project) Remaining() decimal.Decimal {
	r := p.FundingGoal.Sub(p.CurrentFunding)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// HasLike 用户是否已点赞
func (p *Project) HasLike(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusActive ProjectStatus = "active" // 进行中
	ProjectStatusFunded ProjectStatus = "funded" // 已达标
)

// ProjectFilter 项目列表过滤条件
type ProjectFilter struct {
	Category string // 精确匹配分类
	Search   string // 标题/描述不区分大小写模糊匹配
}

// Comment 项目评论，只追加不修改
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID string    `json:"projectId" gorm:"type:varchar(36);not null;index"`
	AuthorID  string    `json:"userId" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName 自定义表名
func (Comment) TableName() string {
	return "project_comment"
}
