package logic

import (
	"context"
	"time"

	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/logger"
	"github.com/Anamiiikka/fundhive/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	store ProjectStore
	users *UserLogic
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(store ProjectStore, users *UserLogic) *ProjectLogic {
	return &ProjectLogic{store: store, users: users}
}

// CreateProjectInput 创建项目的入参
type CreateProjectInput struct {
	OwnerID       string
	OwnerName     string
	OwnerEmail    string
	OwnerAvatar   string
	Title         string
	Description   string
	Category      string
	FundingGoal   decimal.Decimal
	EquityOffered float64
	Duration      int
	MediaURL      string
}

// CreateProject 创建项目，首次见到的外部身份会惰性建立本地用户档案
func (l *ProjectLogic) CreateProject(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	if in.Title == "" || in.Description == "" || in.Category == "" {
		return nil, apperr.Validation("All project fields are required")
	}
	if !in.FundingGoal.IsPositive() {
		return nil, apperr.Validation("Funding goal must be a positive number")
	}
	if in.EquityOffered <= 0 || in.EquityOffered > 100 {
		return nil, apperr.Validation("Equity offered must be between 0 and 100")
	}
	if in.Duration <= 0 {
		return nil, apperr.Validation("Duration must be a positive number of days")
	}

	if _, err := l.users.Ensure(ctx, in.OwnerID, in.OwnerName, in.OwnerEmail, in.OwnerAvatar); err != nil {
		return nil, err
	}

	project := &model.Project{
		ID:             uuid.NewString(),
		OwnerID:        in.OwnerID,
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		FundingGoal:    in.FundingGoal,
		CurrentFunding: decimal.Zero,
		EquityOffered:  in.EquityOffered,
		Duration:       in.Duration,
		MediaURL:       in.MediaURL,
		StartDate:      time.Now(),
		Status:         model.ProjectStatusActive,
	}
	if err := l.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	logger.Info("Project %s created by %s with goal $%s", project.ID, in.OwnerID, in.FundingGoal.StringFixed(2))
	return project, nil
}

// GetProject 获取项目详情
func (l *ProjectLogic) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return l.store.FindProjectByID(ctx, id)
}

// ListProjects 按分类和关键词过滤项目列表
func (l *ProjectLogic) ListProjects(ctx context.Context, category, search string) ([]model.Project, error) {
	return l.store.FindProjects(ctx, model.ProjectFilter{Category: category, Search: search})
}

// DeleteProject 删除项目，仅允许所有者在未收到任何资金时删除。
// 校验在存储层的项目锁内进行，与删除同一临界区，
// 并发落账的出资不会被连带抹掉。
func (l *ProjectLogic) DeleteProject(ctx context.Context, id, requesterID string) error {
	err := l.store.DeleteProject(ctx, id, func(p *model.Project) error {
		if p.OwnerID != requesterID {
			return apperr.Forbidden("Only the project owner can delete this project")
		}
		if !p.CurrentFunding.IsZero() {
			return apperr.Validation("Cannot delete a project that has already received funding")
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Project %s deleted by owner", id)
	return nil
}
