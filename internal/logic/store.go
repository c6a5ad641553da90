package logic

import (
	"context"

	"github.com/Anamiiikka/fundhive/internal/model"
)

// ProjectStore 项目存储契约。
// UpdateProject 和 DeleteProject 必须按项目串行化，fn 在持锁状态下
// 看到项目的当前状态，返回错误时不得产生任何写入或删除。
type ProjectStore interface {
	CreateProject(ctx context.Context, p *model.Project) error
	FindProjectByID(ctx context.Context, id string) (*model.Project, error)
	FindProjects(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error)
	UpdateProject(ctx context.Context, id string, fn func(*model.Project) error) (*model.Project, error)
	DeleteProject(ctx context.Context, id string, fn func(*model.Project) error) error
}

// UserStore 用户目录存储契约
type UserStore interface {
	FindUserByExternalID(ctx context.Context, externalID string) (*model.User, error)
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
}
