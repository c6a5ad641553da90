package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store Postgres 项目/用户存储。
// UpdateProject 通过事务加行锁串行化同一项目上的并发写。
type Store struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewStore 创建存储
func NewStore(db *gorm.DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{db: db, timeout: timeout}
}

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func storageErr(op string, err error) error {
	return apperr.Unavailable("Storage unavailable", fmt.Errorf("%s: %w", op, err))
}

// CreateProject 创建项目
func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return storageErr("create project", err)
	}
	return nil
}

// FindProjectByID 查询项目详情，含账本与社交子状态
func (s *Store) FindProjectByID(ctx context.Context, id string) (*model.Project, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var p model.Project
	err := s.db.WithContext(ctx).
		Preload("Comments", sortByID).
		Preload("EscrowTransactions", sortByID).
		Preload("NegotiationRequests", sortByCreatedAt).
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, storageErr("find project", err)
	}
	return &p, nil
}

// FindProjects 按过滤条件查询项目列表
func (s *Store) FindProjects(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	q := s.db.WithContext(ctx).
		Preload("Comments", sortByID).
		Preload("EscrowTransactions", sortByID).
		Preload("NegotiationRequests", sortByCreatedAt)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	// 空结果返回空切片而不是 nil，列表接口序列化为 [] 而非 null
	projects := []model.Project{}
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, storageErr("find projects", err)
	}
	return projects, nil
}

// UpdateProject 对项目执行读-改-写。
// fn 在持有项目行锁的事务内运行，返回错误时整体回滚，不产生部分写入。
func (s *Store) UpdateProject(ctx context.Context, id string, fn func(*model.Project) error) (*model.Project, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var p model.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Project not found")
			}
			return storageErr("lock project", err)
		}

		// 行锁生效后再装载子记录
		if err := tx.Where("project_id = ?", id).Order("id ASC").Find(&p.Comments).Error; err != nil {
			return storageErr("load comments", err)
		}
		if err := tx.Where("project_id = ?", id).Order("id ASC").Find(&p.EscrowTransactions).Error; err != nil {
			return storageErr("load escrow transactions", err)
		}
		if err := tx.Where("project_id = ?", id).Order("created_at ASC").Find(&p.NegotiationRequests).Error; err != nil {
			return storageErr("load negotiation requests", err)
		}

		if err := fn(&p); err != nil {
			return err
		}

		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&p).Error; err != nil {
			return storageErr("save project", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject 删除项目，子记录按外键级联删除。
// fn 在持有项目行锁的事务内校验当前状态，返回错误时不删除，
// 避免校验与删除之间落进来的出资被一并抹掉。
func (s *Store) DeleteProject(ctx context.Context, id string, fn func(*model.Project) error) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Project not found")
			}
			return storageErr("lock project", err)
		}

		if err := fn(&p); err != nil {
			return err
		}

		if err := tx.Delete(&model.Project{}, "id = ?", id).Error; err != nil {
			return storageErr("delete project", err)
		}
		return nil
	})
}

// FindUserByExternalID 按外部身份ID查询用户
func (s *Store) FindUserByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var u model.User
	err := s.db.WithContext(ctx).First(&u, "external_id = ?", externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, storageErr("find user", err)
	}
	return &u, nil
}

// FindUserByUsername 按用户名查询用户
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var u model.User
	err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, storageErr("find user", err)
	}
	return &u, nil
}

// CreateUser 创建用户
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return storageErr("create user", err)
	}
	return nil
}

func sortByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func sortByCreatedAt(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
