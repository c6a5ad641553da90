package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/model"
)

// MemoryStore 内存存储，用于开发模式和测试。
// 单把互斥锁串行化全部写操作，天然满足按项目串行的并发契约。
type MemoryStore struct {
	mu          sync.RWMutex
	projects    map[string]*model.Project
	users       map[string]*model.User // 以外部身份ID为键
	nextChildID uint
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string]*model.Project),
		users:    make(map[string]*model.User),
	}
}

// CreateProject 创建项目
func (s *MemoryStore) CreateProject(_ context.Context, p *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.projects[p.ID] = cloneProject(p)
	return nil
}

// FindProjectByID 查询项目详情
func (s *MemoryStore) FindProjectByID(_ context.Context, id string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, apperr.NotFound("Project not found")
	}
	return cloneProject(p), nil
}

// FindProjects 按过滤条件查询项目列表
func (s *MemoryStore) FindProjects(_ context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Project{}
	for _, p := range s.projects {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Title), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		out = append(out, *cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateProject 持锁执行读-改-写，fn 返回错误时不落盘
func (s *MemoryStore) UpdateProject(_ context.Context, id string, fn func(*model.Project) error) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.projects[id]
	if !ok {
		return nil, apperr.NotFound("Project not found")
	}

	p := cloneProject(stored)
	if err := fn(p); err != nil {
		return nil, err
	}

	// 为新增子记录补上代理主键
	for i := range p.Comments {
		if p.Comments[i].ID == 0 {
			s.nextChildID++
			p.Comments[i].ID = s.nextChildID
			p.Comments[i].CreatedAt = time.Now()
		}
	}
	for i := range p.EscrowTransactions {
		if p.EscrowTransactions[i].ID == 0 {
			s.nextChildID++
			p.EscrowTransactions[i].ID = s.nextChildID
			p.EscrowTransactions[i].CreatedAt = time.Now()
		}
	}
	for i := range p.NegotiationRequests {
		if p.NegotiationRequests[i].CreatedAt.IsZero() {
			p.NegotiationRequests[i].CreatedAt = time.Now()
		}
	}

	p.UpdatedAt = time.Now()
	s.projects[id] = cloneProject(p)
	return p, nil
}

// DeleteProject 删除项目。
// fn 持锁校验当前状态，返回错误时不删除。
func (s *MemoryStore) DeleteProject(_ context.Context, id string, fn func(*model.Project) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.projects[id]
	if !ok {
		return apperr.NotFound("Project not found")
	}
	if err := fn(cloneProject(stored)); err != nil {
		return err
	}
	delete(s.projects, id)
	return nil
}

// FindUserByExternalID 按外部身份ID查询用户
func (s *MemoryStore) FindUserByExternalID(_ context.Context, externalID string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[externalID]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	clone := *u
	return &clone, nil
}

// FindUserByUsername 按用户名查询用户
func (s *MemoryStore) FindUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

// CreateUser 创建用户
func (s *MemoryStore) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextChildID++
	u.ID = s.nextChildID
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	stored := *u
	s.users[u.ExternalID] = &stored
	return nil
}

func cloneProject(p *model.Project) *model.Project {
	out := *p
	out.Likes = append(out.Likes[:0:0], p.Likes...)
	out.Comments = append(out.Comments[:0:0], p.Comments...)
	out.EscrowTransactions = append(out.EscrowTransactions[:0:0], p.EscrowTransactions...)
	out.NegotiationRequests = append(out.NegotiationRequests[:0:0], p.NegotiationRequests...)
	return &out
}
