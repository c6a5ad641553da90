package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProject(id string) *model.Project {
	return &model.Project{
		ID:             id,
		OwnerID:        "owner-1",
		Title:          "Solar kits",
		Description:    "Portable solar kits",
		Category:       "energy",
		FundingGoal:    decimal.NewFromInt(1000),
		CurrentFunding: decimal.Zero,
		EquityOffered:  10,
		Duration:       30,
		StartDate:      time.Now(),
		Status:         model.ProjectStatusActive,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateProject(ctx, newTestProject("p1")))

	found, err := store.FindProjectByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Solar kits", found.Title)
	assert.False(t, found.CreatedAt.IsZero())

	_, err = store.FindProjectByID(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestMemoryStoreFindProjectsFilter(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := newTestProject("p1")
	require.NoError(t, store.CreateProject(ctx, first))

	second := newTestProject("p2")
	second.Title = "Community garden network"
	second.Category = "agriculture"
	require.NoError(t, store.CreateProject(ctx, second))

	all, err := store.FindProjects(ctx, model.ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCategory, err := store.FindProjects(ctx, model.ProjectFilter{Category: "agriculture"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "p2", byCategory[0].ID)

	// 关键词对标题和描述大小写不敏感
	bySearch, err := store.FindProjects(ctx, model.ProjectFilter{Search: "SOLAR"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "p1", bySearch[0].ID)

	none, err := store.FindProjects(ctx, model.ProjectFilter{Category: "energy", Search: "garden"})
	require.NoError(t, err)
	// 空结果是空切片而不是 nil，列表接口才能序列化为 []
	require.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryStoreUpdateProjectAssignsChildIDs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, newTestProject("p1")))

	updated, err := store.UpdateProject(ctx, "p1", func(p *model.Project) error {
		p.Comments = append(p.Comments, model.Comment{ProjectID: "p1", AuthorID: "u1", Content: "hi"})
		p.EscrowTransactions = append(p.EscrowTransactions, model.EscrowTransaction{
			ProjectID:     "p1",
			ContributorID: "u1",
			Amount:        decimal.NewFromInt(50),
			Type:          model.ContributionCrowdfunding,
			Status:        model.EscrowStatusPending,
			TransactionID: "TXN-test",
		})
		return nil
	})
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	require.Len(t, updated.EscrowTransactions, 1)
	assert.NotZero(t, updated.Comments[0].ID)
	assert.NotZero(t, updated.EscrowTransactions[0].ID)
	assert.NotEqual(t, updated.Comments[0].ID, updated.EscrowTransactions[0].ID)
	assert.False(t, updated.EscrowTransactions[0].CreatedAt.IsZero())
}

func TestMemoryStoreUpdateProjectStampsNegotiationRequests(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, newTestProject("p1")))

	updated, err := store.UpdateProject(ctx, "p1", func(p *model.Project) error {
		p.NegotiationRequests = append(p.NegotiationRequests, model.NegotiationRequest{
			ID:             uuid.NewString(),
			ProjectID:      "p1",
			InvestorID:     "investor-1",
			ProposedAmount: decimal.NewFromInt(500),
			ProposedEquity: 5,
			Status:         model.NegotiationStatusPending,
		})
		return nil
	})
	require.NoError(t, err)
	require.Len(t, updated.NegotiationRequests, 1)
	// created_at 排序依赖写入时间戳
	assert.False(t, updated.NegotiationRequests[0].CreatedAt.IsZero())
}

func TestMemoryStoreUpdateProjectRollsBackOnError(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, newTestProject("p1")))

	boom := apperr.Validation("no thanks")
	_, err := store.UpdateProject(ctx, "p1", func(p *model.Project) error {
		p.CurrentFunding = decimal.NewFromInt(999)
		p.Likes = append(p.Likes, "u1")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// fn 报错时任何改动都不落盘
	current, err := store.FindProjectByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, current.CurrentFunding.IsZero())
	assert.Empty(t, current.Likes)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, newTestProject("p1")))

	first, err := store.FindProjectByID(ctx, "p1")
	require.NoError(t, err)
	first.Title = "mutated"
	first.Likes = append(first.Likes, "u1")

	second, err := store.FindProjectByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Solar kits", second.Title)
	assert.Empty(t, second.Likes)
}

func TestMemoryStoreDeleteProject(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, newTestProject("p1")))

	noGuard := func(*model.Project) error { return nil }
	require.NoError(t, store.DeleteProject(ctx, "p1", noGuard))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(store.DeleteProject(ctx, "p1", noGuard)))
}

func TestMemoryStoreDeleteProjectGuardSeesCurrentState(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.CreateProject(ctx, newTestProject("p1")))

	_, err := store.UpdateProject(ctx, "p1", func(p *model.Project) error {
		p.CurrentFunding = decimal.NewFromInt(500)
		return nil
	})
	require.NoError(t, err)

	// fn 看到的是存储中的当前状态，报错时项目保留
	boom := apperr.Validation("still funded")
	err = store.DeleteProject(ctx, "p1", func(p *model.Project) error {
		assert.True(t, p.CurrentFunding.Equal(decimal.NewFromInt(500)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.FindProjectByID(ctx, "p1")
	assert.NoError(t, err)
}

func TestMemoryStoreUsers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	u := &model.User{ExternalID: "ext-1", Username: "janedoe", Name: "Jane Doe"}
	require.NoError(t, store.CreateUser(ctx, u))
	assert.NotZero(t, u.ID)

	byExternal, err := store.FindUserByExternalID(ctx, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "janedoe", byExternal.Username)

	byName, err := store.FindUserByUsername(ctx, "janedoe")
	require.NoError(t, err)
	assert.Equal(t, "ext-1", byName.ExternalID)

	_, err = store.FindUserByUsername(ctx, "nobody")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
