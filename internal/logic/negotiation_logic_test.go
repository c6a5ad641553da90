package logic

import (
	"context"
	"testing"

	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/model"
	"github.com/Anamiiikka/fundhive/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNegotiationFixture(t *testing.T) (*repository.MemoryStore, *NegotiationLogic, *model.Project) {
	t.Helper()
	store := repository.NewMemoryStore()
	funding := NewFundingLogic(store, testFundingConfig(), nil)
	negotiation := NewNegotiationLogic(store, funding)
	p := seedProject(t, store, 100000, 0)
	return store, negotiation, p
}

func TestProposeAppendsPendingRequest(t *testing.T) {
	store, negotiation, p := newNegotiationFixture(t)

	request, err := negotiation.Propose(context.Background(), p.ID, "investor-1",
		decimal.NewFromInt(500), 5)
	require.NoError(t, err)
	assert.NotEmpty(t, request.ID)
	assert.Equal(t, model.NegotiationStatusPending, request.Status)

	current, err := store.FindProjectByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, current.NegotiationRequests, 1)
	assert.Equal(t, request.ID, current.NegotiationRequests[0].ID)
	// 提案本身不产生资金变动
	assert.True(t, current.CurrentFunding.IsZero())
}

func TestProposeValidation(t *testing.T) {
	_, negotiation, p := newNegotiationFixture(t)

	_, err := negotiation.Propose(context.Background(), p.ID, "investor-1", decimal.Zero, 5)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = negotiation.Propose(context.Background(), "missing", "investor-1", decimal.NewFromInt(500), 5)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestRespondAcceptCreditsLedger(t *testing.T) {
	_, negotiation, p := newNegotiationFixture(t)

	request, err := negotiation.Propose(context.Background(), p.ID, "investor-1",
		decimal.NewFromInt(500), 5)
	require.NoError(t, err)

	updated, err := negotiation.Respond(context.Background(), p.ID, request.ID, "owner-1",
		model.NegotiationStatusAccepted)
	require.NoError(t, err)

	// 协商金额不受挂牌投资最低限额约束
	assert.True(t, updated.CurrentFunding.Equal(decimal.NewFromInt(500)))
	require.Len(t, updated.EscrowTransactions, 1)
	assert.Equal(t, model.ContributionInvestment, updated.EscrowTransactions[0].Type)
	assert.Equal(t, "investor-1", updated.EscrowTransactions[0].ContributorID)
	assert.Equal(t, model.NegotiationStatusAccepted, updated.NegotiationRequests[0].Status)
}

func TestRespondRejectHasNoFundingSideEffect(t *testing.T) {
	_, negotiation, p := newNegotiationFixture(t)

	request, err := negotiation.Propose(context.Background(), p.ID, "investor-1",
		decimal.NewFromInt(500), 5)
	require.NoError(t, err)

	updated, err := negotiation.Respond(context.Background(), p.ID, request.ID, "owner-1",
		model.NegotiationStatusRejected)
	require.NoError(t, err)

	assert.True(t, updated.CurrentFunding.IsZero())
	assert.Empty(t, updated.EscrowTransactions)
	assert.Equal(t, model.NegotiationStatusRejected, updated.NegotiationRequests[0].Status)
}

func TestRespondIsOneShot(t *testing.T) {
	store, negotiation, p := newNegotiationFixture(t)

	request, err := negotiation.Propose(context.Background(), p.ID, "investor-1",
		decimal.NewFromInt(500), 5)
	require.NoError(t, err)

	_, err = negotiation.Respond(context.Background(), p.ID, request.ID, "owner-1",
		model.NegotiationStatusAccepted)
	require.NoError(t, err)

	_, err = negotiation.Respond(context.Background(), p.ID, request.ID, "owner-1",
		model.NegotiationStatusAccepted)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// 第二次回复不得再次计入资金
	current, err := store.FindProjectByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, current.CurrentFunding.Equal(decimal.NewFromInt(500)))
	assert.Len(t, current.EscrowTransactions, 1)
}

func TestRespondAuthorizationAndLookup(t *testing.T) {
	_, negotiation, p := newNegotiationFixture(t)

	request, err := negotiation.Propose(context.Background(), p.ID, "investor-1",
		decimal.NewFromInt(500), 5)
	require.NoError(t, err)

	_, err = negotiation.Respond(context.Background(), p.ID, request.ID, "stranger",
		model.NegotiationStatusAccepted)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = negotiation.Respond(context.Background(), p.ID, "missing-request", "owner-1",
		model.NegotiationStatusAccepted)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = negotiation.Respond(context.Background(), p.ID, request.ID, "owner-1",
		model.NegotiationStatus("maybe"))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
