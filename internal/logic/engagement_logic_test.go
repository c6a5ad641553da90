package logic

import (
	"context"
	"testing"

	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeAddsAndRemoves(t *testing.T) {
	store := repository.NewMemoryStore()
	engagement := NewEngagementLogic(store)
	p := seedProject(t, store, 1000, 0)

	updated, liked, err := engagement.ToggleLike(context.Background(), p.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, []string{"user-1"}, []string(updated.Likes))

	updated, liked, err = engagement.ToggleLike(context.Background(), p.ID, "user-2")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Len(t, updated.Likes, 2)

	// 再次点击取消，且不影响他人的点赞
	updated, liked, err = engagement.ToggleLike(context.Background(), p.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, []string{"user-2"}, []string(updated.Likes))
}

func TestToggleLikeValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	engagement := NewEngagementLogic(store)
	p := seedProject(t, store, 1000, 0)

	_, _, err := engagement.ToggleLike(context.Background(), p.ID, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, _, err = engagement.ToggleLike(context.Background(), "missing", "user-1")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAddCommentAppendsInOrder(t *testing.T) {
	store := repository.NewMemoryStore()
	engagement := NewEngagementLogic(store)
	p := seedProject(t, store, 1000, 0)

	_, err := engagement.AddComment(context.Background(), p.ID, "user-1", "Looks promising")
	require.NoError(t, err)
	updated, err := engagement.AddComment(context.Background(), p.ID, "user-2", "Count me in")
	require.NoError(t, err)

	require.Len(t, updated.Comments, 2)
	assert.Equal(t, "Looks promising", updated.Comments[0].Content)
	assert.Equal(t, "user-1", updated.Comments[0].AuthorID)
	assert.Equal(t, "Count me in", updated.Comments[1].Content)
	assert.NotZero(t, updated.Comments[0].ID)
	assert.NotEqual(t, updated.Comments[0].ID, updated.Comments[1].ID)
}

func TestAddCommentValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	engagement := NewEngagementLogic(store)
	p := seedProject(t, store, 1000, 0)

	_, err := engagement.AddComment(context.Background(), p.ID, "", "hello")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = engagement.AddComment(context.Background(), p.ID, "user-1", "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = engagement.AddComment(context.Background(), "missing", "user-1", "hello")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
