package repository

import (
	"context"
	"testing"
	"time"

	"github.com/emmanueladavize43/Gemini-cupid/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, kv KV) *ProfileStore {
	t.Helper()
	s := NewProfileStore(kv, zerolog.Nop())
	s.Load(context.Background())
	return s
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	s := newTestStore(t, NewMemoryKV())

	assert.Len(t, s.Profiles(), len(SeedProfiles()))
	assert.Equal(t, SeedViewerID, s.Viewer())
	assert.Equal(t, []int64{4, 7}, s.LikersOf(SeedViewerID))
}

func TestLoadDegradesOnMalformedState(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyProfiles, []byte(`[{"id":2,"name":"Alex","age":29,"profileVisibility":"public"}]`)))
	require.NoError(t, kv.Set(ctx, KeyViewer, []byte(`2`)))
	require.NoError(t, kv.Set(ctx, KeyLikes, []byte(`{not json`)))
	require.NoError(t, kv.Set(ctx, KeyMatches, []byte(`"nope"`)))
	require.NoError(t, kv.Set(ctx, BlockedKey(2), []byte(`[3, "x", 5.5, 9]`)))

	s := newTestStore(t, kv)

	assert.Len(t, s.Profiles(), 1)
	assert.Equal(t, int64(2), s.Viewer())
	assert.Zero(t, s.LikeCount())
	assert.Zero(t, s.MatchCount())
	assert.Equal(t, map[int64]struct{}{3: {}, 9: {}}, s.Blocked())
}

func TestAddLikeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryKV())
	before := s.LikeCount()

	like := models.Like{LikerID: 1, LikedID: 2}
	assert.True(t, s.AddLike(ctx, like))
	assert.False(t, s.AddLike(ctx, like))
	assert.Equal(t, before+1, s.LikeCount())

	s.RemoveLike(ctx, like)
	assert.False(t, s.HasLike(like))
	assert.Equal(t, before, s.LikeCount())
}

func TestCreateMatchIsSymmetric(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryKV())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	first, created := s.CreateMatch(ctx, models.NewMatch(5, 2, now, false))
	require.True(t, created)
	assert.Equal(t, "2-5", first.ID)
	assert.Equal(t, [2]int64{2, 5}, first.UserIDs)

	second, created := s.CreateMatch(ctx, models.NewMatch(2, 5, now.Add(time.Hour), true))
	assert.False(t, created)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.MatchCount())

	a, ok := s.MatchBetween(2, 5)
	require.True(t, ok)
	b, ok := s.MatchBetween(5, 2)
	require.True(t, ok)
	assert.Equal(t, a, b)
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := newTestStore(t, kv)

	s.AddLike(ctx, models.Like{LikerID: 1, LikedID: 3})
	s.MarkSuperLike(ctx, models.Like{LikerID: 1, LikedID: 3})
	s.Block(ctx, 6)
	s.Dismiss(ctx, 7)
	m, _ := s.CreateMatch(ctx, models.NewMatch(1, 2, time.Now().UTC(), false))
	s.AppendMessage(ctx, models.Message{ID: "m1", MatchID: m.ID, SenderID: 2, Type: models.MessageText, Content: "hi"})
	s.IncrementViewCount(ctx, 2)

	reloaded := newTestStore(t, kv)

	assert.True(t, reloaded.HasLike(models.Like{LikerID: 1, LikedID: 3}))
	assert.True(t, reloaded.IsSuperLike(models.Like{LikerID: 1, LikedID: 3}))
	assert.True(t, reloaded.IsBlocked(6))
	assert.True(t, reloaded.IsDismissed(7))
	_, ok := reloaded.Match(m.ID)
	assert.True(t, ok)
	assert.Len(t, reloaded.Messages(m.ID), 1)
	p, _ := reloaded.Profile(2)
	assert.Equal(t, 153, p.ViewCount)
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryKV())
	id := models.MatchID(1, 2)

	s.AppendMessage(ctx, models.Message{ID: "a", MatchID: id, SenderID: 2})
	s.AppendMessage(ctx, models.Message{ID: "b", MatchID: id, SenderID: 1})
	s.AppendMessage(ctx, models.Message{ID: "c", MatchID: id, SenderID: 2})

	assert.Equal(t, 2, s.MarkRead(ctx, id, 1))
	assert.Equal(t, 0, s.MarkRead(ctx, id, 1))

	msgs := s.Messages(id)
	assert.True(t, msgs[0].Read)
	assert.False(t, msgs[1].Read)
	assert.True(t, msgs[2].Read)
}

func TestMatchesForNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryKV())
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	s.CreateMatch(ctx, models.NewMatch(1, 2, base, false))
	s.CreateMatch(ctx, models.NewMatch(3, 1, base.Add(time.Minute), false))
	s.CreateMatch(ctx, models.NewMatch(4, 5, base.Add(2*time.Minute), false))

	got := s.MatchesFor(1)
	require.Len(t, got, 2)
	assert.Equal(t, "1-3", got[0].ID)
	assert.Equal(t, "1-2", got[1].ID)
}

func TestBlocksAndDismissalsBelongToViewer(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := newTestStore(t, kv)

	s.Block(ctx, 6)
	s.Dismiss(ctx, 7)

	s.SetViewer(ctx, 2)
	assert.False(t, s.IsBlocked(6))
	assert.False(t, s.IsDismissed(7))
	assert.Empty(t, s.Blocked())

	s.Block(ctx, 3)
	s.SetViewer(ctx, SeedViewerID)
	assert.True(t, s.IsBlocked(6))
	assert.False(t, s.IsBlocked(3))
	assert.True(t, s.IsDismissed(7))

	reloaded := newTestStore(t, kv)
	assert.Equal(t, map[int64]struct{}{6: {}}, reloaded.Blocked())
}
