//go:build !integration

package redis

import (
	"context"
	"testing"
	"time"

	"myStarCompanion/business/optimizer"
	"myStarCompanion/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func session(userID, token string) domain.TokenSession {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.TokenSession{
		UserID:    userID,
		Role:      "user",
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestTokenRepository_StoreAndValidate(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewTokenRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.StoreToken(ctx, session("7", "tok-1"), time.Hour))

	userID, err := repo.ValidateToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "7", userID)

	data, err := repo.GetTokenData(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", data.Token)
	assert.Equal(t, "user", data.Role)
}

func TestTokenRepository_NewLoginReplacesOldToken(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewTokenRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.StoreToken(ctx, session("7", "tok-1"), time.Hour))
	require.NoError(t, repo.StoreToken(ctx, session("7", "tok-2"), time.Hour))

	_, err := repo.ValidateToken(ctx, "tok-1")
	assert.EqualError(t, err, "token not found or expired")

	userID, err := repo.ValidateToken(ctx, "tok-2")
	require.NoError(t, err)
	assert.Equal(t, "7", userID)
}

func TestTokenRepository_Revoke(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewTokenRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.StoreToken(ctx, session("7", "tok-1"), time.Hour))
	require.NoError(t, repo.RevokeToken(ctx, "7"))

	_, err := repo.ValidateToken(ctx, "tok-1")
	assert.Error(t, err)

	_, err = repo.GetTokenData(ctx, "7")
	assert.EqualError(t, err, "token not found")

	assert.EqualError(t, repo.RevokeToken(ctx, "7"), "token not found")
}

func TestTokenRepository_Expiry(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewTokenRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.StoreToken(ctx, session("7", "tok-1"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := repo.ValidateToken(ctx, "tok-1")
	assert.EqualError(t, err, "token not found or expired")
}

func TestOptimizationCache_RoundTrip(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewOptimizationCache(client, time.Minute)
	ctx := context.Background()

	version, err := cache.Version(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "0.0", version)

	_, ok, err := cache.Get(ctx, 1, version, "SPD", "ATK%")
	require.NoError(t, err)
	assert.False(t, ok)

	entries := []domain.OptimizedSlot{
		{
			Slot: domain.SlotHead,
			Relic: domain.RelicRecord{
				ID:        "r1",
				Name:      "Head of the Wanderer",
				MainStats: domain.StatMap{"HP": 705.6},
				SubStats:  domain.StatMap{"SPD": 4},
			},
			Score: 4,
		},
	}
	require.NoError(t, cache.Set(ctx, 1, version, "SPD", "ATK%", entries))

	got, ok, err := cache.Get(ctx, 1, version, "SPD", "ATK%")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entries, got)

	// stat order is part of the key
	_, ok, err = cache.Get(ctx, 1, version, "ATK%", "SPD")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOptimizationCache_StatPairsDoNotCollide(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewOptimizationCache(client, time.Minute)
	ctx := context.Background()

	pairs := [][2]string{
		{"HP%|x", "y"},
		{"HP%", "x|y"},
		{"HP%:1:x", "y"},
		{"HP%", "1:x:y"},
		{"", "HP%"},
		{"HP%", ""},
	}
	seen := map[string][2]string{}
	for _, p := range pairs {
		key := resultKey(1, "0.0", p[0], p[1])
		prev, dup := seen[key]
		assert.False(t, dup, "%q and %q share key %s", prev, p, key)
		seen[key] = p
	}

	entry := []domain.OptimizedSlot{{Slot: domain.SlotHead, Relic: domain.RelicRecord{ID: "a"}, Score: 0}}
	require.NoError(t, cache.Set(ctx, 1, "0.0", "HP%|x", "y", entry))
	_, ok, err := cache.Get(ctx, 1, "0.0", "HP%", "x|y")
	require.NoError(t, err)
	assert.False(t, ok)
}

type relicList []domain.UserRelic

func (l relicList) FindAllRelicsByUser(ctx context.Context, userID uint) ([]domain.UserRelic, error) {
	return l, nil
}

func TestOptimizationCache_ServedResultMatchesStatPair(t *testing.T) {
	_, client := newTestClient(t)
	source := relicList{{
		ID:        "a",
		MainStats: datatypes.NewJSONType(domain.StatMap{"HP%": 10}),
		SubStats:  datatypes.NewJSONType(domain.StatMap{}),
		Relic:     &domain.Relic{Name: "Head A"},
	}}
	svc := optimizer.NewService(source, NewOptimizationCache(client, time.Minute))
	ctx := context.Background()

	first, err := svc.OptimizeForUser(ctx, 1, "HP%|x", "y")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 0.0, first[0].Score)

	second, err := svc.OptimizeForUser(ctx, 1, "HP%", "x|y")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 10.0, second[0].Score)
}

func TestOptimizationCache_EmptyResult(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewOptimizationCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, "0.0", "SPD", "SPD", nil))

	got, ok, err := cache.Get(ctx, 1, "0.0", "SPD", "SPD")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestOptimizationCache_InvalidateUser(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewOptimizationCache(client, time.Minute)
	ctx := context.Background()

	entry := []domain.OptimizedSlot{{Slot: domain.SlotFeet, Relic: domain.RelicRecord{ID: "f"}, Score: 1}}
	v1, err := cache.Version(ctx, 1)
	require.NoError(t, err)
	v2, err := cache.Version(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, 1, v1, "SPD", "ATK%", entry))
	require.NoError(t, cache.Set(ctx, 2, v2, "SPD", "ATK%", entry))

	require.NoError(t, cache.InvalidateUser(ctx, 1))

	after, err := cache.Version(ctx, 1)
	require.NoError(t, err)
	assert.NotEqual(t, v1, after)
	_, ok, _ := cache.Get(ctx, 1, after, "SPD", "ATK%")
	assert.False(t, ok)

	unchanged, err := cache.Version(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, v2, unchanged)
	_, ok, _ = cache.Get(ctx, 2, unchanged, "SPD", "ATK%")
	assert.True(t, ok)
}

func TestOptimizationCache_WriteAfterInvalidateIsNotServed(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewOptimizationCache(client, time.Minute)
	ctx := context.Background()

	// a computation reads the version, then the user's relics change
	before, err := cache.Version(ctx, 5)
	require.NoError(t, err)
	require.NoError(t, cache.InvalidateUser(ctx, 5))

	stale := []domain.OptimizedSlot{{Slot: domain.SlotHead, Relic: domain.RelicRecord{ID: "old"}, Score: 1}}
	require.NoError(t, cache.Set(ctx, 5, before, "SPD", "HP", stale))

	now, err := cache.Version(ctx, 5)
	require.NoError(t, err)
	_, ok, err := cache.Get(ctx, 5, now, "SPD", "HP")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOptimizationCache_InvalidateAll(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewOptimizationCache(client, time.Minute)
	ctx := context.Background()

	entry := []domain.OptimizedSlot{}
	for _, userID := range []uint{1, 2} {
		v, err := cache.Version(ctx, userID)
		require.NoError(t, err)
		require.NoError(t, cache.Set(ctx, userID, v, "SPD", "HP", entry))
	}

	require.NoError(t, cache.InvalidateAll(ctx))

	for _, userID := range []uint{1, 2} {
		v, err := cache.Version(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "1.0", v)
		_, ok, err := cache.Get(ctx, userID, v, "SPD", "HP")
		require.NoError(t, err)
		assert.False(t, ok, "user %d", userID)
	}
}

func TestOptimizationCache_TTL(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewOptimizationCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, "0.0", "SPD", "ATK%", []domain.OptimizedSlot{}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, 1, "0.0", "SPD", "ATK%")
	require.NoError(t, err)
	assert.False(t, ok)
}
