package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessboard/backend/libs/presence"
)

func setupTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, ttl), mr
}

func TestStoreSaveThenGet(t *testing.T) {
	store, _ := setupTestStore(t, time.Minute)
	ctx := context.Background()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	summaries := []presence.PeriodSummary{
		{PeriodKey: "2024-01-02", TotalHours: 8.5, BadgeCount: 2, AverageHours: 4.25},
	}

	require.NoError(t, store.Save(ctx, presence.GranularityDay, from, to, summaries))

	cached, err := store.Get(ctx, presence.GranularityDay, from, to)
	require.NoError(t, err)
	assert.Equal(t, summaries, cached)
}

func TestStoreGetMissIsRedisNil(t *testing.T) {
	store, _ := setupTestStore(t, time.Minute)

	_, err := store.Get(context.Background(), presence.GranularityWeek, time.Now(), time.Now())
	assert.ErrorIs(t, err, redis.Nil)
}

func TestStoreKeysAreDistinctPerGranularityAndRange(t *testing.T) {
	store, _ := setupTestStore(t, time.Minute)
	ctx := context.Background()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	daily := []presence.PeriodSummary{{PeriodKey: "2024-01-02", TotalHours: 8}}
	require.NoError(t, store.Save(ctx, presence.GranularityDay, from, to, daily))

	_, err := store.Get(ctx, presence.GranularityMonth, from, to)
	assert.ErrorIs(t, err, redis.Nil)

	_, err = store.Get(ctx, presence.GranularityDay, from, to.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, redis.Nil)
}

func TestStoreEntriesExpire(t *testing.T) {
	store, mr := setupTestStore(t, time.Minute)
	ctx := context.Background()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, presence.GranularityDay, from, to, []presence.PeriodSummary{{PeriodKey: "2024-01-02"}}))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, presence.GranularityDay, from, to)
	assert.ErrorIs(t, err, redis.Nil)
}
