package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"accessboard/backend/libs/presence"
)

const dateKeyLayout = "2006-01-02"

// Store caches computed period summaries per granularity and date range.
// Aggregation re-walks every session on each call, so dashboards hitting
// the same range repeatedly get served from here instead.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns redis-backed cache.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(granularity presence.Granularity, from, to time.Time) string {
	return fmt.Sprintf("presence:summary:%s:%s:%s", granularity, from.Format(dateKeyLayout), to.Format(dateKeyLayout))
}

// Get returns cached summaries; redis.Nil signals a miss.
func (s *Store) Get(ctx context.Context, granularity presence.Granularity, from, to time.Time) ([]presence.PeriodSummary, error) {
	result, err := s.client.Get(ctx, s.key(granularity, from, to)).Result()
	if err != nil {
		return nil, err
	}
	var summaries []presence.PeriodSummary
	if err := json.Unmarshal([]byte(result), &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Save caches summaries for the range.
func (s *Store) Save(ctx context.Context, granularity presence.Granularity, from, to time.Time, summaries []presence.PeriodSummary) error {
	data, err := json.Marshal(summaries)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(granularity, from, to), data, s.ttl).Err()
}
