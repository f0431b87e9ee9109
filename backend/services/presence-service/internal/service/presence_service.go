package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"accessboard/backend/libs/presence"
	"accessboard/backend/services/presence-service/internal/metrics"
	redisstore "accessboard/backend/services/presence-service/internal/redis"
)

// EventSource supplies raw scans for a date range. The repository is the
// production implementation; tests plug in fakes.
type EventSource interface {
	ListRawRecords(ctx context.Context, from, to time.Time) ([]presence.RawRecord, error)
	MaxEventDate(ctx context.Context) (time.Time, error)
}

// Overview bundles every dashboard aggregate for one date range.
type Overview struct {
	From         string                  `json:"from"`
	To           string                  `json:"to"`
	Daily        []presence.PeriodSummary `json:"daily"`
	Weekly       []presence.PeriodSummary `json:"weekly"`
	Monthly      []presence.PeriodSummary `json:"monthly"`
	Yearly       []presence.PeriodSummary `json:"yearly"`
	Distribution presence.Distribution   `json:"distribution"`
}

// PresenceService computes dashboard aggregates from stored scans. Both the
// cache and the metrics may be nil; the service then just computes
// everything on demand.
type PresenceService struct {
	source           EventSource
	cache            *redisstore.Store
	normalizer       *presence.Normalizer
	metrics          *metrics.Metrics
	defaultRangeDays int
	logger           *zap.Logger
}

// NewPresenceService builds service.
func NewPresenceService(source EventSource, cache *redisstore.Store, m *metrics.Metrics, defaultRangeDays int, logger *zap.Logger) *PresenceService {
	if defaultRangeDays <= 0 {
		defaultRangeDays = 14
	}
	return &PresenceService{
		source:           source,
		cache:            cache,
		normalizer:       presence.NewNormalizer(nil),
		metrics:          m,
		defaultRangeDays: defaultRangeDays,
		logger:           logger,
	}
}

// Summaries returns period summaries for the granularity and range. Zero
// from/to values default to the newest stored event date minus the
// configured window, matching how the dashboard opens.
func (s *PresenceService) Summaries(ctx context.Context, granularity presence.Granularity, from, to time.Time) ([]presence.PeriodSummary, error) {
	from, to, err := s.resolveRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		summaries, err := s.cache.Get(ctx, granularity, from, to)
		if err == nil {
			if s.metrics != nil {
				s.metrics.CacheHits.Inc()
			}
			return summaries, nil
		}
		if err != redis.Nil {
			s.logger.Warn("summary cache read failed", zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.CacheMisses.Inc()
		}
	}

	events, err := s.loadEvents(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summaries, err := presence.Aggregate(presence.PairSessions(events), granularity)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.AggregationRequests.WithLabelValues(string(granularity)).Inc()
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, granularity, from, to, summaries); err != nil {
			s.logger.Warn("summary cache write failed", zap.Error(err))
		}
	}
	return summaries, nil
}

// Distribution returns the per-event analytics for the range.
func (s *PresenceService) Distribution(ctx context.Context, from, to time.Time) (presence.Distribution, error) {
	from, to, err := s.resolveRange(ctx, from, to)
	if err != nil {
		return presence.Distribution{}, err
	}

	events, err := s.loadEvents(ctx, from, to)
	if err != nil {
		return presence.Distribution{}, err
	}
	return presence.AnalyzeDistribution(events), nil
}

// FullOverview loads the range once and computes all four granularities plus
// the distribution. Granularities are independent reducers over the same
// session slice, so they run concurrently; the slice is read-only from here.
func (s *PresenceService) FullOverview(ctx context.Context, from, to time.Time) (Overview, error) {
	from, to, err := s.resolveRange(ctx, from, to)
	if err != nil {
		return Overview{}, err
	}

	events, err := s.loadEvents(ctx, from, to)
	if err != nil {
		return Overview{}, err
	}
	sessions := presence.PairSessions(events)

	overview := Overview{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}

	granularities := []struct {
		granularity presence.Granularity
		target      *[]presence.PeriodSummary
	}{
		{presence.GranularityDay, &overview.Daily},
		{presence.GranularityWeek, &overview.Weekly},
		{presence.GranularityMonth, &overview.Monthly},
		{presence.GranularityYear, &overview.Yearly},
	}

	group, _ := errgroup.WithContext(ctx)
	for _, g := range granularities {
		g := g
		group.Go(func() error {
			summaries, err := presence.Aggregate(sessions, g.granularity)
			if err != nil {
				return err
			}
			*g.target = summaries
			return nil
		})
	}
	group.Go(func() error {
		overview.Distribution = presence.AnalyzeDistribution(events)
		return nil
	})
	if err := group.Wait(); err != nil {
		return Overview{}, err
	}
	return overview, nil
}

func (s *PresenceService) resolveRange(ctx context.Context, from, to time.Time) (time.Time, time.Time, error) {
	if to.IsZero() {
		max, err := s.source.MaxEventDate(ctx)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if max.IsZero() {
			max = time.Now().UTC()
		}
		to = max
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -s.defaultRangeDays)
	}
	return from, to, nil
}

// loadEvents fetches and normalizes the range. Malformed rows are dropped
// and counted; they never abort a dashboard request.
func (s *PresenceService) loadEvents(ctx context.Context, from, to time.Time) ([]presence.AccessEvent, error) {
	records, err := s.source.ListRawRecords(ctx, from, to)
	if err != nil {
		return nil, err
	}

	events, malformed := s.normalizer.Records(records)
	if len(malformed) > 0 {
		s.logger.Warn("dropped malformed access records",
			zap.Int("count", len(malformed)),
			zap.String("first", malformed[0].Error()))
		if s.metrics != nil {
			s.metrics.MalformedRecords.Add(float64(len(malformed)))
		}
	}
	return events, nil
}
