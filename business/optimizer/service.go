package optimizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"
	"myStarCompanion/pkg/metrics"
)

// RelicSource returns a user's owned relics with their catalog relic preloaded.
type RelicSource interface {
	FindAllRelicsByUser(ctx context.Context, userID uint) ([]domain.UserRelic, error)
}

// ResultCache stores optimization results per user and stat pair. Entries are
// scoped to a version; invalidation moves the version on, so a result computed
// from data read before an invalidation is stored where it is never served.
type ResultCache interface {
	Version(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, userID uint, version, statA, statB string) ([]domain.OptimizedSlot, bool, error)
	Set(ctx context.Context, userID uint, version, statA, statB string, entries []domain.OptimizedSlot) error
	InvalidateUser(ctx context.Context, userID uint) error
	InvalidateAll(ctx context.Context) error
}

type Service struct {
	source RelicSource
	cache  ResultCache
}

// NewService builds the optimizer service. cache may be nil.
func NewService(source RelicSource, cache ResultCache) *Service {
	return &Service{
		source: source,
		cache:  cache,
	}
}

func (s *Service) OptimizeForUser(ctx context.Context, userID uint, statA, statB string) ([]domain.OptimizedSlot, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when optimizing relics")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if userID == 0 {
		return nil, errors.New("invalid user id")
	}

	start := time.Now()
	defer func() {
		metrics.OptimizeLatency.Observe(time.Since(start).Seconds())
	}()

	// version must be read before the relics are loaded
	useCache := s.cache != nil
	var version string
	if useCache {
		v, err := s.cache.Version(ctx, userID)
		if err != nil {
			metrics.OptimizeCache.WithLabelValues("error").Inc()
			logger.Warn("Failed to read optimization cache version", "user_id", userID, "error", err)
			useCache = false
		}
		version = v
	}

	if useCache {
		entries, ok, err := s.cache.Get(ctx, userID, version, statA, statB)
		switch {
		case err != nil:
			metrics.OptimizeCache.WithLabelValues("error").Inc()
			logger.Warn("Failed to read optimization cache", "user_id", userID, "error", err)
		case ok:
			metrics.OptimizeCache.WithLabelValues("hit").Inc()
			return entries, nil
		default:
			metrics.OptimizeCache.WithLabelValues("miss").Inc()
		}
	}

	owned, err := s.source.FindAllRelicsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to load owned relics", err)
		return nil, fmt.Errorf("failed to load owned relics: %w", err)
	}

	candidates := make([]domain.RelicRecord, 0, len(owned))
	for _, r := range owned {
		candidates = append(candidates, r.Record())
	}
	metrics.OptimizeCandidates.Observe(float64(len(candidates)))

	result := Optimize(candidates, statA, statB)
	for _, slot := range result.Missing() {
		metrics.OptimizeEmptySlots.WithLabelValues(string(slot)).Inc()
	}
	entries := result.Entries(statA, statB)

	if useCache {
		if err := s.cache.Set(ctx, userID, version, statA, statB, entries); err != nil {
			logger.Warn("Failed to write optimization cache", "user_id", userID, "error", err)
		}
	}

	return entries, nil
}

// HandleChange drops cached results that a change may have made stale: the
// user's results when their relics change, everyone's when a catalog relic is
// renamed or removed. It is handed to the collection and relic services.
func (s *Service) HandleChange(ctx context.Context, ev domain.ChangeEvent) {
	if s.cache == nil {
		return
	}

	var err error
	switch ev.Kind {
	case domain.ChangeKindRelic:
		err = s.cache.InvalidateUser(ctx, ev.UserID)
	case domain.ChangeKindCatalogRelic:
		err = s.cache.InvalidateAll(ctx)
	default:
		return
	}
	if err != nil {
		logger.Warn("Failed to invalidate optimization cache", "kind", ev.Kind, "user_id", ev.UserID, "error", err)
	}
}

// StatVocabulary lists the stat names clients are offered.
func (s *Service) StatVocabulary() []string {
	return StatVocabulary()
}

func (s *Service) Slots() []domain.SlotName {
	return Slots()
}
