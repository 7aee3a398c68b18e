// internal/matching/matcher.go

// Package matching composes the candidate fetcher, scorer, and result cap
// into the findMatches entry point used by the match workers.
package matching

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mridulmalani2/wandernest2-sub003/internal/common/logger"
	"github.com/mridulmalani2/wandernest2-sub003/internal/common/metrics"
	"github.com/mridulmalani2/wandernest2-sub003/internal/matching/scoring"
	"github.com/mridulmalani2/wandernest2-sub003/internal/models"
)

// CandidateFetcher supplies the bounded guide pool for a criteria set. The
// production implementation lives in the candidates package; tests substitute
// in-memory fakes.
type CandidateFetcher interface {
	FetchCandidates(ctx context.Context, criteria models.MatchCriteria) ([]models.GuideCandidate, error)
}

type Config struct {
	// ResultLimit caps the ranked result set returned to the caller.
	ResultLimit int
}

type Matcher struct {
	config  *Config
	fetcher CandidateFetcher
	logger  logger.Logger
}

func NewMatcher(config *Config, fetcher CandidateFetcher, log logger.Logger) *Matcher {
	return &Matcher{
		config:  config,
		fetcher: fetcher,
		logger:  log.WithFields(map[string]interface{}{"component": "matcher"}),
	}
}

// FindMatches returns the ranked, size-capped matches for a trip request.
// Business outcomes (invalid request, empty pool, nobody available) produce
// an empty or short list; only infrastructure failures return an error.
func (m *Matcher) FindMatches(ctx context.Context, request *models.TripRequest) ([]models.ScoredCandidate, error) {
	start := time.Now()

	if request == nil || strings.TrimSpace(request.City) == "" {
		metrics.MatchRequestsTotal.WithLabelValues("invalid_request").Inc()
		return []models.ScoredCandidate{}, nil
	}

	criteria := models.NewMatchCriteria(request)

	pool, err := m.fetcher.FetchCandidates(ctx, criteria)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("store_error").Inc()
		return nil, err
	}

	if len(pool) == 0 {
		metrics.MatchRequestsTotal.WithLabelValues("empty_pool").Inc()
		m.logger.Info("no eligible guides for request", map[string]interface{}{
			"requestId": request.ID,
			"city":      request.City,
		})
		return []models.ScoredCandidate{}, nil
	}

	scored := make([]models.ScoredCandidate, 0, len(pool))
	for i := range pool {
		scored = append(scored, models.ScoredCandidate{
			GuideCandidate: pool[i],
			Score:          scoring.Score(&pool[i], request),
		})
	}

	// Stable sort: equal scores keep the fetch ordering (rating, then trip
	// count), which is the intended tie-break.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > m.config.ResultLimit {
		scored = scored[:m.config.ResultLimit]
	}

	metrics.MatchRequestsTotal.WithLabelValues("matched").Inc()
	m.logger.Info("matches computed", map[string]interface{}{
		"requestId":  request.ID,
		"city":       request.City,
		"poolSize":   len(pool),
		"matches":    len(scored),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return scored, nil
}
