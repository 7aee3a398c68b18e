// internal/matching/candidates/fetcher.go

// Package candidates fetches the bounded guide pool for a match computation.
// The store query prefers preference-matching guides, broadens to the whole
// city when the preferred pool is too small, and is fronted by a TTL'd Redis
// cache keyed on the static criteria only.
package candidates

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/mridulmalani2/wandernest2-sub003/internal/common/errors"
	"github.com/mridulmalani2/wandernest2-sub003/internal/common/logger"
	"github.com/mridulmalani2/wandernest2-sub003/internal/common/metrics"
	"github.com/mridulmalani2/wandernest2-sub003/internal/matching/cachekey"
	"github.com/mridulmalani2/wandernest2-sub003/internal/models"
)

type Config struct {
	// MaxCandidates caps how many guides a single query may return.
	MaxCandidates int
	// MinPoolSize is the threshold below which the preference filter is
	// dropped and the city-wide pool is used instead.
	MinPoolSize int
	CacheTTL    time.Duration
}

type Fetcher struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

// NewFetcher wires the fetcher to its store and cache. redis may be nil; the
// fetcher then queries the store on every call.
func NewFetcher(config *Config, db *sql.DB, rdb *redis.Client, log logger.Logger) *Fetcher {
	return &Fetcher{
		config: config,
		db:     db,
		redis:  rdb,
		logger: log.WithFields(map[string]interface{}{"component": "candidate-fetcher"}),
	}
}

// guideColumns aggregates availability slots per guide in one round trip.
// The INNER JOIN doubles as the has-at-least-one-slot constraint.
const guideSelect = `
	SELECT g.id, g.display_name, g.nationality, g.languages, g.institution,
	       g.gender, g.city, g.completed_trips, g.avg_rating, g.no_show_count,
	       g.reliability_tier, g.interests, g.acceptance_rate,
	       COALESCE(json_agg(json_build_object(
	           'dayOfWeek', s.day_of_week,
	           'startTime', s.start_time,
	           'endTime', s.end_time) ORDER BY s.day_of_week), '[]') AS slots
	FROM guides g
	JOIN availability_slots s ON s.guide_id = g.id
	WHERE g.city = $1 AND g.status = 'approved'`

const guideGroupOrder = `
	GROUP BY g.id
	ORDER BY g.avg_rating DESC NULLS LAST, g.completed_trips DESC`

// FetchCandidates returns up to MaxCandidates approved guides with at least
// one availability slot in the criteria's city. An empty or blank city fails
// closed with an empty pool. Store errors propagate; cache errors are logged
// and bypassed so the cache stays a pure accelerator.
func (f *Fetcher) FetchCandidates(ctx context.Context, criteria models.MatchCriteria) ([]models.GuideCandidate, error) {
	if strings.TrimSpace(criteria.City) == "" {
		return nil, nil
	}

	key := f.cacheKey(criteria)
	if cached, ok := f.readCache(ctx, key); ok {
		return cached, nil
	}

	pool, err := f.query(ctx, criteria, true)
	if err != nil {
		return nil, err
	}

	// A rare preference combination must not starve the result set: drop the
	// preference filter and take the city-wide pool, degraded alignment over
	// an empty page.
	if criteria.HasPreferences() && len(pool) < f.config.MinPoolSize {
		metrics.CandidateFallbackQueries.Inc()
		f.logger.Info("preference pool below minimum, broadening to city-wide pool", map[string]interface{}{
			"city":        criteria.City,
			"poolSize":    len(pool),
			"minPoolSize": f.config.MinPoolSize,
		})
		pool, err = f.query(ctx, criteria, false)
		if err != nil {
			return nil, err
		}
	}

	f.writeCache(ctx, key, pool)
	return pool, nil
}

func (f *Fetcher) cacheKey(criteria models.MatchCriteria) string {
	return "match:candidates:" + cachekey.Sanitize(criteria.City) + ":" + criteria.Fingerprint()
}

func (f *Fetcher) readCache(ctx context.Context, key string) ([]models.GuideCandidate, bool) {
	if f.redis == nil {
		return nil, false
	}

	val, err := f.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			f.logger.Warn("candidate cache read failed", map[string]interface{}{
				"key":   key,
				"error": err,
			})
		}
		metrics.CandidateCacheMisses.Inc()
		return nil, false
	}

	var cached []models.GuideCandidate
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		metrics.CandidateCacheMisses.Inc()
		return nil, false
	}

	metrics.CandidateCacheHits.Inc()
	return cached, true
}

func (f *Fetcher) writeCache(ctx context.Context, key string, pool []models.GuideCandidate) {
	if f.redis == nil {
		return
	}

	data, err := json.Marshal(pool)
	if err != nil {
		return
	}
	if err := f.redis.Set(ctx, key, data, f.config.CacheTTL).Err(); err != nil {
		f.logger.Warn("candidate cache write failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
	}
}

func (f *Fetcher) query(ctx context.Context, criteria models.MatchCriteria, withPreferences bool) ([]models.GuideCandidate, error) {
	query := guideSelect
	args := []interface{}{criteria.City}

	// Soft preferences are ORed, not ANDed: the union of guides matching any
	// preference, so over-constraining cannot starve small cities.
	if withPreferences && criteria.HasPreferences() {
		var ors []string
		if criteria.PreferredNationality != "" {
			args = append(args, criteria.PreferredNationality)
			ors = append(ors, fmt.Sprintf("g.nationality = $%d", len(args)))
		}
		if criteria.PreferredGender != "" {
			args = append(args, criteria.PreferredGender)
			ors = append(ors, fmt.Sprintf("g.gender = $%d", len(args)))
		}
		if len(criteria.PreferredLanguages) > 0 {
			args = append(args, pq.Array(criteria.PreferredLanguages))
			ors = append(ors, fmt.Sprintf("g.languages ?| $%d", len(args)))
		}
		query += " AND (" + strings.Join(ors, " OR ") + ")"
	}

	args = append(args, f.config.MaxCandidates)
	query += guideGroupOrder + fmt.Sprintf("\n\tLIMIT $%d", len(args))

	rows, err := f.db.QueryContext(ctx, query, args...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewGuideQueryTimeoutError(criteria.City)
		}
		return nil, errors.NewGuideQueryFailedError(criteria.City, fmt.Errorf("query guide candidates: %w", err))
	}
	defer rows.Close()

	var pool []models.GuideCandidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, errors.NewGuideQueryFailedError(criteria.City, fmt.Errorf("scan guide candidate: %w", err))
		}
		pool = append(pool, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewGuideQueryFailedError(criteria.City, fmt.Errorf("iterate guide candidates: %w", err))
	}

	return pool, nil
}

func scanCandidate(rows *sql.Rows) (models.GuideCandidate, error) {
	var g models.GuideCandidate
	var languages, interests, slots []byte

	err := rows.Scan(
		&g.ID, &g.DisplayName, &g.Nationality, &languages, &g.Institution,
		&g.Gender, &g.City, &g.CompletedTrips, &g.AverageRating, &g.NoShowCount,
		&g.ReliabilityTier, &interests, &g.AcceptanceRate, &slots,
	)
	if err != nil {
		return g, err
	}

	// Corrupt JSON columns degrade to empty sets, not a failed fetch.
	if err := json.Unmarshal(languages, &g.Languages); err != nil {
		g.Languages = []string{}
	}
	if err := json.Unmarshal(interests, &g.Interests); err != nil {
		g.Interests = []string{}
	}
	if err := json.Unmarshal(slots, &g.Slots); err != nil {
		g.Slots = []models.AvailabilitySlot{}
	}

	return g, nil
}
