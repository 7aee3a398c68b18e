// internal/matching/matcher_test.go
package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mridulmalani2/wandernest2-sub003/internal/common/logger"
	"github.com/mridulmalani2/wandernest2-sub003/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeFetcher struct {
	pool []models.GuideCandidate
	err  error

	calls int
}

func (f *fakeFetcher) FetchCandidates(_ context.Context, _ models.MatchCriteria) ([]models.GuideCandidate, error) {
	f.calls++
	return f.pool, f.err
}

func createTestConfig() *Config {
	return &Config{ResultLimit: 4}
}

func everyDaySlots(startTime, endTime string) []models.AvailabilitySlot {
	slots := make([]models.AvailabilitySlot, 0, 7)
	for day := 0; day <= 6; day++ {
		slots = append(slots, models.AvailabilitySlot{
			DayOfWeek: day,
			StartTime: startTime,
			EndTime:   endTime,
		})
	}
	return slots
}

func eligibleGuide(id string, rating float64) models.GuideCandidate {
	return models.GuideCandidate{
		ID:            id,
		DisplayName:   "Guide " + id,
		City:          "Paris",
		AverageRating: models.Rated(rating),
		Slots:         everyDaySlots("08:00", "20:00"),
	}
}

func parisRequest() *models.TripRequest {
	return &models.TripRequest{
		ID:             "req-1",
		City:           "Paris",
		RequestedDates: json.RawMessage(`{"start": "2025-07-01", "end": "2025-07-03"}`),
	}
}

// ==========================
// Fail-Closed Tests
// ==========================

func TestFindMatches_InvalidCityReturnsEmpty(t *testing.T) {
	fetcher := &fakeFetcher{}
	matcher := NewMatcher(createTestConfig(), fetcher, logger.NewNoOpLogger())

	tests := []*models.TripRequest{
		nil,
		{City: ""},
		{City: "   "},
	}

	for _, request := range tests {
		matches, err := matcher.FindMatches(context.Background(), request)
		assert.NoError(t, err)
		assert.Empty(t, matches)
	}
	assert.Zero(t, fetcher.calls, "invalid requests must not reach the store")
}

func TestFindMatches_EmptyPoolIsTerminalNotError(t *testing.T) {
	matcher := NewMatcher(createTestConfig(), &fakeFetcher{}, logger.NewNoOpLogger())

	matches, err := matcher.FindMatches(context.Background(), parisRequest())

	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestFindMatches_StoreErrorPropagates(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("store unreachable")}
	matcher := NewMatcher(createTestConfig(), fetcher, logger.NewNoOpLogger())

	_, err := matcher.FindMatches(context.Background(), parisRequest())
	assert.Error(t, err)
}

// ==========================
// Ranking Tests
// ==========================

func TestFindMatches_SortedDescendingAndCapped(t *testing.T) {
	pool := make([]models.GuideCandidate, 0, 50)
	for i := 0; i < 50; i++ {
		// Ratings 0.0 through 4.9 produce strictly distinct scores.
		pool = append(pool, eligibleGuide(fmt.Sprintf("g%d", i), float64(i)*0.1))
	}

	matcher := NewMatcher(createTestConfig(), &fakeFetcher{pool: pool}, logger.NewNoOpLogger())

	matches, err := matcher.FindMatches(context.Background(), parisRequest())

	require.NoError(t, err)
	require.Len(t, matches, 4)
	for i := 1; i < len(matches); i++ {
		assert.Greater(t, matches[i-1].Score, matches[i].Score)
	}
	assert.Equal(t, "g49", matches[0].ID)
}

func TestFindMatches_TiesKeepFetchOrder(t *testing.T) {
	// Identical candidates score identically; the stable sort must preserve
	// the fetch ordering for them.
	pool := []models.GuideCandidate{
		eligibleGuide("first", 4.0),
		eligibleGuide("second", 4.0),
		eligibleGuide("third", 4.0),
	}

	matcher := NewMatcher(createTestConfig(), &fakeFetcher{pool: pool}, logger.NewNoOpLogger())

	matches, err := matcher.FindMatches(context.Background(), parisRequest())

	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "first", matches[0].ID)
	assert.Equal(t, "second", matches[1].ID)
	assert.Equal(t, "third", matches[2].ID)
}

func TestFindMatches_UnavailableGuidesRankBelowAvailable(t *testing.T) {
	unavailable := eligibleGuide("weekender", 5.0)
	unavailable.Slots = []models.AvailabilitySlot{
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "18:00"},
	}
	available := eligibleGuide("everyday", 3.0)

	matcher := NewMatcher(createTestConfig(), &fakeFetcher{
		pool: []models.GuideCandidate{unavailable, available},
	}, logger.NewNoOpLogger())

	matches, err := matcher.FindMatches(context.Background(), parisRequest())

	require.NoError(t, err)
	require.Len(t, matches, 2)
	// 40 availability points outweigh the 8-point rating gap.
	assert.Equal(t, "everyday", matches[0].ID)
}
