// internal/matching/scoring/scorer_test.go
package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mridulmalani2/wandernest2-sub003/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

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

func testRequest() *models.TripRequest {
	return &models.TripRequest{
		City:           "Paris",
		RequestedDates: json.RawMessage(`{"start": "2025-07-01", "end": "2025-07-03"}`),
	}
}

func testCandidate() *models.GuideCandidate {
	return &models.GuideCandidate{
		ID:          "guide-1",
		DisplayName: "Amelie",
		City:        "Paris",
		Slots:       everyDaySlots("06:00", "14:00"),
	}
}

// ==========================
// Rating Term Tests
// ==========================

func TestScore_ZeroRatingScoresBelowMissingRating(t *testing.T) {
	request := testRequest()

	zeroRated := testCandidate()
	zeroRated.AverageRating = models.Rated(0)

	unrated := testCandidate()
	unrated.AverageRating = models.Unrated()

	zeroScore := Score(zeroRated, request)
	unratedScore := Score(unrated, request)

	// 0*4 = 0 for an earned zero, 3.0*4 = 12 for the neutral default.
	assert.Equal(t, unratedScore-12.0, zeroScore)
	assert.Less(t, zeroScore, unratedScore)
}

func TestScore_RatingTerm(t *testing.T) {
	tests := []struct {
		name     string
		rating   models.Rating
		expected float64 // rating contribution only
	}{
		{"five stars", models.Rated(5), 20},
		{"four and a half", models.Rated(4.5), 18},
		{"earned zero", models.Rated(0), 0},
		{"no ratings yet", models.Unrated(), 12},
	}

	request := testRequest()
	baseline := testCandidate()
	baseline.AverageRating = models.Rated(0)
	base := Score(baseline, request)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := testCandidate()
			candidate.AverageRating = tt.rating
			assert.Equal(t, base+tt.expected, Score(candidate, request))
		})
	}
}

// ==========================
// Reliability Term Tests
// ==========================

func TestReliabilityScore(t *testing.T) {
	tests := []struct {
		noShows  int
		expected float64
	}{
		{0, 20},
		{1, 15},
		{2, 10},
		{4, 0},
		{10, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, reliabilityScore(tt.noShows))
	}
}

// ==========================
// Interest Overlap Tests
// ==========================

func TestInterestOverlapScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		requested []string
		expected  float64
	}{
		{"no interests requested contributes zero", []string{"History", "Food"}, nil, 0},
		{"full overlap", []string{"History", "Food"}, []string{"History", "Food"}, 20},
		{"half overlap", []string{"History"}, []string{"History", "Food"}, 10},
		{"no overlap", []string{"Nightlife"}, []string{"History", "Food"}, 0},
		{"case insensitive", []string{"history"}, []string{"History"}, 20},
		{"candidate with no interests", nil, []string{"History"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, interestOverlapScore(tt.candidate, tt.requested))
		})
	}
}

// ==========================
// Bonus Tests
// ==========================

func TestNationalityBonusScore(t *testing.T) {
	assert.Equal(t, 10.0, nationalityBonusScore("French", "French"))
	assert.Equal(t, 0.0, nationalityBonusScore("French", "Italian"))
	assert.Equal(t, 0.0, nationalityBonusScore("French", ""))
}

func TestLanguageBonusScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		preferred []string
		expected  float64
	}{
		{"no preference", []string{"French"}, nil, 0},
		{"one match", []string{"French", "English"}, []string{"French"}, 5},
		{"two matches", []string{"French", "English"}, []string{"French", "English"}, 10},
		{"capped at fifteen", []string{"a", "b", "c", "d"}, []string{"a", "b", "c", "d"}, 15},
		{"no matches", []string{"German"}, []string{"French"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, languageBonusScore(tt.candidate, tt.preferred))
		})
	}
}

// ==========================
// Full Rubric Tests
// ==========================

func TestScore_ParisScenario(t *testing.T) {
	request := &models.TripRequest{
		City:               "Paris",
		RequestedDates:     json.RawMessage(`{"start": "2025-07-01", "end": "2025-07-03"}`),
		PreferredTime:      "morning",
		Interests:          []string{"History", "Food"},
		PreferredLanguages: []string{"French"},
	}

	candidate := &models.GuideCandidate{
		ID:            "guide-paris",
		DisplayName:   "Claire",
		City:          "Paris",
		Languages:     []string{"French"},
		Interests:     []string{"History", "Food"},
		AverageRating: models.Rated(4.5),
		NoShowCount:   0,
		Slots:         everyDaySlots("06:00", "14:00"),
	}

	// 40 availability + 18 rating + 20 reliability + 20 interests + 5 language.
	assert.Equal(t, 103.0, Score(candidate, request))
}

func TestScore_UnavailableCandidateLosesFortyPoints(t *testing.T) {
	request := testRequest()

	available := testCandidate()
	unavailable := testCandidate()
	unavailable.Slots = []models.AvailabilitySlot{
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"}, // Sundays only
	}

	assert.Equal(t, Score(available, request)-40.0, Score(unavailable, request))
}

func TestScore_RoundsToOneDecimal(t *testing.T) {
	request := testRequest()
	request.Interests = []string{"History", "Food", "Art"}

	candidate := testCandidate()
	candidate.Interests = []string{"History"} // 1/3 * 20 = 6.666...
	candidate.AverageRating = models.Rated(3)

	// 40 + 12 + 20 + 6.7 = 78.7
	assert.Equal(t, 78.7, Score(candidate, request))
}
