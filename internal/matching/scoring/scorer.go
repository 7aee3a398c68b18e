// internal/matching/scoring/scorer.go

// Package scoring computes the weighted match score for a guide candidate
// against a trip request. Scoring is deterministic and does no I/O.
package scoring

import (
	"math"
	"strings"

	"github.com/mridulmalani2/wandernest2-sub003/internal/matching/availability"
	"github.com/mridulmalani2/wandernest2-sub003/internal/models"
)

// Rubric weights. The 100-point base can be exceeded by the nationality and
// language bonuses; bonuses are genuine differentiators between comparably
// available guides, so no cap is applied.
const (
	availabilityPoints = 40.0
	ratingMultiplier   = 4.0
	reliabilityMax     = 20.0
	noShowPenalty      = 5.0
	interestMax        = 20.0
	nationalityBonus   = 10.0
	languageBonusStep  = 5.0
	languageBonusMax   = 15.0

	// defaultRating is the neutral assumption for a guide with no ratings
	// yet. A guide who earned a rating of 0 through poor reviews scores
	// below this.
	defaultRating = 3.0
)

// Score applies the weighted rubric: availability (40, binary), rating (≤20),
// reliability (≤20), interest overlap (≤20), plus nationality (+10) and
// language (≤+15) bonuses. The result is rounded to one decimal place.
func Score(candidate *models.GuideCandidate, request *models.TripRequest) float64 {
	score := 0.0

	if availability.IsAvailable(candidate.Slots, request.RequestedDates, request.PreferredTime) {
		score += availabilityPoints
	}

	score += candidate.AverageRating.Or(defaultRating) * ratingMultiplier
	score += reliabilityScore(candidate.NoShowCount)
	score += interestOverlapScore(candidate.Interests, request.Interests)
	score += nationalityBonusScore(candidate.Nationality, request.PreferredNationality)
	score += languageBonusScore(candidate.Languages, request.PreferredLanguages)

	return math.Round(score*10) / 10
}

// reliabilityScore charges 5 points per no-show, floored at 0.
func reliabilityScore(noShowCount int) float64 {
	if noShowCount <= 0 {
		return reliabilityMax
	}
	return math.Max(0, reliabilityMax-float64(noShowCount)*noShowPenalty)
}

// interestOverlapScore is proportional to how many requested interests the
// candidate shares. A request with no interests contributes 0, not a default
// full score.
func interestOverlapScore(candidateInterests, requestedInterests []string) float64 {
	if len(requestedInterests) == 0 {
		return 0
	}

	have := make(map[string]bool, len(candidateInterests))
	for _, interest := range candidateInterests {
		have[normalize(interest)] = true
	}

	overlap := 0
	for _, interest := range requestedInterests {
		if have[normalize(interest)] {
			overlap++
		}
	}

	return float64(overlap) / float64(len(requestedInterests)) * interestMax
}

func nationalityBonusScore(candidateNationality, preferred string) float64 {
	if preferred == "" {
		return 0
	}
	if candidateNationality == preferred {
		return nationalityBonus
	}
	return 0
}

// languageBonusScore adds 5 per requested language the candidate speaks,
// capped at 15.
func languageBonusScore(candidateLanguages, preferredLanguages []string) float64 {
	if len(preferredLanguages) == 0 {
		return 0
	}

	spoken := make(map[string]bool, len(candidateLanguages))
	for _, lang := range candidateLanguages {
		spoken[normalize(lang)] = true
	}

	matches := 0
	for _, lang := range preferredLanguages {
		if spoken[normalize(lang)] {
			matches++
		}
	}

	return math.Min(float64(matches)*languageBonusStep, languageBonusMax)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
