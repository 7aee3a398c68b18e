// internal/workers/matching/find-guide-matches/models.go
package findguidematches

import (
	"encoding/json"

	"github.com/mridulmalani2/wandernest2-sub003/internal/models"
)

type Input struct {
	RequestID            string          `json:"requestId"`
	City                 string          `json:"city"`
	RequestedDates       json.RawMessage `json:"requestedDates,omitempty"`
	PreferredTime        string          `json:"preferredTime,omitempty"`
	Interests            []string        `json:"interests,omitempty"`
	PreferredNationality string          `json:"preferredNationality,omitempty"`
	PreferredLanguages   []string        `json:"preferredLanguages,omitempty"`
	PreferredGender      string          `json:"preferredGender,omitempty"`
}

// ToTripRequest converts the job payload into the matcher's request type.
func (in *Input) ToTripRequest() *models.TripRequest {
	return &models.TripRequest{
		ID:                   in.RequestID,
		City:                 in.City,
		RequestedDates:       in.RequestedDates,
		PreferredTime:        in.PreferredTime,
		Interests:            in.Interests,
		PreferredNationality: in.PreferredNationality,
		PreferredLanguages:   in.PreferredLanguages,
		PreferredGender:      in.PreferredGender,
	}
}

type Output struct {
	Matches    []Match `json:"matches"`
	MatchCount int     `json:"matchCount"`
}

// Match is the process-facing view of a scored candidate. Guide identity is
// carried alongside the anonymous label; downstream steps decide which one a
// tourist may see.
type Match struct {
	GuideID     string   `json:"guideId"`
	AnonymousID string   `json:"anonymousId"`
	Score       float64  `json:"score"`
	City        string   `json:"city"`
	Nationality string   `json:"nationality,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	Institution string   `json:"institution,omitempty"`
}
