// internal/models/trip_request.go
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// Preferred time-of-day values accepted on a trip request. Anything else
// skips time-of-day filtering.
const (
	TimeOfDayMorning   = "morning"
	TimeOfDayAfternoon = "afternoon"
	TimeOfDayEvening   = "evening"
)

// TripRequest is a tourist's structured ask, read from the trip_requests
// table by the surrounding application and handed to the matcher already
// fetched. Immutable for the duration of a match computation.
//
// RequestedDates is kept opaque: it is either {"start": "...", "end": "..."}
// or {"date": "..."} and is parsed by the availability evaluator, which owns
// the rejection rules for malformed shapes.
type TripRequest struct {
	ID                   string          `json:"id"`
	City                 string          `json:"city"`
	RequestedDates       json.RawMessage `json:"requestedDates"`
	PreferredTime        string          `json:"preferredTime,omitempty"`
	Interests            []string        `json:"interests,omitempty"`
	PreferredNationality string          `json:"preferredNationality,omitempty"`
	PreferredLanguages   []string        `json:"preferredLanguages,omitempty"`
	PreferredGender      string          `json:"preferredGender,omitempty"`
}

// MatchCriteria is the read-only projection of a TripRequest used to build
// the store filter and the candidate-cache key. Dates never appear here:
// they change per request and would defeat caching.
type MatchCriteria struct {
	City                 string   `json:"city"`
	PreferredNationality string   `json:"preferredNationality,omitempty"`
	PreferredLanguages   []string `json:"preferredLanguages,omitempty"`
	PreferredGender      string   `json:"preferredGender,omitempty"`
}

// NewMatchCriteria projects the static preferences out of a trip request.
func NewMatchCriteria(req *TripRequest) MatchCriteria {
	return MatchCriteria{
		City:                 req.City,
		PreferredNationality: req.PreferredNationality,
		PreferredLanguages:   req.PreferredLanguages,
		PreferredGender:      req.PreferredGender,
	}
}

// HasPreferences reports whether any soft preference is present.
func (c MatchCriteria) HasPreferences() bool {
	return c.PreferredNationality != "" || c.PreferredGender != "" || len(c.PreferredLanguages) > 0
}

// Fingerprint returns the full (untruncated) SHA-256 of the static criteria,
// hex encoded. Languages are sorted so field order never splits the cache.
func (c MatchCriteria) Fingerprint() string {
	langs := append([]string(nil), c.PreferredLanguages...)
	for i := range langs {
		langs[i] = strings.ToLower(strings.TrimSpace(langs[i]))
	}
	sort.Strings(langs)

	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(c.City)))
	b.WriteString("|")
	b.WriteString(strings.ToLower(strings.TrimSpace(c.PreferredNationality)))
	b.WriteString("|")
	b.WriteString(strings.ToLower(strings.TrimSpace(c.PreferredGender)))
	b.WriteString("|")
	b.WriteString(strings.Join(langs, ","))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
