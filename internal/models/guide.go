// internal/models/guide.go
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// GuideStatus values as stored in the guides table.
const (
	GuideStatusPending  = "pending"
	GuideStatusApproved = "approved"
	GuideStatusRejected = "rejected"
)

// Rating is a guide's average rating as a tagged value: a guide with a real
// rating of 0 earned through reviews is not the same as a guide with no
// ratings yet. Known reports which case this is.
type Rating struct {
	Value float64 `json:"value"`
	Known bool    `json:"known"`
}

// Rated returns a known rating.
func Rated(value float64) Rating {
	return Rating{Value: value, Known: true}
}

// Unrated returns the "no ratings yet" value.
func Unrated() Rating {
	return Rating{}
}

// Or returns the rating value, or def when the guide has no ratings yet or
// the stored value is not a finite number.
func (r Rating) Or(def float64) float64 {
	if !r.Known || math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return def
	}
	return r.Value
}

// UnmarshalJSON accepts a JSON number or null. Anything else is treated as
// unrated rather than failing the whole candidate.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		*r = Unrated()
		return nil
	}
	if f, ok := v.(float64); ok {
		*r = Rated(f)
		return nil
	}
	*r = Unrated()
	return nil
}

// MarshalJSON renders an unknown rating as null so cached candidates round-trip.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Known {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// Scan implements sql.Scanner so a nullable avg_rating column scans directly
// into a Rating.
func (r *Rating) Scan(value interface{}) error {
	if value == nil {
		*r = Unrated()
		return nil
	}
	switch v := value.(type) {
	case float64:
		*r = Rated(v)
	case int64:
		*r = Rated(float64(v))
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			*r = Unrated()
			return nil
		}
		*r = Rated(f)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*r = Unrated()
			return nil
		}
		*r = Rated(f)
	default:
		return fmt.Errorf("cannot scan %T into Rating", value)
	}
	return nil
}

// AvailabilitySlot is a recurring weekly interval during which a guide can be
// booked. DayOfWeek is 0-6, Sunday-indexed. Times are wall-clock "HH:MM" in
// the guide's local convention.
type AvailabilitySlot struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Note      string `json:"note,omitempty"`
}

// GuideCandidate is the projection of a guide profile used for scoring and
// display. It deliberately carries no contact fields so candidate lists are
// safe to cache.
type GuideCandidate struct {
	ID             string             `json:"id"`
	DisplayName    string             `json:"displayName"`
	Nationality    string             `json:"nationality"`
	Languages      []string           `json:"languages"`
	Institution    string             `json:"institution"`
	Gender         string             `json:"gender"`
	City           string             `json:"city"`
	CompletedTrips int                `json:"completedTrips"`
	AverageRating  Rating             `json:"averageRating"`
	NoShowCount    int                `json:"noShowCount"`
	ReliabilityTier string            `json:"reliabilityTier"`
	Interests      []string           `json:"interests"`
	AcceptanceRate float64            `json:"acceptanceRate"`
	Slots          []AvailabilitySlot `json:"availabilitySlots"`
}

// ScoredCandidate is a GuideCandidate plus its computed match score. Computed
// per request, never persisted.
type ScoredCandidate struct {
	GuideCandidate
	Score float64 `json:"score"`
}
