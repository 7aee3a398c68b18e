// internal/matching/availability/availability.go

// Package availability decides whether a guide's recurring weekly slots cover
// a requested date range. It fails closed: any malformed input yields "not
// available" instead of an error, so a bad trip request can never crash
// matching.
package availability

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/mridulmalani2/wandernest2-sub003/internal/models"
)

// maxRangeDays bounds date enumeration so a pathological multi-year range
// cannot iterate unboundedly.
const maxRangeDays = 30

const dateLayout = "2006-01-02"

type interval struct {
	startMinutes int
	endMinutes   int
}

// Coarse time-of-day windows, minutes since midnight.
var timeWindows = map[string]interval{
	"morning":   {6 * 60, 12 * 60},
	"afternoon": {12 * 60, 18 * 60},
	"evening":   {18 * 60, 23 * 60},
}

// requestedDates is the accepted wire shape: either {start, end} or {date}.
type requestedDates struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Date  string `json:"date"`
}

// IsAvailable reports whether the slots cover every day of the requested
// range, optionally restricted to a coarse time-of-day window. The range is
// opaque JSON: {"start": "YYYY-MM-DD", "end": "YYYY-MM-DD"} or
// {"date": "YYYY-MM-DD"}. Any other shape, unparsable JSON, invalid
// calendar dates, or an inverted range rejects the whole check.
//
// An unrecognized or absent preferredTime skips time-of-day filtering;
// day-of-week coverage alone then suffices.
func IsAvailable(slots []models.AvailabilitySlot, rawDates json.RawMessage, preferredTime string) bool {
	if len(slots) == 0 {
		return false
	}

	start, end, ok := parseDates(rawDates)
	if !ok {
		return false
	}
	if start.After(end) {
		return false
	}

	byDay := intervalsByDay(slots)
	if len(byDay) == 0 {
		return false
	}

	window, hasWindow := timeWindows[strings.ToLower(strings.TrimSpace(preferredTime))]

	days := 0
	for d := start; !d.After(end) && days < maxRangeDays; d = d.AddDate(0, 0, 1) {
		days++
		intervals := byDay[int(d.Weekday())]
		if len(intervals) == 0 {
			return false
		}
		if hasWindow && !anyOverlap(intervals, window) {
			return false
		}
	}

	// Nothing requested is never "always available".
	return days > 0
}

func parseDates(raw json.RawMessage) (time.Time, time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, time.Time{}, false
	}

	var rd requestedDates
	if err := json.Unmarshal(raw, &rd); err != nil {
		return time.Time{}, time.Time{}, false
	}

	switch {
	case rd.Start != "" && rd.End != "":
		start, err1 := time.Parse(dateLayout, rd.Start)
		end, err2 := time.Parse(dateLayout, rd.End)
		if err1 != nil || err2 != nil {
			return time.Time{}, time.Time{}, false
		}
		return start, end, true
	case rd.Date != "":
		day, err := time.Parse(dateLayout, rd.Date)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		return day, day, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// intervalsByDay filters slots once: malformed times and start>=end slots are
// discarded individually, never escalated to a whole-guide rejection.
func intervalsByDay(slots []models.AvailabilitySlot) map[int][]interval {
	byDay := make(map[int][]interval)
	for _, s := range slots {
		if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
			continue
		}
		startMin, ok := parseClock(s.StartTime)
		if !ok {
			continue
		}
		endMin, ok := parseClock(s.EndTime)
		if !ok {
			continue
		}
		if startMin >= endMin {
			continue
		}
		byDay[s.DayOfWeek] = append(byDay[s.DayOfWeek], interval{startMin, endMin})
	}
	return byDay
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(clock string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// anyOverlap applies the standard half-open interval overlap test.
func anyOverlap(intervals []interval, window interval) bool {
	for _, iv := range intervals {
		if iv.startMinutes < window.endMinutes && iv.endMinutes > window.startMinutes {
			return true
		}
	}
	return false
}
