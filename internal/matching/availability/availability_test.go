// internal/matching/availability/availability_test.go
package availability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mridulmalani2/wandernest2-sub003/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func rangeDates(start, end string) json.RawMessage {
	raw, _ := json.Marshal(map[string]string{"start": start, "end": end})
	return raw
}

func singleDate(date string) json.RawMessage {
	raw, _ := json.Marshal(map[string]string{"date": date})
	return raw
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

// ==========================
// Date Shape Tests
// ==========================

func TestIsAvailable_RejectsMalformedDates(t *testing.T) {
	slots := everyDaySlots("06:00", "22:00")

	tests := []struct {
		name string
		raw  json.RawMessage
	}{
		{"nil payload", nil},
		{"unparsable json", json.RawMessage(`{"start": `)},
		{"wrong shape", json.RawMessage(`{"from": "2025-07-01", "to": "2025-07-02"}`)},
		{"empty object", json.RawMessage(`{}`)},
		{"invalid calendar date", rangeDates("2025-02-30", "2025-03-02")},
		{"garbage date strings", rangeDates("not-a-date", "also-not")},
		{"missing end", json.RawMessage(`{"start": "2025-07-01"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsAvailable(slots, tt.raw, ""))
		})
	}
}

func TestIsAvailable_RejectsInvertedRange(t *testing.T) {
	slots := everyDaySlots("00:00", "23:59")
	// An inverted range must never be accepted as "any day".
	assert.False(t, IsAvailable(slots, rangeDates("2025-06-10", "2025-06-01"), ""))
}

func TestIsAvailable_EmptySlotsDenyByDefault(t *testing.T) {
	assert.False(t, IsAvailable(nil, singleDate("2025-07-01"), ""))
	assert.False(t, IsAvailable([]models.AvailabilitySlot{}, singleDate("2025-07-01"), ""))
}

// ==========================
// Day Coverage Tests
// ==========================

func TestIsAvailable_SingleDayMatchesDayOfWeek(t *testing.T) {
	// 2025-07-01 is a Tuesday (weekday 2).
	tuesdayOnly := []models.AvailabilitySlot{
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
	}

	assert.True(t, IsAvailable(tuesdayOnly, singleDate("2025-07-01"), ""))
	// Wednesday request against a Tuesday-only guide fails.
	assert.False(t, IsAvailable(tuesdayOnly, singleDate("2025-07-02"), ""))
}

func TestIsAvailable_RangeRequiresEveryDayCovered(t *testing.T) {
	// Tuesday and Wednesday, but not Thursday.
	slots := []models.AvailabilitySlot{
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00"},
	}

	// Tue-Wed works.
	assert.True(t, IsAvailable(slots, rangeDates("2025-07-01", "2025-07-02"), ""))
	// Tue-Thu fails: a single uncovered day fails the whole range.
	assert.False(t, IsAvailable(slots, rangeDates("2025-07-01", "2025-07-03"), ""))
}

func TestIsAvailable_MalformedSlotsDiscardedIndividually(t *testing.T) {
	slots := []models.AvailabilitySlot{
		{DayOfWeek: 2, StartTime: "banana", EndTime: "17:00"}, // discarded
		{DayOfWeek: 2, StartTime: "17:00", EndTime: "09:00"},  // inverted, discarded
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},  // survives
	}
	assert.True(t, IsAvailable(slots, singleDate("2025-07-01"), ""))

	allInvalid := []models.AvailabilitySlot{
		{DayOfWeek: 2, StartTime: "25:00", EndTime: "26:00"},
		{DayOfWeek: 9, StartTime: "09:00", EndTime: "17:00"},
	}
	assert.False(t, IsAvailable(allInvalid, singleDate("2025-07-01"), ""))
}

// ==========================
// Time-of-Day Window Tests
// ==========================

func TestIsAvailable_TimeOfDayWindows(t *testing.T) {
	tests := []struct {
		name          string
		startTime     string
		endTime       string
		preferredTime string
		expected      bool
	}{
		{"morning slot matches morning", "06:00", "12:00", "morning", true},
		{"afternoon slot rejected for morning", "13:00", "18:00", "morning", false},
		{"slot straddling noon matches both", "10:00", "14:00", "afternoon", true},
		{"evening slot matches evening", "18:30", "22:00", "evening", true},
		{"morning slot rejected for evening", "06:00", "11:00", "evening", false},
		{"boundary touch does not overlap", "12:00", "18:00", "morning", false},
		{"unrecognized window skips filtering", "03:00", "04:00", "midnight", true},
		{"absent window skips filtering", "03:00", "04:00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := everyDaySlots(tt.startTime, tt.endTime)
			got := IsAvailable(slots, singleDate("2025-07-01"), tt.preferredTime)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// ==========================
// Bounds Tests
// ==========================

func TestIsAvailable_EnumerationCappedAtThirtyDays(t *testing.T) {
	// Guide covers every day; a multi-year range must terminate and pass
	// using only the capped window.
	slots := everyDaySlots("08:00", "20:00")
	assert.True(t, IsAvailable(slots, rangeDates("2025-01-01", "2030-01-01"), ""))

	// Weekday-only guide fails within the first capped days.
	weekdays := []models.AvailabilitySlot{
		{DayOfWeek: 1, StartTime: "08:00", EndTime: "20:00"},
		{DayOfWeek: 2, StartTime: "08:00", EndTime: "20:00"},
		{DayOfWeek: 3, StartTime: "08:00", EndTime: "20:00"},
		{DayOfWeek: 4, StartTime: "08:00", EndTime: "20:00"},
		{DayOfWeek: 5, StartTime: "08:00", EndTime: "20:00"},
	}
	assert.False(t, IsAvailable(weekdays, rangeDates("2025-01-01", "2030-01-01"), ""))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		clock   string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"12", 0, false},
		{"", 0, false},
		{"ab:cd", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			minutes, ok := parseClock(tt.clock)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.minutes, minutes)
			}
		})
	}
}
