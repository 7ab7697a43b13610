package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorkit/scheduler/internal/httperr"
)

// 2026-01-05 is a Monday.
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func TestGenerateSlots_SingleWindowSingleDay(t *testing.T) {
	windows := []Window{
		{StartTime: "09:00", EndTime: "10:00", Weekdays: []string{"MONDAY"}},
	}

	slots, err := GenerateSlots(windows, 30, 7, monday)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, monday.Add(9*time.Hour), slots[0])
	assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), slots[1])
}

func TestGenerateSlots_DropsTrailingPartialSlot(t *testing.T) {
	windows := []Window{
		{StartTime: "09:00", EndTime: "10:00", Weekdays: []string{"MONDAY"}},
	}

	// 45-minute meetings in a 60-minute window: 09:45 would spill past the
	// window end, so only 09:00 survives.
	slots, err := GenerateSlots(windows, 45, 1, monday)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, monday.Add(9*time.Hour), slots[0])
}

func TestGenerateSlots_DiscardsSlotsBeforeNow(t *testing.T) {
	windows := []Window{
		{StartTime: "09:00", EndTime: "10:00", Weekdays: []string{"MONDAY"}},
	}

	now := monday.Add(9*time.Hour + 15*time.Minute)

	slots, err := GenerateSlots(windows, 30, 1, now)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), slots[0])
}

func TestGenerateSlots_HorizonIsExclusive(t *testing.T) {
	windows := []Window{
		{StartTime: "09:00", EndTime: "10:00", Weekdays: []string{"MONDAY", "TUESDAY"}},
	}

	// One-day horizon from Monday midnight never reaches Tuesday.
	slots, err := GenerateSlots(windows, 30, 1, monday)
	require.NoError(t, err)

	for _, s := range slots {
		assert.Equal(t, "MONDAY", WeekdayName(s.Weekday()))
	}
}

func TestGenerateSlots_OverlappingWindowsCollapse(t *testing.T) {
	windows := []Window{
		{StartTime: "09:00", EndTime: "12:00", Weekdays: []string{"MONDAY"}},
		{StartTime: "10:00", EndTime: "13:00", Weekdays: []string{"MONDAY"}},
	}

	slots, err := GenerateSlots(windows, 60, 1, monday)
	require.NoError(t, err)

	// 09,10,11 from the first window and 10,11,12 from the second collapse
	// into four distinct start-times.
	require.Len(t, slots, 4)
	assert.Equal(t, monday.Add(9*time.Hour), slots[0])
	assert.Equal(t, monday.Add(10*time.Hour), slots[1])
	assert.Equal(t, monday.Add(11*time.Hour), slots[2])
	assert.Equal(t, monday.Add(12*time.Hour), slots[3])
}

func TestGenerateSlots_SortedAscending(t *testing.T) {
	windows := []Window{
		{StartTime: "14:00", EndTime: "16:00", Weekdays: []string{"TUESDAY"}},
		{StartTime: "09:00", EndTime: "11:00", Weekdays: []string{"MONDAY"}},
	}

	slots, err := GenerateSlots(windows, 30, 7, monday)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Before(slots[i]))
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	windows := []Window{
		{StartTime: "09:00", EndTime: "17:00", Weekdays: []string{"MONDAY", "WEDNESDAY", "FRIDAY"}},
	}

	a, err := GenerateSlots(windows, 30, 14, monday)
	require.NoError(t, err)

	b, err := GenerateSlots(windows, 30, 14, monday)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateSlots_NoWindows(t *testing.T) {
	slots, err := GenerateSlots(nil, 30, 30, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_WindowShorterThanMeeting(t *testing.T) {
	windows := []Window{
		{StartTime: "09:00", EndTime: "09:30", Weekdays: []string{"MONDAY"}},
	}

	slots, err := GenerateSlots(windows, 60, 1, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestValidateMeetingLength_Bounds(t *testing.T) {
	assert.NoError(t, ValidateMeetingLength(15))
	assert.NoError(t, ValidateMeetingLength(480))

	err := ValidateMeetingLength(10)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidMeetingLength))

	err = ValidateMeetingLength(481)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidMeetingLength))
}

func TestValidateAdvanceDays_Bounds(t *testing.T) {
	assert.NoError(t, ValidateAdvanceDays(1))
	assert.NoError(t, ValidateAdvanceDays(365))

	err := ValidateAdvanceDays(0)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidAdvanceDays))

	err = ValidateAdvanceDays(366)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidAdvanceDays))
}
