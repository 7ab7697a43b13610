package scheduling

import (
	"sort"
	"time"

	"github.com/advisorkit/scheduler/internal/httperr"
)

// ===============================
// Slot Generator
// ===============================

const (
	MinMeetingLengthMinutes = 15
	MaxMeetingLengthMinutes = 480

	MinAdvanceDays = 1
	MaxAdvanceDays = 365
)

func ValidateMeetingLength(minutes int) error {
	if minutes < MinMeetingLengthMinutes || minutes > MaxMeetingLengthMinutes {
		return httperr.ErrBusiness(httperr.CodeInvalidMeetingLength)
	}
	return nil
}

func ValidateAdvanceDays(days int) error {
	if days < MinAdvanceDays || days > MaxAdvanceDays {
		return httperr.ErrBusiness(httperr.CodeInvalidAdvanceDays)
	}
	return nil
}

// GenerateSlots expands recurring windows into concrete candidate slot
// start-times over [now, now+maxAdvanceDays), sorted ascending.
//
// For each day in the horizon, every window covering that weekday is
// enumerated at meetingLengthMinutes increments; a window not evenly
// divisible by the meeting length drops the trailing partial slot, and
// candidates strictly before now are discarded. Overlapping windows are
// expanded independently and identical start-times are then collapsed, so
// an advisor who saves 09:00-12:00 and 10:00-13:00 sees each candidate
// once.
//
// Pure function of its inputs: identical inputs yield an identical
// sequence.
func GenerateSlots(
	windows []Window,
	meetingLengthMinutes int,
	maxAdvanceDays int,
	now time.Time,
) ([]time.Time, error) {

	if err := ValidateMeetingLength(meetingLengthMinutes); err != nil {
		return nil, err
	}
	if err := ValidateAdvanceDays(maxAdvanceDays); err != nil {
		return nil, err
	}

	step := time.Duration(meetingLengthMinutes) * time.Minute

	var slots []time.Time

	for d := 0; d < maxAdvanceDays; d++ {
		day := now.AddDate(0, 0, d)
		weekday := WeekdayName(day.Weekday())

		for _, w := range windows {
			if !w.coversWeekday(weekday) {
				continue
			}

			startMin, ok := minutesOfDay(w.StartTime)
			if !ok {
				continue
			}
			endMin, ok := minutesOfDay(w.EndTime)
			if !ok || endMin <= startMin {
				continue
			}

			windowStart := time.Date(
				day.Year(), day.Month(), day.Day(),
				startMin/60, startMin%60, 0, 0,
				day.Location(),
			)
			windowEnd := time.Date(
				day.Year(), day.Month(), day.Day(),
				endMin/60, endMin%60, 0, 0,
				day.Location(),
			)

			for cur := windowStart; !cur.Add(step).After(windowEnd); cur = cur.Add(step) {
				if cur.Before(now) {
					continue
				}
				slots = append(slots, cur)
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Before(slots[j])
	})

	return dedupSlots(slots), nil
}

// dedupSlots collapses identical start-times in a sorted sequence.
func dedupSlots(slots []time.Time) []time.Time {
	if len(slots) < 2 {
		return slots
	}

	out := slots[:1]
	for _, s := range slots[1:] {
		if !s.Equal(out[len(out)-1]) {
			out = append(out, s)
		}
	}
	return out
}
