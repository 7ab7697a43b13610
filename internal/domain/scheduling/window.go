package scheduling

import (
	"strings"
	"time"

	"github.com/advisorkit/scheduler/internal/httperr"
	"github.com/advisorkit/scheduler/internal/models"
)

// ===============================
// Availability Window
// ===============================

// Window is a recurring weekly availability rule. Times of day are HH:MM in
// the reference zone (all instants in this engine are UTC).
type Window struct {
	StartTime string
	EndTime   string
	Weekdays  []string
}

var validWeekdays = map[string]bool{
	"MONDAY":    true,
	"TUESDAY":   true,
	"WEDNESDAY": true,
	"THURSDAY":  true,
	"FRIDAY":    true,
	"SATURDAY":  true,
	"SUNDAY":    true,
}

// WeekdayName is the canonical uppercase name for a weekday, matching the
// representation stored on AvailabilityWindow.Weekdays.
func WeekdayName(d time.Weekday) string {
	return strings.ToUpper(d.String())
}

func (w Window) coversWeekday(name string) bool {
	for _, d := range w.Weekdays {
		if d == name {
			return true
		}
	}
	return false
}

// minutesOfDay parses "HH:MM" into minutes since midnight.
func minutesOfDay(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// ValidateWindow enforces the window invariants: parseable HH:MM bounds,
// start strictly before end (same-day, no overnight spans) and a non-empty
// set of valid weekdays.
func ValidateWindow(w Window) error {
	start, ok := minutesOfDay(w.StartTime)
	if !ok {
		return httperr.ErrBusiness(httperr.CodeInvalidWindow)
	}

	end, ok := minutesOfDay(w.EndTime)
	if !ok {
		return httperr.ErrBusiness(httperr.CodeInvalidWindow)
	}

	if start >= end {
		return httperr.ErrBusiness(httperr.CodeInvalidWindow)
	}

	if len(w.Weekdays) == 0 {
		return httperr.ErrBusiness(httperr.CodeInvalidWindow)
	}

	for _, d := range w.Weekdays {
		if !validWeekdays[d] {
			return httperr.ErrBusiness(httperr.CodeInvalidWindow)
		}
	}

	return nil
}

// WindowsFromModels converts persisted windows into their domain value,
// preserving the order they were read in (creation order, so slot
// generation is reproducible).
func WindowsFromModels(rows []models.AvailabilityWindow) []Window {
	windows := make([]Window, 0, len(rows))
	for _, r := range rows {
		windows = append(windows, Window{
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Weekdays:  r.Weekdays,
		})
	}
	return windows
}
