package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/advisorkit/scheduler/internal/httperr"
)

func TestValidateWindow(t *testing.T) {
	valid := Window{StartTime: "09:00", EndTime: "17:00", Weekdays: []string{"MONDAY"}}
	assert.NoError(t, ValidateWindow(valid))

	cases := []struct {
		name string
		w    Window
	}{
		{"unparseable start", Window{StartTime: "9am", EndTime: "17:00", Weekdays: []string{"MONDAY"}}},
		{"unparseable end", Window{StartTime: "09:00", EndTime: "25:00", Weekdays: []string{"MONDAY"}}},
		{"start equals end", Window{StartTime: "09:00", EndTime: "09:00", Weekdays: []string{"MONDAY"}}},
		{"start after end", Window{StartTime: "17:00", EndTime: "09:00", Weekdays: []string{"MONDAY"}}},
		{"no weekdays", Window{StartTime: "09:00", EndTime: "17:00", Weekdays: nil}},
		{"unknown weekday", Window{StartTime: "09:00", EndTime: "17:00", Weekdays: []string{"FUNDAY"}}},
		{"lowercase weekday", Window{StartTime: "09:00", EndTime: "17:00", Weekdays: []string{"monday"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWindow(tc.w)
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidWindow))
		})
	}
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "MONDAY", WeekdayName(time.Monday))
	assert.Equal(t, "SUNDAY", WeekdayName(time.Sunday))
	assert.Equal(t, "WEDNESDAY", WeekdayName(time.Wednesday))
}
