package httperr

import "errors"

// Business rejection codes used across the scheduling engine.
const (
	CodeLinkNotFound           = "link_not_found"
	CodeLinkExpired            = "link_expired"
	CodeUsageLimitReached      = "usage_limit_reached"
	CodeSlotTaken              = "slot_taken"
	CodeInvalidScheduledTime   = "invalid_scheduled_time"
	CodeMissingRequiredAnswer  = "missing_required_answer"
	CodeInvalidMeetingLength   = "invalid_meeting_length"
	CodeInvalidAdvanceDays     = "invalid_advance_days"
	CodeInvalidWindow          = "invalid_window"
	CodeInvalidCustomQuestions = "invalid_custom_questions"
	CodeInvalidUsageLimit      = "invalid_usage_limit"
	CodeSlugExhausted          = "slug_generation_exhausted"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the rejection code, or "" if err is not a business
// error (i.e. it is an infrastructure fault).
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
