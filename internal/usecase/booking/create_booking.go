package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"

	"github.com/advisorkit/scheduler/internal/audit"
	domain "github.com/advisorkit/scheduler/internal/domain/scheduling"
	"github.com/advisorkit/scheduler/internal/httperr"
	"github.com/advisorkit/scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Slug string

	ScheduledTime time.Time

	Email       string
	LinkedInURL string

	Answers []models.BookingAnswer
}

// ======================================================
// USE CASE
// ======================================================

// CreateBooking is the only mutating entry point of the engine. Policy and
// conflict are re-validated inside a single store transaction, so two
// visitors racing for the same slot or the last use of a capped link resolve
// to exactly one committed booking. The (advisor_id, scheduled_time) unique
// index backstops the check: a violation on insert is reported as slot_taken,
// not as an infrastructure fault.
type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if in.ScheduledTime.IsZero() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidScheduledTime)
	}

	// Pre-fetch outside the transaction: unknown links never open one.
	link, err := uc.repo.GetLinkBySlug(ctx, in.Slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeLinkNotFound)
		}
		return nil, err
	}

	if err := validateAnswers(link.CustomQuestions, in.Answers); err != nil {
		return nil, err
	}

	scheduledTime := in.ScheduledTime.UTC().Truncate(time.Minute)

	var created *models.Booking

	err = uc.repo.InTransaction(ctx, func(tx domain.Repository) error {

		// Re-fetch with a row lock: concurrent commits against the same
		// link serialize here, so the usage count below cannot go stale
		// between read and insert.
		locked, err := tx.GetLinkForUpdate(ctx, link.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness(httperr.CodeLinkNotFound)
			}
			return err
		}

		usage, err := tx.CountBookingsForLink(ctx, locked.ID)
		if err != nil {
			return err
		}

		policy := domain.LinkPolicy{
			UsageLimit: locked.UsageLimit,
			ExpiresAt:  locked.ExpiresAt,
		}
		if err := domain.Evaluate(policy, usage, uc.now().UTC()).Err(); err != nil {
			return err
		}

		conflict, err := tx.HasBookingAt(ctx, locked.AdvisorID, scheduledTime)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		}

		b := &models.Booking{
			Reference:        uuid.NewString(),
			AdvisorID:        locked.AdvisorID,
			SchedulingLinkID: locked.ID,
			Email:            strings.ToLower(strings.TrimSpace(in.Email)),
			LinkedInURL:      in.LinkedInURL,
			Answers:          in.Answers,
			ScheduledTime:    scheduledTime,
		}

		if err := tx.CreateBooking(ctx, b); err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness(httperr.CodeSlotTaken)
			}
			return err
		}

		created = b
		return nil
	})

	if err != nil {
		uc.dispatchRejection(link, scheduledTime, err)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdvisorID: created.AdvisorID,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &created.ID,
	})

	return created, nil
}

// dispatchRejection records commit-time races in the audit trail. They are
// expected outcomes under concurrency, so only the contended codes are
// logged.
func (uc *CreateBooking) dispatchRejection(
	link *models.SchedulingLink,
	scheduledTime time.Time,
	err error,
) {
	code := httperr.BusinessCode(err)
	if code != httperr.CodeSlotTaken && code != httperr.CodeUsageLimitReached {
		return
	}

	uc.audit.Dispatch(audit.Event{
		AdvisorID: link.AdvisorID,
		Action:    "booking_rejected",
		Entity:    "booking",
		Metadata: map[string]any{
			"reason":         code,
			"scheduled_time": scheduledTime,
			"link_id":        link.ID,
		},
	})
}

// validateAnswers enforces that every required custom question on the link
// has a non-blank answer in the payload.
func validateAnswers(
	questions []models.CustomQuestion,
	answers []models.BookingAnswer,
) error {

	answered := make(map[string]bool, len(answers))
	for _, a := range answers {
		if strings.TrimSpace(a.Answer) != "" {
			answered[a.Question] = true
		}
	}

	for _, q := range questions {
		if q.Required && !answered[q.Question] {
			return httperr.ErrBusiness(httperr.CodeMissingRequiredAnswer)
		}
	}

	return nil
}
