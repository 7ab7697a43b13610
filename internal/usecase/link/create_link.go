package link

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/advisorkit/scheduler/internal/audit"
	domain "github.com/advisorkit/scheduler/internal/domain/scheduling"
	"github.com/advisorkit/scheduler/internal/httperr"
	"github.com/advisorkit/scheduler/internal/models"
)

// ======================================================
// SLUG GENERATION
// ======================================================

// 64 symbols, so a random byte maps onto the alphabet without modulo bias.
const slugAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

const (
	slugLength      = 10
	maxSlugAttempts = 5
)

func newSlug() (string, error) {
	buf := make([]byte, slugLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	for i, b := range buf {
		buf[i] = slugAlphabet[int(b)%len(slugAlphabet)]
	}
	return string(buf), nil
}

// ======================================================
// INPUT
// ======================================================

type CreateLinkInput struct {
	AdvisorID uint

	MeetingLengthMinutes int
	MaxAdvanceDays       int

	UsageLimit *int
	ExpiresAt  *time.Time

	CustomQuestions []models.CustomQuestion
}

// ======================================================
// USE CASE
// ======================================================

type CreateLink struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateLink(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateLink {
	return &CreateLink{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateLink) Execute(
	ctx context.Context,
	in CreateLinkInput,
) (*models.SchedulingLink, error) {

	if err := domain.ValidateMeetingLength(in.MeetingLengthMinutes); err != nil {
		return nil, err
	}
	if err := domain.ValidateAdvanceDays(in.MaxAdvanceDays); err != nil {
		return nil, err
	}

	if in.UsageLimit != nil && *in.UsageLimit < 1 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidUsageLimit)
	}

	questions := filterBlankQuestions(in.CustomQuestions)
	if len(questions) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCustomQuestions)
	}

	// Bounded collision retry. A second process can win the race between
	// SlugExists and CreateLink, so a unique violation on insert counts as
	// a failed attempt too.
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := newSlug()
		if err != nil {
			return nil, err
		}

		exists, err := uc.repo.SlugExists(ctx, slug)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		link := &models.SchedulingLink{
			AdvisorID:            in.AdvisorID,
			Slug:                 slug,
			MeetingLengthMinutes: in.MeetingLengthMinutes,
			MaxAdvanceDays:       in.MaxAdvanceDays,
			UsageLimit:           in.UsageLimit,
			ExpiresAt:            in.ExpiresAt,
			CustomQuestions:      questions,
		}

		if err := uc.repo.CreateLink(ctx, link); err != nil {
			if httperr.IsUniqueViolation(err) {
				continue
			}
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			AdvisorID: in.AdvisorID,
			Action:    "link_created",
			Entity:    "scheduling_link",
			EntityID:  &link.ID,
		})

		return link, nil
	}

	return nil, httperr.ErrBusiness(httperr.CodeSlugExhausted)
}

func filterBlankQuestions(in []models.CustomQuestion) []models.CustomQuestion {
	out := make([]models.CustomQuestion, 0, len(in))
	for _, q := range in {
		if strings.TrimSpace(q.Question) == "" {
			continue
		}
		out = append(out, q)
	}
	return out
}
