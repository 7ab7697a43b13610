package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/advisorkit/scheduler/internal/cache"
	domain "github.com/advisorkit/scheduler/internal/domain/scheduling"
	"github.com/advisorkit/scheduler/internal/httperr"
)

type SlotView struct {
	StartTime time.Time `json:"start_time"`
	Taken     bool      `json:"taken"`
}

type AvailabilityResult struct {
	Slots []SlotView `json:"slots"`

	MeetingLengthMinutes int `json:"meeting_length_minutes"`
	MaxAdvanceDays       int `json:"max_advance_days"`

	CurrentUsage        int64      `json:"current_usage"`
	UsageLimit          *int       `json:"usage_limit"`
	IsUsageLimitReached bool       `json:"is_usage_limit_reached"`
	ExpiresAt           *time.Time `json:"expires_at"`
}

// ListingCache stores assembled availability payloads under advisor-scoped
// keys (see cache.ListingKey). Implementations may drop anything at any
// time; a nil cache is valid and disables caching.
type ListingCache interface {
	Get(ctx context.Context, key string, out any) bool
	Set(ctx context.Context, key string, v any)
}

// GetAvailability assembles the advisory slot listing for a link: generated
// candidates tagged taken against the advisor's ledger, plus the link's
// usage/expiry state. Everything here is a snapshot; commit-time validation
// in CreateBooking is authoritative.
type GetAvailability struct {
	repo  domain.Repository
	cache ListingCache
	now   func() time.Time
}

func NewGetAvailability(repo domain.Repository, listingCache ListingCache) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: listingCache,
		now:   time.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	slug string,
	dateFilter *time.Time,
) (*AvailabilityResult, error) {

	link, err := uc.repo.GetLinkBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeLinkNotFound)
		}
		return nil, err
	}

	now := uc.now().UTC()

	if link.ExpiresAt != nil && now.After(*link.ExpiresAt) {
		return nil, httperr.ErrBusiness(httperr.CodeLinkExpired)
	}

	dateKey := ""
	if dateFilter != nil {
		dateKey = dateFilter.Format("2006-01-02")
	}
	cacheKey := cache.ListingKey(link.AdvisorID, slug, dateKey)

	if uc.cache != nil {
		var cached AvailabilityResult
		if uc.cache.Get(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	windowRows, err := uc.repo.ListWindowsForAdvisor(ctx, link.AdvisorID)
	if err != nil {
		return nil, err
	}

	slots, err := domain.GenerateSlots(
		domain.WindowsFromModels(windowRows),
		link.MeetingLengthMinutes,
		link.MaxAdvanceDays,
		now,
	)
	if err != nil {
		return nil, err
	}

	// Conflicts are per advisor across all of their links, so the taken set
	// is the advisor's whole future ledger, not just this link's bookings.
	booked, err := uc.repo.ListBookedTimesFrom(ctx, link.AdvisorID, now)
	if err != nil {
		return nil, err
	}

	taken := make(map[int64]bool, len(booked))
	for _, t := range booked {
		taken[t.Unix()] = true
	}

	usage, err := uc.repo.CountBookingsForLink(ctx, link.ID)
	if err != nil {
		return nil, err
	}

	policy := domain.LinkPolicy{
		UsageLimit: link.UsageLimit,
		ExpiresAt:  link.ExpiresAt,
	}
	limitReached := domain.Evaluate(policy, usage, now) == domain.DenyUsageLimitReached

	views := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		if dateFilter != nil && !sameDay(s, *dateFilter) {
			continue
		}
		views = append(views, SlotView{
			StartTime: s,
			Taken:     taken[s.Unix()],
		})
	}

	result := &AvailabilityResult{
		Slots:                views,
		MeetingLengthMinutes: link.MeetingLengthMinutes,
		MaxAdvanceDays:       link.MaxAdvanceDays,
		CurrentUsage:         usage,
		UsageLimit:           link.UsageLimit,
		IsUsageLimitReached:  limitReached,
		ExpiresAt:            link.ExpiresAt,
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, cacheKey, result)
	}

	return result, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
