package booking

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/advisorkit/scheduler/internal/domain/scheduling"
	"github.com/advisorkit/scheduler/internal/models"
)

// fakeRepo is an in-memory Repository. InTransaction serializes on a mutex,
// standing in for the row lock the real store takes, so the concurrency
// scenarios exercise the same one-commit-wins behavior.
type fakeRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	links    map[uint]models.SchedulingLink
	windows  []models.AvailabilityWindow
	bookings []models.Booking

	nextLinkID    uint
	nextBookingID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{links: make(map[uint]models.SchedulingLink)}
}

func (r *fakeRepo) addLink(link models.SchedulingLink) models.SchedulingLink {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextLinkID++
	link.ID = r.nextLinkID
	r.links[link.ID] = link
	return link
}

func (r *fakeRepo) GetLinkBySlug(_ context.Context, slug string) (*models.SchedulingLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.links {
		if l.Slug == slug {
			cp := l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetLinkForUpdate(_ context.Context, linkID uint) (*models.SchedulingLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[linkID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := l
	return &cp, nil
}

func (r *fakeRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.links {
		if l.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateLink(_ context.Context, link *models.SchedulingLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextLinkID++
	link.ID = r.nextLinkID
	r.links[link.ID] = *link
	return nil
}

func (r *fakeRepo) DeleteLink(_ context.Context, advisorID, linkID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[linkID]
	if !ok || l.AdvisorID != advisorID {
		return gorm.ErrRecordNotFound
	}
	delete(r.links, linkID)
	return nil
}

func (r *fakeRepo) ListLinksForAdvisor(_ context.Context, advisorID uint) ([]models.SchedulingLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.SchedulingLink
	for _, l := range r.links {
		if l.AdvisorID == advisorID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListWindowsForAdvisor(_ context.Context, advisorID uint) ([]models.AvailabilityWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.AvailabilityWindow
	for _, w := range r.windows {
		if w.AdvisorID == advisorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeRepo) ReplaceWindowsForAdvisor(
	_ context.Context,
	advisorID uint,
	windows []models.AvailabilityWindow,
) ([]models.AvailabilityWindow, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.windows[:0]
	for _, w := range r.windows {
		if w.AdvisorID != advisorID {
			kept = append(kept, w)
		}
	}
	r.windows = append(kept, windows...)
	return windows, nil
}

func (r *fakeRepo) CountBookingsForLink(_ context.Context, linkID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, b := range r.bookings {
		if b.SchedulingLinkID == linkID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) ListBookedTimesFrom(_ context.Context, advisorID uint, from time.Time) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []time.Time
	for _, b := range r.bookings {
		if b.AdvisorID == advisorID && !b.ScheduledTime.Before(from) {
			out = append(out, b.ScheduledTime)
		}
	}
	return out, nil
}

func (r *fakeRepo) HasBookingAt(_ context.Context, advisorID uint, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.AdvisorID == advisorID && b.ScheduledTime.Equal(at) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.AdvisorID == b.AdvisorID && existing.ScheduledTime.Equal(b.ScheduledTime) {
			return gorm.ErrDuplicatedKey
		}
	}

	r.nextBookingID++
	b.ID = r.nextBookingID
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *fakeRepo) ListBookingsForAdvisor(
	_ context.Context,
	advisorID uint,
	from, to time.Time,
) ([]models.Booking, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.AdvisorID != advisorID {
			continue
		}
		if !from.IsZero() && b.ScheduledTime.Before(from) {
			continue
		}
		if !to.IsZero() && !b.ScheduledTime.Before(to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeRepo) InTransaction(_ context.Context, fn func(tx domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

var _ domain.Repository = (*fakeRepo)(nil)
