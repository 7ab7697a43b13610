package scheduling

import (
	"context"
	"time"

	"github.com/advisorkit/scheduler/internal/models"
)

type Repository interface {
	// -------- Scheduling link --------
	GetLinkBySlug(
		ctx context.Context,
		slug string,
	) (*models.SchedulingLink, error)

	// GetLinkForUpdate re-fetches a link inside a transaction, locking the
	// row so concurrent commits against the same link serialize.
	GetLinkForUpdate(
		ctx context.Context,
		linkID uint,
	) (*models.SchedulingLink, error)

	SlugExists(
		ctx context.Context,
		slug string,
	) (bool, error)

	CreateLink(
		ctx context.Context,
		link *models.SchedulingLink,
	) error

	DeleteLink(
		ctx context.Context,
		advisorID uint,
		linkID uint,
	) error

	ListLinksForAdvisor(
		ctx context.Context,
		advisorID uint,
	) ([]models.SchedulingLink, error)

	// -------- Availability windows --------
	ListWindowsForAdvisor(
		ctx context.Context,
		advisorID uint,
	) ([]models.AvailabilityWindow, error)

	// ReplaceWindowsForAdvisor is the only window write: the advisor's
	// current set is deleted and the new set inserted, atomically.
	ReplaceWindowsForAdvisor(
		ctx context.Context,
		advisorID uint,
		windows []models.AvailabilityWindow,
	) ([]models.AvailabilityWindow, error)

	// -------- Booking ledger --------
	CountBookingsForLink(
		ctx context.Context,
		linkID uint,
	) (int64, error)

	ListBookedTimesFrom(
		ctx context.Context,
		advisorID uint,
		from time.Time,
	) ([]time.Time, error)

	HasBookingAt(
		ctx context.Context,
		advisorID uint,
		at time.Time,
	) (bool, error)

	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForAdvisor(
		ctx context.Context,
		advisorID uint,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)

	// -------- Transactions --------

	// InTransaction runs fn against a transactional view of the repository.
	// Returning an error rolls the unit back.
	InTransaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
