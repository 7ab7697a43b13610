package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/advisorkit/scheduler/internal/domain/scheduling"
	"github.com/advisorkit/scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Scheduling link
// --------------------------------------------------

func (r *SchedulingGormRepository) GetLinkBySlug(
	ctx context.Context,
	slug string,
) (*models.SchedulingLink, error) {

	var link models.SchedulingLink
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *SchedulingGormRepository) GetLinkForUpdate(
	ctx context.Context,
	linkID uint,
) (*models.SchedulingLink, error) {

	var link models.SchedulingLink
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&link, linkID).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *SchedulingGormRepository) SlugExists(
	ctx context.Context,
	slug string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SchedulingLink{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SchedulingGormRepository) CreateLink(
	ctx context.Context,
	link *models.SchedulingLink,
) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *SchedulingGormRepository) DeleteLink(
	ctx context.Context,
	advisorID uint,
	linkID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND advisor_id = ?", linkID, advisorID).
		Delete(&models.SchedulingLink{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SchedulingGormRepository) ListLinksForAdvisor(
	ctx context.Context,
	advisorID uint,
) ([]models.SchedulingLink, error) {

	var links []models.SchedulingLink
	if err := r.db.WithContext(ctx).
		Where("advisor_id = ?", advisorID).
		Order("created_at DESC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// --------------------------------------------------
// Availability windows
// --------------------------------------------------

func (r *SchedulingGormRepository) ListWindowsForAdvisor(
	ctx context.Context,
	advisorID uint,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("advisor_id = ?", advisorID).
		Order("id ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *SchedulingGormRepository) ReplaceWindowsForAdvisor(
	ctx context.Context,
	advisorID uint,
	windows []models.AvailabilityWindow,
) ([]models.AvailabilityWindow, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Where("advisor_id = ?", advisorID).
			Delete(&models.AvailabilityWindow{}).Error; err != nil {
			return err
		}

		for i := range windows {
			windows[i].ID = 0
			windows[i].AdvisorID = advisorID
		}

		if len(windows) > 0 {
			if err := tx.Create(&windows).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return windows, nil
}

// --------------------------------------------------
// Booking ledger
// --------------------------------------------------

func (r *SchedulingGormRepository) CountBookingsForLink(
	ctx context.Context,
	linkID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("scheduling_link_id = ?", linkID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SchedulingGormRepository) ListBookedTimesFrom(
	ctx context.Context,
	advisorID uint,
	from time.Time,
) ([]time.Time, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Select("scheduled_time").
		Where(
			"advisor_id = ? AND scheduled_time >= ?",
			advisorID, from,
		).
		Order("scheduled_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	times := make([]time.Time, 0, len(rows))
	for _, b := range rows {
		times = append(times, b.ScheduledTime)
	}
	return times, nil
}

// HasBookingAt is the commit-time conflict probe. No row lock here: Postgres
// rejects FOR UPDATE with aggregates, and races past this check hit the
// (advisor_id, scheduled_time) unique index on insert.
func (r *SchedulingGormRepository) HasBookingAt(
	ctx context.Context,
	advisorID uint,
	at time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"advisor_id = ? AND scheduled_time = ?",
			advisorID, at,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SchedulingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *SchedulingGormRepository) ListBookingsForAdvisor(
	ctx context.Context,
	advisorID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	q := r.db.WithContext(ctx).
		Preload("SchedulingLink").
		Where("advisor_id = ?", advisorID)

	if !from.IsZero() {
		q = q.Where("scheduled_time >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("scheduled_time < ?", to)
	}

	if err := q.
		Order("scheduled_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *SchedulingGormRepository) InTransaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewSchedulingGormRepository(tx))
	})
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
