package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *ReservationGormRepository) Create(
	ctx context.Context,
	res *models.Reservation,
) error {
	return slotError(r.db.WithContext(ctx).Create(res).Error)
}

func (r *ReservationGormRepository) CreateMany(
	ctx context.Context,
	rs []*models.Reservation,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, res := range rs {
			taken, err := hasActiveAt(tx, res.Date, res.StartTime)
			if err != nil {
				return err
			}
			if taken {
				return httperr.ErrFields("slot_taken", res.Date+" "+res.StartTime)
			}
			if err := tx.Create(res).Error; err != nil {
				return slotError(err)
			}
		}
		return nil
	})
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *ReservationGormRepository) Get(
	ctx context.Context,
	id string,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) ListByDate(
	ctx context.Context,
	date string,
) ([]models.Reservation, error) {

	var rs []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("start_time ASC, created_at ASC").
		Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *ReservationGormRepository) ListByCustomer(
	ctx context.Context,
	userID string,
) ([]models.Reservation, error) {

	var rs []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("starts_at DESC").
		Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *ReservationGormRepository) HasActiveAt(
	ctx context.Context,
	date string,
	startTime string,
) (bool, error) {
	return hasActiveAt(r.db.WithContext(ctx), date, startTime)
}

func (r *ReservationGormRepository) ActiveTimesOn(
	ctx context.Context,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("date = ? AND status NOT IN ?", date, terminalStatuses()).
		Order("start_time ASC").
		Pluck("start_time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// --------------------------------------------------
// Update
// --------------------------------------------------

func (r *ReservationGormRepository) Update(
	ctx context.Context,
	res *models.Reservation,
) error {
	return slotError(r.db.WithContext(ctx).Save(res).Error)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func hasActiveAt(db *gorm.DB, date, startTime string) (bool, error) {
	var count int64
	if err := db.
		Model(&models.Reservation{}).
		Where(
			"date = ? AND start_time = ? AND status NOT IN ?",
			date, startTime, terminalStatuses(),
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func terminalStatuses() []string {
	out := make([]string, 0, len(domain.TerminalStatuses))
	for _, s := range domain.TerminalStatuses {
		out = append(out, string(s))
	}
	return out
}

// slotError turns a rejection by ux_reservas_active_slot into the same
// business error the pre-check produces.
func slotError(err error) error {
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("slot_taken")
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
