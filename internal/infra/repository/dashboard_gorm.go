package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/dashboard"
	"github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

func (r *DashboardGormRepository) CountCompletedReservations(
	ctx context.Context,
	rg domain.Range,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Scopes(within("starts_at", rg)).
		Where("status = ?", string(reservation.StatusCompleted)).
		Count(&n).Error
	return n, err
}

func (r *DashboardGormRepository) CountProfilesCreated(
	ctx context.Context,
	rg domain.Range,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Scopes(within("created_at", rg)).
		Count(&n).Error
	return n, err
}

// SumPaidAmount counts a missing payment amount as zero.
func (r *DashboardGormRepository) SumPaidAmount(
	ctx context.Context,
	rg domain.Range,
) (float64, error) {

	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Scopes(within("starts_at", rg)).
		Where("payment_status = ?", string(reservation.PaymentPaid)).
		Select("COALESCE(SUM(COALESCE(payment_amount, 0)), 0)").
		Scan(&total).Error
	return total, err
}

func (r *DashboardGormRepository) CountActiveReservations(
	ctx context.Context,
	rg domain.Range,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Scopes(within("starts_at", rg)).
		Where("status NOT IN ?", terminalStatuses()).
		Count(&n).Error
	return n, err
}

// within limits column to the half-open range, compared in UTC like the
// stored timestamps.
func within(column string, rg domain.Range) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if rg.Unbounded {
			return db
		}
		return db.Where(
			column+" >= ? AND "+column+" < ?",
			rg.Start.UTC(), rg.End.UTC(),
		)
	}
}

// Compile-time check
var _ domain.Repository = (*DashboardGormRepository)(nil)
