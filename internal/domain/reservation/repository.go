package reservation

import (
	"context"

	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

type Repository interface {
	// -------- Create --------
	Create(ctx context.Context, r *models.Reservation) error
	CreateMany(ctx context.Context, rs []*models.Reservation) error

	// -------- Read --------
	Get(ctx context.Context, id string) (*models.Reservation, error)
	ListByDate(ctx context.Context, date string) ([]models.Reservation, error)
	ListByCustomer(ctx context.Context, userID string) ([]models.Reservation, error)

	// HasActiveAt reports whether a non-terminal reservation holds the exact
	// (date, start time) pair.
	HasActiveAt(ctx context.Context, date, startTime string) (bool, error)
	ActiveTimesOn(ctx context.Context, date string) ([]string, error)

	// -------- Update --------
	Update(ctx context.Context, r *models.Reservation) error
}
