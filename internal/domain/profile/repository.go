package profile

import (
	"context"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

var errPlanNotFound = httperr.ErrBusiness("plan_not_found")

type ListFilter struct {
	Query string
	Role  string
}

type Repository interface {
	// -------- Identity --------
	CreateAccount(ctx context.Context, u *models.User, p *models.Profile) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	DeleteAccount(ctx context.Context, id string) error

	// -------- Profile --------
	Get(ctx context.Context, id string) (*models.Profile, error)
	List(ctx context.Context, f ListFilter) ([]models.Profile, error)
	Update(ctx context.Context, p *models.Profile) error

	// AdjustStamps applies delta atomically and returns the new total.
	AdjustStamps(ctx context.Context, id string, delta int) (int, error)

	// RecordVisit stores a completed walk-in reservation and adds one stamp
	// in the same transaction.
	RecordVisit(ctx context.Context, id string, r *models.Reservation) (int, error)

	ApplyPatches(ctx context.Context, patches map[string]Patch) ([]models.Profile, error)
}
