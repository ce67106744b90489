package plan

import (
	"context"

	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Plan, error)
	Get(ctx context.Context, id string) (*models.Plan, error)
	Create(ctx context.Context, p *models.Plan) error
	Update(ctx context.Context, p *models.Plan) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)

	// ApplyPatches runs every patch inside one transaction.
	ApplyPatches(ctx context.Context, patches map[string]Patch) ([]models.Plan, error)
}
