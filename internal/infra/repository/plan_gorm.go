package repository

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

type PlanGormRepository struct {
	db *gorm.DB
}

func NewPlanGormRepository(db *gorm.DB) *PlanGormRepository {
	return &PlanGormRepository{db: db}
}

func (r *PlanGormRepository) List(ctx context.Context) ([]models.Plan, error) {
	var ps []models.Plan
	if err := r.db.WithContext(ctx).
		Order("monthly_price ASC").
		Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *PlanGormRepository) Get(ctx context.Context, id string) (*models.Plan, error) {
	var p models.Plan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanGormRepository) Create(ctx context.Context, p *models.Plan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PlanGormRepository) Update(ctx context.Context, p *models.Plan) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete leaves profiles that reference the plan untouched.
func (r *PlanGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Plan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PlanGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Plan{}).Count(&n).Error
	return n, err
}

func (r *PlanGormRepository) ApplyPatches(
	ctx context.Context,
	patches map[string]domain.Patch,
) ([]models.Plan, error) {

	ids := make([]string, 0, len(patches))
	for id := range patches {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]models.Plan, 0, len(ids))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			var p models.Plan
			if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return httperr.ErrFields("plan_not_found", id)
				}
				return err
			}
			if err := patches[id].Apply(&p); err != nil {
				return err
			}
			if err := tx.Save(&p).Error; err != nil {
				return err
			}
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*PlanGormRepository)(nil)
