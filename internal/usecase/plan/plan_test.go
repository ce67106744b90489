package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func newPlans(t *testing.T) *Plans {
	return NewPlans(repository.NewPlanGormRepository(testutil.NewDB(t)), nil)
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	uc := newPlans(t)

	require.NoError(t, uc.Seed(ctx))
	require.NoError(t, uc.Seed(ctx))

	ps, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 3)

	assert.Equal(t, "Básico", ps[0].Name)
	assert.Equal(t, ps[0].MonthlyPrice*3, ps[0].EffectiveQuarterly)
	assert.True(t, ps[1].Highlight)
	assert.Equal(t, []string{"Tapicería"}, ps[1].UnavailableFeatures)
}

func TestCreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	uc := newPlans(t)

	_, err := uc.Create(ctx, "admin", &models.Plan{Name: "Gratis"})
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "invalid_plan", be.Code)
	assert.Equal(t, []string{"monthly_price"}, be.Fields)

	created, err := uc.Create(ctx, "admin", &models.Plan{Name: "Flota", MonthlyPrice: 300000, QuarterlyPrice: ptr(800000.0)})
	require.NoError(t, err)
	assert.Equal(t, 800000.0, created.EffectiveQuarterly)

	updated, err := uc.Update(ctx, "admin", created.ID, domain.Patch{ClearQuarterly: true, MonthlyPrice: ptr(250000.0)})
	require.NoError(t, err)
	assert.Nil(t, updated.QuarterlyPrice)
	assert.Equal(t, 750000.0, updated.EffectiveQuarterly)

	require.NoError(t, uc.Delete(ctx, "admin", created.ID))
	assert.True(t, httperr.IsBusiness(uc.Delete(ctx, "admin", created.ID), "plan_not_found"))

	_, err = uc.Update(ctx, "admin", created.ID, domain.Patch{Name: ptr("x")})
	assert.True(t, httperr.IsBusiness(err, "plan_not_found"))
}

func TestSaveDraftsRollsBackOnInvalidPatch(t *testing.T) {
	ctx := context.Background()
	uc := newPlans(t)
	require.NoError(t, uc.Seed(ctx))

	ps, err := uc.List(ctx)
	require.NoError(t, err)

	_, err = uc.SaveDrafts(ctx, "admin", map[string]domain.Patch{
		ps[0].ID: {Name: ptr("Básico Plus")},
		ps[1].ID: {MonthlyPrice: ptr(-1.0)},
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_plan"))

	after, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Básico", after[0].Name)

	saved, err := uc.SaveDrafts(ctx, "admin", map[string]domain.Patch{
		ps[0].ID: {Name: ptr("Básico Plus")},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Básico Plus", saved[0].Name)

	_, err = uc.SaveDrafts(ctx, "admin", map[string]domain.Patch{"nope": {Name: ptr("x")}})
	assert.True(t, httperr.IsBusiness(err, "plan_not_found"))
}
