package plan

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

// PlanView adds the price a customer actually pays per quarter.
type PlanView struct {
	models.Plan
	EffectiveQuarterly float64 `json:"effective_quarterly_price"`
}

func toView(p models.Plan) PlanView {
	return PlanView{Plan: p, EffectiveQuarterly: domain.EffectiveQuarterly(&p)}
}

func toViews(ps []models.Plan) []PlanView {
	out := make([]PlanView, 0, len(ps))
	for _, p := range ps {
		out = append(out, toView(p))
	}
	return out
}

type Plans struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPlans(repo domain.Repository, audit *audit.Dispatcher) *Plans {
	return &Plans{repo: repo, audit: audit}
}

// Seed fills an empty plans table with the default offer.
func (uc *Plans) Seed(ctx context.Context) error {
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, p := range domain.Defaults() {
		p := p
		if err := uc.repo.Create(ctx, &p); err != nil {
			return err
		}
	}
	log.Printf("seeded %d default plans", len(domain.Defaults()))
	return nil
}

func (uc *Plans) List(ctx context.Context) ([]PlanView, error) {
	ps, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(ps), nil
}

func (uc *Plans) Create(ctx context.Context, actorID string, p *models.Plan) (*PlanView, error) {
	p.ID = ""
	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.record(actorID, "plan_created", p.ID)
	v := toView(*p)
	return &v, nil
}

func (uc *Plans) Update(ctx context.Context, actorID, id string, patch domain.Patch) (*PlanView, error) {
	p, err := uc.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("plan_not_found")
		}
		return nil, err
	}

	if err := patch.Apply(p); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.record(actorID, "plan_updated", p.ID)
	v := toView(*p)
	return &v, nil
}

// Delete leaves profiles that reference the plan untouched.
func (uc *Plans) Delete(ctx context.Context, actorID, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("plan_not_found")
		}
		return err
	}
	uc.record(actorID, "plan_deleted", id)
	return nil
}

func (uc *Plans) SaveDrafts(ctx context.Context, actorID string, drafts map[string]domain.Patch) ([]PlanView, error) {
	if len(drafts) == 0 {
		return []PlanView{}, nil
	}

	ps, err := uc.repo.ApplyPatches(ctx, drafts)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actorID),
		Action:   "plans_bulk_edited",
		Entity:   "plan",
		Metadata: map[string]any{"count": len(ps)},
	})
	return toViews(ps), nil
}

func (uc *Plans) record(actorID, action, id string) {
	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actorID),
		Action:   action,
		Entity:   "plan",
		EntityID: &id,
	})
}
