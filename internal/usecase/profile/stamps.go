package profile

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/profile"
	reservation "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/timezone"
)

// ======================================================
// ADJUST
// ======================================================

type AdjustStamps struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAdjustStamps(repo domain.Repository, audit *audit.Dispatcher) *AdjustStamps {
	return &AdjustStamps{repo: repo, audit: audit}
}

func (uc *AdjustStamps) Execute(ctx context.Context, actorID, userID string, delta int) (int, error) {
	if delta == 0 {
		return 0, httperr.ErrFields("invalid_stamps", "delta")
	}

	total, err := uc.repo.AdjustStamps(ctx, userID, delta)
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actorID),
		Action:   "stamps_adjusted",
		Entity:   "profile",
		EntityID: &userID,
		Metadata: map[string]any{"delta": delta, "total": total},
	})
	return total, nil
}

// ======================================================
// WALK-IN VISIT
// ======================================================

type VisitInput struct {
	ActorID string
	UserID  string
	Service string
	Vehicle string
	Notes   string
}

type VisitResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Stamps      int                 `json:"stamps"`
}

// RecordVisit logs a service delivered without a booking. The reservation
// is stored as completed, so it never holds a slot, and earns one stamp.
type RecordVisit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewRecordVisit(repo domain.Repository, audit *audit.Dispatcher, loc *time.Location) *RecordVisit {
	return &RecordVisit{repo: repo, audit: audit, loc: loc, now: time.Now}
}

func (uc *RecordVisit) Execute(ctx context.Context, in VisitInput) (*VisitResult, error) {
	svc, err := reservation.LookupService(strings.TrimSpace(in.Service))
	if err != nil {
		return nil, err
	}

	p, err := getProfile(ctx, uc.repo, in.UserID)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(uc.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, uc.loc)

	name := p.DisplayName
	if name == "" {
		name = p.Email
	}

	res := &models.Reservation{
		UserID:        &p.ID,
		CustomerName:  name,
		Phone:         p.Phone,
		Email:         p.Email,
		Vehicle:       strings.TrimSpace(in.Vehicle),
		Date:          start.Format(timezone.DateLayout),
		StartTime:     start.Format(timezone.TimeLayout),
		StartsAt:      start.UTC(),
		Service:       svc.Key,
		Status:        string(reservation.StatusCompleted),
		PaymentStatus: string(reservation.PaymentPending),
		AdminNotes:    strings.TrimSpace(in.Notes),
		PlanID:        p.PlanID,
	}

	total, err := uc.repo.RecordVisit(ctx, p.ID, res)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(in.ActorID),
		Action:   "visit_recorded",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"user_id": p.ID, "stamps": total},
	})

	return &VisitResult{Reservation: res, Stamps: total}, nil
}
