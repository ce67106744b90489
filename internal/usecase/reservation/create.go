package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	UserID *string
	PlanID *string
	Form   domain.Form
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo         domain.Repository
	availability *CheckAvailability
	audit        *audit.Dispatcher
	loc          *time.Location
}

func NewCreateReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateReservation {
	return &CreateReservation{
		repo:         repo,
		availability: NewCheckAvailability(repo),
		audit:        audit,
		loc:          loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	res, err := buildReservation(in.Form, uc.loc)
	if err != nil {
		return nil, err
	}
	res.UserID = in.UserID
	res.PlanID = in.PlanID

	// --------------------------------------------------
	// Early check for a friendly message; the unique index
	// on active slots is what actually prevents doubles.
	// --------------------------------------------------
	free, err := uc.availability.Execute(ctx, res.Date, res.StartTime)
	if err != nil {
		return nil, err
	}
	if !free {
		uc.conflict(in.UserID, res)
		return nil, httperr.ErrBusiness("slot_taken")
	}

	if err := uc.repo.Create(ctx, res); err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			uc.conflict(in.UserID, res)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.UserID,
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}

func (uc *CreateReservation) conflict(actor *string, res *models.Reservation) {
	uc.audit.Dispatch(audit.Event{
		ActorID: actor,
		Action:  "reservation_conflict",
		Entity:  "reservation",
		Metadata: map[string]any{
			"date": res.Date,
			"time": res.StartTime,
		},
	})
}

// buildReservation validates a form and returns an unsaved pending
// reservation for it.
func buildReservation(form domain.Form, loc *time.Location) (*models.Reservation, error) {
	f := form.Trimmed()
	if err := f.ValidateRequired(); err != nil {
		return nil, err
	}

	svc, err := domain.LookupService(f.Service)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseSlot(f.Date, f.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if !domain.IsTimeSlot(f.Time) {
		return nil, httperr.ErrBusiness("invalid_slot")
	}

	return &models.Reservation{
		CustomerName:  f.Name,
		Phone:         f.Phone,
		Email:         f.Email,
		Vehicle:       f.Vehicle,
		Date:          f.Date,
		StartTime:     f.Time,
		StartsAt:      start.UTC(),
		Service:       svc.Key,
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.PaymentPending),
		CustomerNotes: f.Notes,
	}, nil
}
