package reservation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

func load(ctx context.Context, repo domain.Repository, id string) (*models.Reservation, error) {
	res, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}
	return res, nil
}

// ======================================================
// STATUS (staff)
// ======================================================

type UpdateStatusInput struct {
	ActorID       string
	ReservationID string
	Status        string
	AdminNotes    *string
}

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(repo domain.Repository, audit *audit.Dispatcher) *UpdateStatus {
	return &UpdateStatus{repo: repo, audit: audit}
}

func (uc *UpdateStatus) Execute(ctx context.Context, in UpdateStatusInput) (*models.Reservation, error) {
	next, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	res, err := load(ctx, uc.repo, in.ReservationID)
	if err != nil {
		return nil, err
	}

	prev := domain.Status(res.Status)

	// Reopening a finished reservation takes its slot back.
	if prev.IsTerminal() && next.IsActive() {
		taken, err := uc.repo.HasActiveAt(ctx, res.Date, res.StartTime)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, httperr.ErrBusiness("slot_taken")
		}
	}

	res.Status = string(next)
	if in.AdminNotes != nil {
		res.AdminNotes = *in.AdminNotes
	}

	if err := uc.repo.Update(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(in.ActorID),
		Action:   "reservation_status_changed",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"from": prev, "to": next},
	})

	return res, nil
}

// ======================================================
// PAYMENT (staff)
// ======================================================

type UpdatePaymentInput struct {
	ActorID       string
	ReservationID string
	PaymentStatus string
	PaymentMethod string
	PaymentAmount *float64
}

type UpdatePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdatePayment(repo domain.Repository, audit *audit.Dispatcher) *UpdatePayment {
	return &UpdatePayment{repo: repo, audit: audit}
}

func (uc *UpdatePayment) Execute(ctx context.Context, in UpdatePaymentInput) (*models.Reservation, error) {
	st, err := domain.ParsePaymentStatus(in.PaymentStatus)
	if err != nil {
		return nil, err
	}

	res, err := load(ctx, uc.repo, in.ReservationID)
	if err != nil {
		return nil, err
	}

	if err := domain.SetPayment(res, st, in.PaymentMethod, in.PaymentAmount); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(in.ActorID),
		Action:   "reservation_payment_changed",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{
			"payment_status": res.PaymentStatus,
			"payment_method": res.PaymentMethod,
		},
	})

	return res, nil
}

// ======================================================
// CANCEL (owner)
// ======================================================

type Cancel struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancel(repo domain.Repository, audit *audit.Dispatcher) *Cancel {
	return &Cancel{repo: repo, audit: audit}
}

func (uc *Cancel) Execute(ctx context.Context, userID, reservationID string) (*models.Reservation, error) {
	res, err := load(ctx, uc.repo, reservationID)
	if err != nil {
		return nil, err
	}
	if !domain.IsOwnedBy(res, userID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if err := domain.Cancel(res); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &userID,
		Action:   "reservation_cancelled",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}

// ======================================================
// RATING (owner)
// ======================================================

type RateInput struct {
	UserID        string
	ReservationID string
	Rating        int
	Comment       string
}

type Rate struct {
	repo domain.Repository
}

func NewRate(repo domain.Repository) *Rate {
	return &Rate{repo: repo}
}

func (uc *Rate) Execute(ctx context.Context, in RateInput) (*models.Reservation, error) {
	res, err := load(ctx, uc.repo, in.ReservationID)
	if err != nil {
		return nil, err
	}
	if !domain.IsOwnedBy(res, in.UserID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if err := domain.Rate(res, in.Rating, in.Comment); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}
