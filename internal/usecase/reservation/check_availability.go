package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/timezone"
)

// CheckAvailability answers whether an exact (date, time) slot is free.
// Only pending, in-process, car-ready and waiting reservations block it;
// start times are compared for equality, never for overlap.
type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	date string,
	startTime string,
) (bool, error) {

	if _, err := timezone.ParseSlot(date, startTime, time.UTC); err != nil {
		return false, httperr.ErrBusiness("invalid_date_or_time")
	}

	taken, err := uc.repo.HasActiveAt(ctx, date, startTime)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// ======================================================
// FREE SLOTS
// ======================================================

type SlotView struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type ListFreeSlots struct {
	repo domain.Repository
}

func NewListFreeSlots(repo domain.Repository) *ListFreeSlots {
	return &ListFreeSlots{repo: repo}
}

func (uc *ListFreeSlots) Execute(ctx context.Context, date string) ([]SlotView, error) {
	if _, err := timezone.ParseDate(date, time.UTC); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	taken, err := uc.repo.ActiveTimesOn(ctx, date)
	if err != nil {
		return nil, err
	}

	busy := make(map[string]bool, len(taken))
	for _, t := range taken {
		busy[t] = true
	}

	out := make([]SlotView, 0, len(domain.TimeSlots))
	for _, slot := range domain.TimeSlots {
		out = append(out, SlotView{Time: slot, Available: !busy[slot]})
	}
	return out, nil
}
