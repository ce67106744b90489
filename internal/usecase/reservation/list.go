package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/dto"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/timezone"
)

type ListByDate struct {
	repo domain.Repository
}

func NewListByDate(repo domain.Repository) *ListByDate {
	return &ListByDate{repo: repo}
}

func (uc *ListByDate) Execute(ctx context.Context, date string) ([]dto.ReservationListDTO, error) {
	if _, err := timezone.ParseDate(date, time.UTC); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	rs, err := uc.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return toListDTO(rs), nil
}

type ListByCustomer struct {
	repo domain.Repository
}

func NewListByCustomer(repo domain.Repository) *ListByCustomer {
	return &ListByCustomer{repo: repo}
}

func (uc *ListByCustomer) Execute(ctx context.Context, userID string) ([]dto.ReservationListDTO, error) {
	rs, err := uc.repo.ListByCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toListDTO(rs), nil
}

func toListDTO(rs []models.Reservation) []dto.ReservationListDTO {
	out := make([]dto.ReservationListDTO, 0, len(rs))
	for _, r := range rs {
		name := r.Service
		if svc, err := domain.LookupService(r.Service); err == nil {
			name = svc.Name
		}
		out = append(out, dto.ReservationListDTO{
			ID:            r.ID,
			Date:          r.Date,
			StartTime:     r.StartTime,
			Status:        r.Status,
			PaymentStatus: r.PaymentStatus,
			PaymentAmount: r.PaymentAmount,
			CustomerName:  r.CustomerName,
			Phone:         r.Phone,
			Vehicle:       r.Vehicle,
			Service:       r.Service,
			ServiceName:   name,
			Rating:        r.Rating,
			Repetition:    r.Repetition,
		})
	}
	return out
}
