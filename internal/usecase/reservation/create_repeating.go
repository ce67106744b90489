package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/timezone"
)

const MaxRepetitions = 12

type CreateRepeatingInput struct {
	ActorID   string
	UserID    *string
	Form      domain.Form
	EveryDays int
	Count     int
}

// CreateRepeating books the same time every EveryDays days, Count times.
// Either every occurrence is stored or none is.
type CreateRepeating struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCreateRepeating(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateRepeating {
	return &CreateRepeating{repo: repo, audit: audit, loc: loc}
}

func (uc *CreateRepeating) Execute(
	ctx context.Context,
	in CreateRepeatingInput,
) ([]*models.Reservation, error) {

	if in.Count < 1 || in.Count > MaxRepetitions {
		return nil, httperr.ErrFields("invalid_repetition", "count")
	}
	if in.EveryDays < 1 || in.EveryDays > 31 {
		return nil, httperr.ErrFields("invalid_repetition", "every_days")
	}

	base, err := buildReservation(in.Form, uc.loc)
	if err != nil {
		return nil, err
	}

	first, err := timezone.ParseDate(base.Date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	descriptor := fmt.Sprintf("every:%dd;count:%d", in.EveryDays, in.Count)

	rs := make([]*models.Reservation, 0, in.Count)
	for i := 0; i < in.Count; i++ {
		day := first.AddDate(0, 0, i*in.EveryDays).Format(timezone.DateLayout)
		start, err := timezone.ParseSlot(day, base.StartTime, uc.loc)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}

		r := *base
		r.UserID = in.UserID
		r.Date = day
		r.StartsAt = start.UTC()
		r.Repetition = &descriptor
		rs = append(rs, &r)
	}

	if err := uc.repo.CreateMany(ctx, rs); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID: audit.Ref(in.ActorID),
		Action:  "reservation_repeated",
		Entity:  "reservation",
		Metadata: map[string]any{
			"first":      base.Date,
			"time":       base.StartTime,
			"repetition": descriptor,
		},
	})

	return rs, nil
}
