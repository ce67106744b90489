package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/dashboard"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/testutil"
)

func amount(v float64) *float64 { return &v }

func TestSummaryAggregatesWindow(t *testing.T) {
	db := testutil.NewDB(t)
	loc := time.FixedZone("COT", -5*3600)
	now := time.Date(2025, 6, 4, 12, 30, 0, 0, loc) // Wednesday

	at := func(day, hour int) time.Time {
		return time.Date(2025, 6, day, hour, 0, 0, 0, loc).UTC()
	}

	rows := []models.Reservation{
		{CustomerName: "a", Date: "2025-06-04", StartTime: "08:00", StartsAt: at(4, 8), Service: "basico", Status: "completed", PaymentStatus: "paid", PaymentAmount: amount(25000)},
		{CustomerName: "b", Date: "2025-06-04", StartTime: "09:00", StartsAt: at(4, 9), Service: "basico", Status: "completed", PaymentStatus: "paid"},
		{CustomerName: "c", Date: "2025-06-04", StartTime: "10:00", StartsAt: at(4, 10), Service: "basico", Status: "pending", PaymentStatus: "pending", PaymentAmount: amount(99999)},
		{CustomerName: "d", Date: "2025-06-04", StartTime: "11:00", StartsAt: at(4, 11), Service: "basico", Status: "cancelled", PaymentStatus: "pending"},
		{CustomerName: "e", Date: "2025-06-05", StartTime: "08:00", StartsAt: at(5, 8), Service: "basico", Status: "waiting", PaymentStatus: "paid", PaymentAmount: amount(40000)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	profiles := []models.Profile{
		{ID: "p1", Email: "p1@example.com", CreatedAt: at(4, 7)},
		{ID: "p2", Email: "p2@example.com", CreatedAt: at(2, 7)},
	}
	for i := range profiles {
		require.NoError(t, db.Create(&profiles[i]).Error)
	}

	uc := NewSummary(repository.NewDashboardGormRepository(db), loc)
	uc.now = func() time.Time { return now }

	today, err := uc.Execute(context.Background(), SummaryInput{Window: "today"})
	require.NoError(t, err)
	assert.Equal(t, domain.Today, today.Window)
	assert.Equal(t, int64(2), today.CompletedReservations)
	assert.Equal(t, int64(1), today.NewProfiles)
	assert.Equal(t, 25000.0, today.Revenue)
	assert.Equal(t, int64(1), today.ActiveReservations)

	week, err := uc.Execute(context.Background(), SummaryInput{Window: "this_week"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), week.NewProfiles)
	assert.Equal(t, 65000.0, week.Revenue)
	assert.Equal(t, int64(2), week.ActiveReservations)
}

func TestSummaryKeepsCurrentWindowWithoutSelection(t *testing.T) {
	uc := NewSummary(repository.NewDashboardGormRepository(testutil.NewDB(t)), time.UTC)

	s, err := uc.Execute(context.Background(), SummaryInput{Current: domain.LastMonth})
	require.NoError(t, err)
	assert.Equal(t, domain.LastMonth, s.Window)

	_, err = uc.Execute(context.Background(), SummaryInput{Window: "forever"})
	assert.True(t, httperr.IsBusiness(err, "invalid_window"))
}

type failingRepo struct{}

func (failingRepo) CountCompletedReservations(context.Context, domain.Range) (int64, error) {
	return 3, nil
}

func (failingRepo) CountProfilesCreated(context.Context, domain.Range) (int64, error) {
	return 0, errors.New("connection reset")
}

func (failingRepo) SumPaidAmount(context.Context, domain.Range) (float64, error) {
	return 10, nil
}

func (failingRepo) CountActiveReservations(context.Context, domain.Range) (int64, error) {
	return 1, nil
}

func TestSummaryIsAllOrNothing(t *testing.T) {
	uc := NewSummary(failingRepo{}, time.UTC)

	s, err := uc.Execute(context.Background(), SummaryInput{Window: "all_time"})
	require.Error(t, err)
	assert.Nil(t, s)
}
