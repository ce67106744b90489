package reservation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/payment"
	"github.com/BruksfildServices01/carwash-scheduler/internal/testutil"
	"github.com/BruksfildServices01/carwash-scheduler/internal/timezone"
)

func newRepo(t *testing.T) *repository.ReservationGormRepository {
	return repository.NewReservationGormRepository(testutil.NewDB(t))
}

func form(date, hm string) domain.Form {
	return domain.Form{
		Name:    "Ana Pérez",
		Phone:   "3001234567",
		Email:   "ana@example.com",
		Vehicle: "ABC123",
		Service: "basico",
		Date:    date,
		Time:    hm,
	}
}

func owner(id string) *string { return &id }

func create(t *testing.T, repo domain.Repository, userID string, date, hm string) *models.Reservation {
	t.Helper()
	uc := NewCreateReservation(repo, nil, timezone.Location(timezone.DefaultTimezone))
	res, err := uc.Execute(context.Background(), CreateReservationInput{UserID: owner(userID), Form: form(date, hm)})
	require.NoError(t, err)
	return res
}

// ======================================================
// CREATE
// ======================================================

func TestCreateReservationOnFreeSlot(t *testing.T) {
	repo := newRepo(t)

	res := create(t, repo, "u1", "2025-06-01", "10:00")

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, string(domain.StatusPending), res.Status)
	assert.Equal(t, string(domain.PaymentPending), res.PaymentStatus)
	assert.Equal(t, "basico", res.Service)
	// 10:00 in Bogota (UTC-5)
	assert.Equal(t, 15, res.StartsAt.Hour())
}

func TestCreateReservationRejectsTakenSlot(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	uc := NewCreateReservation(repo, nil, timezone.Location(timezone.DefaultTimezone))

	create(t, repo, "u1", "2025-06-01", "10:00")

	_, err := uc.Execute(ctx, CreateReservationInput{UserID: owner("u2"), Form: form("2025-06-01", "10:00")})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	rs, err := repo.ListByDate(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Len(t, rs, 1)
}

// racingRepo never sees a competing booking in the pre-check, as when two
// requests check the slot before either inserts.
type racingRepo struct {
	domain.Repository
}

func (racingRepo) HasActiveAt(context.Context, string, string) (bool, error) {
	return false, nil
}

func TestStoreRejectsConcurrentBookingOfActiveSlot(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	uc := NewCreateReservation(racingRepo{repo}, nil, timezone.Location(timezone.DefaultTimezone))

	first, err := uc.Execute(ctx, CreateReservationInput{UserID: owner("u1"), Form: form("2025-06-01", "10:00")})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CreateReservationInput{UserID: owner("u2"), Form: form("2025-06-01", "10:00")})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	rs, err := repo.ListByDate(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Len(t, rs, 1)

	_, err = NewCancel(repo, nil).Execute(ctx, "u1", first.ID)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CreateReservationInput{UserID: owner("u2"), Form: form("2025-06-01", "10:00")})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CreateReservationInput{UserID: owner("u3"), Form: form("2025-06-01", "10:00")})
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	rs, err = repo.ListByDate(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Len(t, rs, 2)
}

func TestActiveStatusesBlockAndTerminalDoNot(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		status  domain.Status
		blocked bool
	}{
		{domain.StatusPending, true},
		{domain.StatusInProcess, true},
		{domain.StatusCarReady, true},
		{domain.StatusWaiting, true},
		{domain.StatusCancelled, false},
		{domain.StatusCompleted, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			repo := newRepo(t)
			res := create(t, repo, "u1", "2025-06-02", "09:00")
			res.Status = string(tc.status)
			require.NoError(t, repo.Update(ctx, res))

			free, err := NewCheckAvailability(repo).Execute(ctx, "2025-06-02", "09:00")
			require.NoError(t, err)
			assert.Equal(t, !tc.blocked, free)
		})
	}
}

func TestCreateReservationValidatesBeforeStore(t *testing.T) {
	repo := newRepo(t)
	uc := NewCreateReservation(repo, nil, timezone.Location(timezone.DefaultTimezone))

	_, err := uc.Execute(context.Background(), CreateReservationInput{Form: domain.Form{Name: " ", Service: "basico"}})
	require.Error(t, err)

	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "missing_fields", be.Code)
	assert.Equal(t, []string{"name", "phone", "vehicle", "date", "time"}, be.Fields)

	f := form("2025-06-01", "10:30")
	_, err = uc.Execute(context.Background(), CreateReservationInput{Form: f})
	assert.True(t, httperr.IsBusiness(err, "invalid_slot"))

	f = form("2025-13-01", "10:00")
	_, err = uc.Execute(context.Background(), CreateReservationInput{Form: f})
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))

	f = form("2025-06-01", "10:00")
	f.Service = "pulido"
	_, err = uc.Execute(context.Background(), CreateReservationInput{Form: f})
	assert.True(t, httperr.IsBusiness(err, "invalid_service"))
}

func TestListFreeSlots(t *testing.T) {
	repo := newRepo(t)
	create(t, repo, "u1", "2025-06-03", "08:00")
	create(t, repo, "u1", "2025-06-03", "12:00")

	slots, err := NewListFreeSlots(repo).Execute(context.Background(), "2025-06-03")
	require.NoError(t, err)
	require.Len(t, slots, len(domain.TimeSlots))

	for _, s := range slots {
		busy := s.Time == "08:00" || s.Time == "12:00"
		assert.Equal(t, !busy, s.Available, s.Time)
	}
}

// ======================================================
// REPEATING
// ======================================================

func TestCreateRepeating(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	uc := NewCreateRepeating(repo, nil, timezone.Location(timezone.DefaultTimezone))

	rs, err := uc.Execute(ctx, CreateRepeatingInput{
		ActorID:   "admin",
		UserID:    owner("u1"),
		Form:      form("2025-01-30", "11:00"),
		EveryDays: 7,
		Count:     3,
	})
	require.NoError(t, err)
	require.Len(t, rs, 3)

	assert.Equal(t, "2025-01-30", rs[0].Date)
	assert.Equal(t, "2025-02-06", rs[1].Date)
	assert.Equal(t, "2025-02-13", rs[2].Date)
	require.NotNil(t, rs[2].Repetition)
	assert.Equal(t, "every:7d;count:3", *rs[2].Repetition)
}

func TestCreateRepeatingIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	create(t, repo, "u2", "2025-02-06", "11:00")

	uc := NewCreateRepeating(repo, nil, timezone.Location(timezone.DefaultTimezone))
	_, err := uc.Execute(ctx, CreateRepeatingInput{Form: form("2025-01-30", "11:00"), EveryDays: 7, Count: 3})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	rs, err := repo.ListByDate(ctx, "2025-01-30")
	require.NoError(t, err)
	assert.Empty(t, rs)

	_, err = uc.Execute(ctx, CreateRepeatingInput{Form: form("2025-01-30", "11:00"), EveryDays: 7, Count: 13})
	assert.True(t, httperr.IsBusiness(err, "invalid_repetition"))
}

// ======================================================
// MANAGEMENT
// ======================================================

func TestUpdateStatusReopenNeedsFreeSlot(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	uc := NewUpdateStatus(repo, nil)

	first := create(t, repo, "u1", "2025-06-04", "14:00")
	notes := "cliente no llegó"
	_, err := uc.Execute(ctx, UpdateStatusInput{ReservationID: first.ID, Status: "cancelled", AdminNotes: &notes})
	require.NoError(t, err)

	create(t, repo, "u2", "2025-06-04", "14:00")

	_, err = uc.Execute(ctx, UpdateStatusInput{ReservationID: first.ID, Status: "pending"})
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	got, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, notes, got.AdminNotes)

	_, err = uc.Execute(ctx, UpdateStatusInput{ReservationID: first.ID, Status: "lavando"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = uc.Execute(ctx, UpdateStatusInput{ReservationID: "missing", Status: "pending"})
	assert.True(t, httperr.IsBusiness(err, "reservation_not_found"))
}

func TestUpdatePayment(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	res := create(t, repo, "u1", "2025-06-05", "08:00")
	uc := NewUpdatePayment(repo, nil)

	_, err := uc.Execute(ctx, UpdatePaymentInput{ReservationID: res.ID, PaymentStatus: "paid"})
	assert.True(t, httperr.IsBusiness(err, "invalid_payment"))

	amount := 25000.0
	got, err := uc.Execute(ctx, UpdatePaymentInput{
		ReservationID: res.ID,
		PaymentStatus: "paid",
		PaymentMethod: "cash",
		PaymentAmount: &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", got.PaymentStatus)
	assert.Equal(t, "cash", got.PaymentMethod)
	require.NotNil(t, got.PaymentAmount)
	assert.Equal(t, amount, *got.PaymentAmount)
}

func TestCancelByOwnerOnly(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	res := create(t, repo, "u1", "2025-06-06", "09:00")
	uc := NewCancel(repo, nil)

	_, err := uc.Execute(ctx, "u2", res.ID)
	assert.True(t, httperr.IsBusiness(err, "forbidden"))

	got, err := uc.Execute(ctx, "u1", res.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)

	_, err = uc.Execute(ctx, "u1", res.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	free, err := NewCheckAvailability(repo).Execute(ctx, "2025-06-06", "09:00")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestRateOnlyCompleted(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	res := create(t, repo, "u1", "2025-06-07", "10:00")
	uc := NewRate(repo)

	_, err := uc.Execute(ctx, RateInput{UserID: "u1", ReservationID: res.ID, Rating: 5})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = NewUpdateStatus(repo, nil).Execute(ctx, UpdateStatusInput{ReservationID: res.ID, Status: "completed"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, RateInput{UserID: "u1", ReservationID: res.ID, Rating: 6})
	assert.True(t, httperr.IsBusiness(err, "invalid_rating"))

	got, err := uc.Execute(ctx, RateInput{UserID: "u1", ReservationID: res.ID, Rating: 4, Comment: "Muy bien"})
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4, *got.Rating)
}

func TestListByCustomer(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	create(t, repo, "u1", "2025-06-01", "10:00")
	create(t, repo, "u1", "2025-06-09", "10:00")
	create(t, repo, "u2", "2025-06-09", "11:00")

	list, err := NewListByCustomer(repo).Execute(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2025-06-09", list[0].Date)
	assert.Equal(t, "Lavado básico", list[0].ServiceName)

	byDate, err := NewListByDate(repo).Execute(ctx, "2025-06-09")
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, "10:00", byDate[0].StartTime)
}

// ======================================================
// ONLINE PAYMENT
// ======================================================

type fakeGateway struct {
	checkouts []payment.Checkout
	payments  map[string]*payment.Payment
}

func (g *fakeGateway) CreateCheckout(_ context.Context, in payment.Checkout) (*payment.CheckoutLink, error) {
	g.checkouts = append(g.checkouts, in)
	return &payment.CheckoutLink{ID: "pref-1", URL: "https://pay.test/pref-1"}, nil
}

func (g *fakeGateway) FetchPayment(_ context.Context, id string) (*payment.Payment, error) {
	return g.payments[id], nil
}

func TestStartCheckout(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	res := create(t, repo, "u1", "2025-06-10", "15:00")

	_, err := NewStartCheckout(repo, nil, "").Execute(ctx, "u1", res.ID, "")
	assert.True(t, httperr.IsBusiness(err, "payment_unavailable"))

	gw := &fakeGateway{}
	uc := NewStartCheckout(repo, gw, "https://lavado.test/")

	_, err = uc.Execute(ctx, "u2", res.ID, "")
	assert.True(t, httperr.IsBusiness(err, "forbidden"))

	link, err := uc.Execute(ctx, "u1", res.ID, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.test/pref-1", link.URL)

	require.Len(t, gw.checkouts, 1)
	assert.Equal(t, res.ID, gw.checkouts[0].Reference)
	assert.Equal(t, 25000.0, gw.checkouts[0].Amount)
	assert.Equal(t, "https://lavado.test/api/webhooks/mercadopago", gw.checkouts[0].NotificationURL)
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	res := create(t, repo, "u1", "2025-06-11", "16:00")

	gw := &fakeGateway{payments: map[string]*payment.Payment{
		"10": {ID: "10", Status: "rejected", Reference: res.ID, Amount: 25000},
		"11": {ID: "11", Status: payment.StatusApproved, Reference: res.ID, Amount: 25000},
	}}
	uc := NewConfirmPayment(repo, gw, nil)

	got, err := uc.Execute(ctx, "10")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = uc.Execute(ctx, "11")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "paid", got.PaymentStatus)
	assert.Equal(t, MethodMercadoPago, got.PaymentMethod)

	again, err := uc.Execute(ctx, "11")
	require.NoError(t, err)
	assert.Nil(t, again)
}

type eventLog struct {
	mu     sync.Mutex
	events []audit.Event
}

func (l *eventLog) Log(_ context.Context, ev audit.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

func TestConfirmPaymentFlagsAmountMismatch(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	exact := create(t, repo, "u1", "2025-06-12", "09:00")
	short := create(t, repo, "u1", "2025-06-12", "10:00")

	gw := &fakeGateway{payments: map[string]*payment.Payment{
		"20": {ID: "20", Status: payment.StatusApproved, Reference: exact.ID, Amount: 25000},
		"21": {ID: "21", Status: payment.StatusApproved, Reference: short.ID, Amount: 1000},
	}}
	rec := &eventLog{}
	d := audit.NewDispatcher(rec)
	uc := NewConfirmPayment(repo, gw, d)

	_, err := uc.Execute(ctx, "20")
	require.NoError(t, err)
	got, err := uc.Execute(ctx, "21")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.PaymentAmount)
	assert.Equal(t, 1000.0, *got.PaymentAmount)

	d.Close()
	require.Len(t, rec.events, 2)

	ok := rec.events[0].Metadata.(map[string]any)
	assert.NotContains(t, ok, "amount_mismatch")

	bad := rec.events[1].Metadata.(map[string]any)
	assert.Equal(t, true, bad["amount_mismatch"])
	assert.Equal(t, 25000.0, bad["expected_amount"])
}
