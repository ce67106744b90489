package dashboard

import "context"

type Repository interface {
	CountCompletedReservations(ctx context.Context, r Range) (int64, error)
	CountProfilesCreated(ctx context.Context, r Range) (int64, error)
	SumPaidAmount(ctx context.Context, r Range) (float64, error)
	CountActiveReservations(ctx context.Context, r Range) (int64, error)
}

type Summary struct {
	Window                Window  `json:"window"`
	Range                 Range   `json:"range"`
	CompletedReservations int64   `json:"completed_reservations"`
	NewProfiles           int64   `json:"new_profiles"`
	Revenue               float64 `json:"revenue"`
	ActiveReservations    int64   `json:"active_reservations"`
}
