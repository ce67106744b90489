package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/dashboard"
)

type SummaryInput struct {
	Window  string
	Current domain.Window
}

// Summary computes the four dashboard figures for a window. The figures are
// independent and fetched concurrently; if any of them fails no summary is
// returned.
type Summary struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewSummary(repo domain.Repository, loc *time.Location) *Summary {
	return &Summary{repo: repo, loc: loc, now: time.Now}
}

func (uc *Summary) Execute(ctx context.Context, in SummaryInput) (*domain.Summary, error) {
	current := in.Current
	if current == "" {
		current = domain.DefaultWindow
	}

	w, err := domain.ParseWindow(in.Window, current)
	if err != nil {
		return nil, err
	}

	rg, err := domain.RangeFor(w, uc.now().In(uc.loc))
	if err != nil {
		return nil, err
	}

	out := domain.Summary{Window: w, Range: rg}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := uc.repo.CountCompletedReservations(gctx, rg)
		out.CompletedReservations = n
		return err
	})
	g.Go(func() error {
		n, err := uc.repo.CountProfilesCreated(gctx, rg)
		out.NewProfiles = n
		return err
	})
	g.Go(func() error {
		sum, err := uc.repo.SumPaidAmount(gctx, rg)
		out.Revenue = sum
		return err
	})
	g.Go(func() error {
		n, err := uc.repo.CountActiveReservations(gctx, rg)
		out.ActiveReservations = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &out, nil
}
