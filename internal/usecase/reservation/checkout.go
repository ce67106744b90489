package reservation

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/payment"
)

// MethodMercadoPago is stored as the payment method of reservations settled
// through the online checkout.
const MethodMercadoPago = "mercadopago"

// ======================================================
// START CHECKOUT (owner)
// ======================================================

type StartCheckout struct {
	repo    domain.Repository
	gateway payment.Gateway
	baseURL string
}

// NewStartCheckout accepts a nil gateway; every call then fails with
// payment_unavailable.
func NewStartCheckout(repo domain.Repository, gateway payment.Gateway, baseURL string) *StartCheckout {
	return &StartCheckout{
		repo:    repo,
		gateway: gateway,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (uc *StartCheckout) Execute(
	ctx context.Context,
	userID string,
	reservationID string,
	payerEmail string,
) (*payment.CheckoutLink, error) {

	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("payment_unavailable")
	}

	res, err := load(ctx, uc.repo, reservationID)
	if err != nil {
		return nil, err
	}
	if !domain.IsOwnedBy(res, userID) {
		return nil, httperr.ErrBusiness("forbidden")
	}
	if res.PaymentStatus == string(domain.PaymentPaid) || res.Status == string(domain.StatusCancelled) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	svc, err := domain.LookupService(res.Service)
	if err != nil {
		return nil, err
	}
	amount := chargeFor(res, svc)

	return uc.gateway.CreateCheckout(ctx, payment.Checkout{
		Reference:       res.ID,
		Title:           fmt.Sprintf("%s - %s %s", svc.Name, res.Date, res.StartTime),
		Amount:          amount,
		PayerEmail:      payerEmail,
		ReturnURL:       uc.baseURL + "/mis-reservas",
		NotificationURL: uc.baseURL + "/api/webhooks/mercadopago",
	})
}

// ======================================================
// CONFIRM PAYMENT (webhook)
// ======================================================

type ConfirmPayment struct {
	repo    domain.Repository
	gateway payment.Gateway
	audit   *audit.Dispatcher
}

func NewConfirmPayment(repo domain.Repository, gateway payment.Gateway, audit *audit.Dispatcher) *ConfirmPayment {
	return &ConfirmPayment{repo: repo, gateway: gateway, audit: audit}
}

// Execute looks the payment up at the provider and marks its reservation
// paid. Notifications for unapproved or already settled payments are
// accepted and ignored; the returned reservation is nil then.
func (uc *ConfirmPayment) Execute(ctx context.Context, paymentID string) (*models.Reservation, error) {
	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("payment_unavailable")
	}

	p, err := uc.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !p.Approved() || p.Reference == "" {
		return nil, nil
	}

	res, err := load(ctx, uc.repo, p.Reference)
	if err != nil {
		return nil, err
	}
	if res.PaymentStatus == string(domain.PaymentPaid) {
		return nil, nil
	}

	meta := map[string]any{"payment_id": p.ID, "amount": p.Amount}
	if svc, err := domain.LookupService(res.Service); err == nil {
		expected := chargeFor(res, svc)
		if math.Abs(expected-p.Amount) >= 0.01 {
			log.Printf("payment %s for reservation %s: charged %.2f, expected %.2f", p.ID, res.ID, p.Amount, expected)
			meta["expected_amount"] = expected
			meta["amount_mismatch"] = true
		}
	}

	amount := p.Amount
	if err := domain.SetPayment(res, domain.PaymentPaid, MethodMercadoPago, &amount); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "reservation_paid_online",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: meta,
	})

	return res, nil
}

// chargeFor is what the customer is asked to pay online: the amount staff
// set on the reservation, or the service's reference price.
func chargeFor(res *models.Reservation, svc domain.Service) float64 {
	if res.PaymentAmount != nil && *res.PaymentAmount > 0 {
		return *res.PaymentAmount
	}
	return svc.Price
}
