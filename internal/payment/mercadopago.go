package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const currency = "COP"

type MercadoPago struct {
	preferences preference.Client
	payments    mppayment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		preferences: preference.NewClient(cfg),
		payments:    mppayment.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, in Checkout) (*CheckoutLink, error) {
	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         in.Reference,
				Title:      in.Title,
				Quantity:   1,
				UnitPrice:  in.Amount,
				CurrencyID: currency,
			},
		},
		ExternalReference: in.Reference,
		NotificationURL:   in.NotificationURL,
	}

	if in.PayerEmail != "" {
		req.Payer = &preference.PayerRequest{Email: in.PayerEmail}
	}
	if in.ReturnURL != "" {
		req.BackURLs = &preference.BackURLsRequest{
			Success: in.ReturnURL,
			Pending: in.ReturnURL,
			Failure: in.ReturnURL,
		}
		req.AutoReturn = "approved"
	}

	res, err := m.preferences.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &CheckoutLink{ID: res.ID, URL: res.InitPoint}, nil
}

func (m *MercadoPago) FetchPayment(ctx context.Context, id string) (*Payment, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("invalid payment id %q", id)
	}

	res, err := m.payments.Get(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &Payment{
		ID:        strconv.Itoa(res.ID),
		Status:    res.Status,
		Reference: res.ExternalReference,
		Amount:    res.TransactionAmount,
		Method:    res.PaymentMethodID,
	}, nil
}

var _ Gateway = (*MercadoPago)(nil)
