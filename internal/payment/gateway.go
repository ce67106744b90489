// Package payment starts online checkouts and confirms them through the
// payment provider's notifications.
package payment

import "context"

const StatusApproved = "approved"

type Checkout struct {
	Reference       string
	Title           string
	Amount          float64
	PayerEmail      string
	ReturnURL       string
	NotificationURL string
}

type CheckoutLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Payment struct {
	ID        string
	Status    string
	Reference string
	Amount    float64
	Method    string
}

func (p Payment) Approved() bool {
	return p.Status == StatusApproved
}

type Gateway interface {
	CreateCheckout(ctx context.Context, in Checkout) (*CheckoutLink, error)
	FetchPayment(ctx context.Context, id string) (*Payment, error)
}
