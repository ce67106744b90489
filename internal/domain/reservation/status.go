package reservation

import "github.com/BruksfildServices01/carwash-scheduler/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusInProcess Status = "in_process"
	StatusCarReady  Status = "car_ready"
	StatusWaiting   Status = "waiting"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// TerminalStatuses never block a slot.
var TerminalStatuses = []Status{StatusCancelled, StatusCompleted}

var allStatuses = map[Status]bool{
	StatusPending:   true,
	StatusInProcess: true,
	StatusCarReady:  true,
	StatusWaiting:   true,
	StatusCompleted: true,
	StatusCancelled: true,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !allStatuses[st] {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return st, nil
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsActive reports whether a reservation in this status holds its slot.
func (s Status) IsActive() bool {
	return allStatuses[s] && !s.IsTerminal()
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid:
		return PaymentStatus(s), nil
	}
	return "", httperr.ErrBusiness("invalid_payment")
}

// ===============================
// Validations
// ===============================

// CanCancel: clients may only withdraw bookings the shop has not started.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusWaiting {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanRate(current Status) error {
	if current != StatusCompleted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
