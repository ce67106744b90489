package reservation

import (
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(r *models.Reservation) error {
	if err := CanCancel(Status(r.Status)); err != nil {
		return err
	}
	r.Status = string(StatusCancelled)
	return nil
}

func Rate(r *models.Reservation, rating int, comment string) error {
	if err := CanRate(Status(r.Status)); err != nil {
		return err
	}
	if rating < 1 || rating > 5 {
		return httperr.ErrBusiness("invalid_rating")
	}
	r.Rating = &rating
	r.RatingComment = comment
	return nil
}

// SetPayment records a payment change. A paid reservation needs a method.
func SetPayment(r *models.Reservation, status PaymentStatus, method string, amount *float64) error {
	if amount != nil && *amount < 0 {
		return httperr.ErrBusiness("invalid_payment")
	}
	if status == PaymentPaid && method == "" && r.PaymentMethod == "" {
		return httperr.ErrBusiness("invalid_payment")
	}

	r.PaymentStatus = string(status)
	if method != "" {
		r.PaymentMethod = method
	}
	if amount != nil {
		r.PaymentAmount = amount
	}
	return nil
}

// IsOwnedBy guards client-side actions on a reservation.
func IsOwnedBy(r *models.Reservation, userID string) bool {
	return r.UserID != nil && *r.UserID == userID
}
