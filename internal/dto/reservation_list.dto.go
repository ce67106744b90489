package dto

type ReservationListDTO struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	StartTime     string   `json:"start_time"`
	Status        string   `json:"status"`
	PaymentStatus string   `json:"payment_status"`
	PaymentAmount *float64 `json:"payment_amount"`
	CustomerName  string   `json:"customer_name"`
	Phone         string   `json:"phone"`
	Vehicle       string   `json:"vehicle"`
	Service       string   `json:"service"`
	ServiceName   string   `json:"service_name"`
	Rating        *int     `json:"rating,omitempty"`
	Repetition    *string  `json:"repetition,omitempty"`
}
