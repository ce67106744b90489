package reservation

import (
	"strings"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
)

// Form is what a customer fills in, whether the booking ends up as a
// message hand-off or as a stored reservation.
type Form struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Vehicle string `json:"vehicle"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

func (f Form) Trimmed() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Phone:   strings.TrimSpace(f.Phone),
		Email:   strings.TrimSpace(f.Email),
		Vehicle: strings.TrimSpace(f.Vehicle),
		Service: strings.TrimSpace(f.Service),
		Date:    strings.TrimSpace(f.Date),
		Time:    strings.TrimSpace(f.Time),
		Notes:   strings.TrimSpace(f.Notes),
	}
}

// ValidateRequired is a presence check only; formats are checked later.
func (f Form) ValidateRequired() error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"name", f.Name},
		{"phone", f.Phone},
		{"vehicle", f.Vehicle},
		{"service", f.Service},
		{"date", f.Date},
		{"time", f.Time},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return httperr.ErrFields("missing_fields", missing...)
	}
	return nil
}
