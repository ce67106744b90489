// Package booking composes the anonymous booking hand-off: a WhatsApp deep
// link carrying the filled-in form. Nothing is stored.
package booking

import (
	"net/url"
	"strings"
	"time"
	"unicode"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/timezone"
)

const deepLinkBase = "https://wa.me/"

// ComposeExternalMessageBooking validates the form and returns the
// wa.me URL for the shop's number.
func ComposeExternalMessageBooking(form domain.Form, shopPhone string) (string, error) {
	f := form.Trimmed()
	if err := f.ValidateRequired(); err != nil {
		return "", err
	}

	svc, err := domain.LookupService(f.Service)
	if err != nil {
		return "", err
	}
	if _, err := timezone.ParseDate(f.Date, time.UTC); err != nil {
		return "", httperr.ErrBusiness("invalid_date_or_time")
	}
	if !domain.IsTimeSlot(f.Time) {
		return "", httperr.ErrBusiness("invalid_slot")
	}

	number := digits(shopPhone)
	if number == "" {
		return "", httperr.ErrBusiness("booking_unavailable")
	}

	return deepLinkBase + number + "?text=" + url.QueryEscape(message(f, svc)), nil
}

func message(f domain.Form, svc domain.Service) string {
	var b strings.Builder
	b.WriteString("Hola, quiero reservar un lavado.\n")
	b.WriteString("Nombre: " + f.Name + "\n")
	b.WriteString("Teléfono: " + f.Phone + "\n")
	if f.Email != "" {
		b.WriteString("Correo: " + f.Email + "\n")
	}
	b.WriteString("Vehículo: " + f.Vehicle + "\n")
	b.WriteString("Servicio: " + svc.Name + "\n")
	b.WriteString("Fecha: " + f.Date + "\n")
	b.WriteString("Hora: " + f.Time)
	if f.Notes != "" {
		b.WriteString("\nNotas: " + f.Notes)
	}
	return b.String()
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
