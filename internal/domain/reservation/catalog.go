package reservation

import "github.com/BruksfildServices01/carwash-scheduler/internal/httperr"

type Service struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}

// Catalog is the fixed list of services offered. Durations are informative;
// slots are matched exactly and never by overlap.
var Catalog = []Service{
	{Key: "basico", Name: "Lavado básico", Price: 25000, DurationMin: 45},
	{Key: "detallado", Name: "Lavado detallado", Price: 60000, DurationMin: 90},
	{Key: "motor", Name: "Lavado de motor", Price: 40000, DurationMin: 60},
	{Key: "tapiceria", Name: "Lavado de tapicería", Price: 80000, DurationMin: 120},
	{Key: "moto", Name: "Lavado de moto", Price: 15000, DurationMin: 30},
	{Key: "camion", Name: "Lavado de camión", Price: 90000, DurationMin: 120},
}

// TimeSlots are the bookable start times of every day.
var TimeSlots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// LookupService accepts either the catalog key or the display name.
func LookupService(s string) (Service, error) {
	for _, svc := range Catalog {
		if svc.Key == s || svc.Name == s {
			return svc, nil
		}
	}
	return Service{}, httperr.ErrBusiness("invalid_service")
}

func IsTimeSlot(hm string) bool {
	for _, s := range TimeSlots {
		if s == hm {
			return true
		}
	}
	return false
}
