package plan

import (
	"strings"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

// QuarterlyMultiplier applies when a plan has no explicit quarterly price.
const QuarterlyMultiplier = 3

func EffectiveQuarterly(p *models.Plan) float64 {
	if p.QuarterlyPrice != nil {
		return *p.QuarterlyPrice
	}
	return p.MonthlyPrice * QuarterlyMultiplier
}

func Validate(p *models.Plan) error {
	var bad []string
	if strings.TrimSpace(p.Name) == "" {
		bad = append(bad, "name")
	}
	if p.MonthlyPrice <= 0 {
		bad = append(bad, "monthly_price")
	}
	if p.QuarterlyPrice != nil && *p.QuarterlyPrice < 0 {
		bad = append(bad, "quarterly_price")
	}
	if len(bad) > 0 {
		return httperr.ErrFields("invalid_plan", bad...)
	}
	return nil
}

// Patch is a partial edit. Nil fields are left untouched.
type Patch struct {
	Name                *string   `json:"name,omitempty"`
	Description         *string   `json:"description,omitempty"`
	MonthlyPrice        *float64  `json:"monthly_price,omitempty"`
	QuarterlyPrice      *float64  `json:"quarterly_price,omitempty"`
	ClearQuarterly      bool      `json:"clear_quarterly,omitempty"`
	Features            *[]string `json:"features,omitempty"`
	UnavailableFeatures *[]string `json:"unavailable_features,omitempty"`
	Highlight           *bool     `json:"highlight,omitempty"`
}

func (pt Patch) Apply(p *models.Plan) error {
	if pt.Name != nil {
		p.Name = strings.TrimSpace(*pt.Name)
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.MonthlyPrice != nil {
		p.MonthlyPrice = *pt.MonthlyPrice
	}
	if pt.ClearQuarterly {
		p.QuarterlyPrice = nil
	} else if pt.QuarterlyPrice != nil {
		q := *pt.QuarterlyPrice
		p.QuarterlyPrice = &q
	}
	if pt.Features != nil {
		p.Features = *pt.Features
	}
	if pt.UnavailableFeatures != nil {
		p.UnavailableFeatures = *pt.UnavailableFeatures
	}
	if pt.Highlight != nil {
		p.Highlight = *pt.Highlight
	}
	return Validate(p)
}

// Defaults seed an empty plans table.
func Defaults() []models.Plan {
	return []models.Plan{
		{
			Name:                "Básico",
			Description:         "Lavado exterior para el día a día.",
			MonthlyPrice:        60000,
			Features:            []string{"2 lavados básicos al mes", "Aspirado interior"},
			UnavailableFeatures: []string{"Lavado de motor", "Tapicería"},
		},
		{
			Name:                "Premium",
			Description:         "Cuidado completo para tu carro.",
			MonthlyPrice:        120000,
			Features:            []string{"4 lavados al mes", "1 lavado detallado", "Aspirado interior"},
			UnavailableFeatures: []string{"Tapicería"},
			Highlight:           true,
		},
		{
			Name:         "VIP",
			Description:  "Todo incluido, sin esperas.",
			MonthlyPrice: 200000,
			Features: []string{
				"Lavados ilimitados", "Lavado de motor mensual",
				"Tapicería trimestral", "Prioridad en la agenda",
			},
			UnavailableFeatures: []string{},
		},
	}
}
