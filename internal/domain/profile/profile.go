package profile

import (
	"strings"

	"github.com/BruksfildServices01/carwash-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/carwash-scheduler/internal/domain/loyalty"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

// SelfUpdate is what a user may change about themselves. The role is not
// part of it.
type SelfUpdate struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
}

func (u SelfUpdate) Apply(p *models.Profile) {
	if u.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*u.DisplayName)
	}
	if u.Phone != nil {
		p.Phone = strings.TrimSpace(*u.Phone)
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.Location != nil {
		p.Location = strings.TrimSpace(*u.Location)
	}
}

// Patch is an admin draft for one user. PlanID "" clears the plan.
type Patch struct {
	Role   *string `json:"role,omitempty"`
	PlanID *string `json:"plan_id,omitempty"`
	Stamps *int    `json:"stamps,omitempty"`
}

// Apply validates and applies the patch. planExists is consulted only when
// a non-empty plan id is set.
func (pt Patch) Apply(p *models.Profile, planExists func(id string) (bool, error)) error {
	if pt.Role != nil {
		role, err := access.ParseRole(*pt.Role)
		if err != nil {
			return err
		}
		p.Role = string(role)
	}
	if pt.PlanID != nil {
		if *pt.PlanID == "" {
			p.PlanID = nil
		} else {
			ok, err := planExists(*pt.PlanID)
			if err != nil {
				return err
			}
			if !ok {
				return errPlanNotFound
			}
			id := *pt.PlanID
			p.PlanID = &id
		}
	}
	if pt.Stamps != nil {
		if _, err := loyalty.Apply(0, *pt.Stamps); err != nil {
			return err
		}
		p.Stamps = *pt.Stamps
	}
	return nil
}
