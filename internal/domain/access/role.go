package access

import (
	"strings"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleIT      Role = "it"
	RoleCliente Role = "cliente"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleIT, RoleCliente:
		return r, nil
	}
	return "", httperr.ErrBusiness("invalid_role")
}

// IsStaff covers the roles that operate the shop.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleIT
}
