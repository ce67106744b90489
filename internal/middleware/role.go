package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/carwash-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

type ProfileReader interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
}

// LoadRole reads the caller's role from the profiles table on every
// request. Token contents and client-side metadata are never trusted for it.
func LoadRole(profiles ProfileReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := profiles.Get(c.Request.Context(), UserID(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Abort(c, http.StatusUnauthorized, "invalid_session", "Tu cuenta ya no existe.")
				return
			}
			httperr.Abort(c, http.StatusInternalServerError, "internal_error", "No se pudo cargar tu perfil.")
			return
		}

		role, err := access.ParseRole(p.Role)
		if err != nil {
			role = access.RoleCliente
		}
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireRole must run after LoadRole.
func RequireRole(roles ...access.Role) gin.HandlerFunc {
	allowed := make(map[access.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		if !allowed[Role(c)] {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "No tienes permiso para esta acción.")
			return
		}
		c.Next()
	}
}

func Role(c *gin.Context) access.Role {
	if v, ok := c.Get(ContextUserRole); ok {
		if r, ok := v.(access.Role); ok {
			return r
		}
	}
	return ""
}
