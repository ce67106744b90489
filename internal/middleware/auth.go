package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/session"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextClaims   = "sessionClaims"
)

// Auth accepts a Bearer access token issued by sessions.
func Auth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Debes iniciar sesión.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Encabezado de autorización inválido.")
			return
		}

		claims, err := sessions.Verify(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			if httperr.IsBusiness(err, "invalid_session") {
				httperr.Abort(c, http.StatusUnauthorized, "invalid_session", "Tu sesión expiró. Inicia sesión de nuevo.")
				return
			}
			httperr.Abort(c, http.StatusInternalServerError, "internal_error", "No se pudo validar la sesión.")
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func Claims(c *gin.Context) *session.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*session.Claims); ok {
			return claims
		}
	}
	return nil
}
