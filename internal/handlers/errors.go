package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
)

type errorSpec struct {
	status  int
	message string
}

// businessErrors maps every business error code to its HTTP status and the
// message shown to the customer.
var businessErrors = map[string]errorSpec{
	"missing_fields":        {http.StatusBadRequest, "Completa todos los campos obligatorios."},
	"invalid_date_or_time":  {http.StatusBadRequest, "Fecha u hora inválida."},
	"invalid_service":       {http.StatusBadRequest, "Servicio no disponible."},
	"invalid_slot":          {http.StatusBadRequest, "Ese horario no está disponible para reservas."},
	"invalid_repetition":    {http.StatusBadRequest, "Repetición inválida."},
	"slot_taken":            {http.StatusConflict, "Ese horario ya está ocupado."},
	"reservation_not_found": {http.StatusNotFound, "Reserva no encontrada."},
	"forbidden":             {http.StatusForbidden, "No tienes permiso para esta acción."},
	"invalid_state":         {http.StatusConflict, "La reserva no permite esta acción en su estado actual."},
	"invalid_status":        {http.StatusBadRequest, "Estado inválido."},
	"invalid_payment":       {http.StatusBadRequest, "Datos de pago inválidos."},
	"invalid_rating":        {http.StatusBadRequest, "La calificación debe estar entre 1 y 5."},
	"invalid_stamps":        {http.StatusBadRequest, "Cantidad de sellos inválida."},
	"plan_not_found":        {http.StatusNotFound, "Plan no encontrado."},
	"invalid_plan":          {http.StatusBadRequest, "Datos del plan inválidos."},
	"user_not_found":        {http.StatusNotFound, "Usuario no encontrado."},
	"invalid_role":          {http.StatusBadRequest, "Rol inválido."},
	"invalid_email":         {http.StatusBadRequest, "El correo no parece ser válido."},
	"weak_password":         {http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres."},
	"email_taken":           {http.StatusConflict, "Ya existe una cuenta con ese correo."},
	"invalid_credentials":   {http.StatusUnauthorized, "Correo o contraseña incorrectos."},
	"invalid_session":       {http.StatusUnauthorized, "Tu sesión expiró. Inicia sesión de nuevo."},
	"invalid_image":         {http.StatusBadRequest, "La imagen debe ser PNG, JPEG o WebP de hasta 5 MB."},
	"storage_unavailable":   {http.StatusServiceUnavailable, "La carga de archivos no está disponible."},
	"payment_unavailable":   {http.StatusServiceUnavailable, "El pago en línea no está disponible."},
	"booking_unavailable":   {http.StatusServiceUnavailable, "Las reservas por WhatsApp no están disponibles."},
	"invalid_window":        {http.StatusBadRequest, "Periodo inválido."},
}

// respondError writes err as an HTTPError. Unknown errors are logged and
// reported as a flat 500.
func respondError(c *gin.Context, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		m, known := businessErrors[be.Code]
		if !known {
			m = errorSpec{http.StatusBadRequest, "Solicitud inválida."}
		}
		httperr.WriteFields(c, m.status, be.Code, m.message, be.Fields)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "Registro no encontrado.")
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	httperr.Internal(c, "internal_error", "Ocurrió un error. Intenta de nuevo.")
}

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
}
