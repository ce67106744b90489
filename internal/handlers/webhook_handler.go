package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	ucReservation "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/reservation"
)

type WebhookHandler struct {
	confirm *ucReservation.ConfirmPayment
}

func NewWebhookHandler(confirm *ucReservation.ConfirmPayment) *WebhookHandler {
	return &WebhookHandler{confirm: confirm}
}

// MercadoPagoNotification is the body Mercado Pago posts for payment
// events. Older notifications carry the id in the query string instead.
type MercadoPagoNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// MercadoPago acknowledges every well-formed notification with 200 so the
// provider stops retrying. A payment whose reference matches no reservation
// is logged and acknowledged too; only lookup failures ask for a retry.
func (h *WebhookHandler) MercadoPago(c *gin.Context) {
	var n MercadoPagoNotification
	_ = c.ShouldBindJSON(&n)

	if n.Type == "" {
		n.Type = c.Query("type")
	}
	if n.Data.ID == "" {
		n.Data.ID = c.Query("data.id")
	}

	if n.Type != "payment" || n.Data.ID == "" {
		c.Status(http.StatusOK)
		return
	}

	res, err := h.confirm.Execute(c.Request.Context(), n.Data.ID)
	if err != nil {
		log.Printf("mercadopago webhook %s: %v", n.Data.ID, err)
		if httperr.IsBusiness(err, "reservation_not_found") {
			c.Status(http.StatusOK)
			return
		}
		respondError(c, err)
		return
	}

	if res != nil {
		log.Printf("reservation %s paid online (payment %s)", res.ID, n.Data.ID)
	}
	c.Status(http.StatusOK)
}
