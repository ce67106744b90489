package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/carwash-scheduler/internal/usecase/booking"
	ucPlan "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/plan"
	ucReservation "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/reservation"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	shopPhone string
	freeSlots *ucReservation.ListFreeSlots
	plans     *ucPlan.Plans
}

func NewPublicHandler(
	shopPhone string,
	freeSlots *ucReservation.ListFreeSlots,
	plans *ucPlan.Plans,
) *PublicHandler {
	return &PublicHandler{
		shopPhone: shopPhone,
		freeSlots: freeSlots,
		plans:     plans,
	}
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"services": domain.Catalog,
		"slots":    domain.TimeSlots,
	})
}

// Slots lists the day's time slots and whether each can still be booked.
func (h *PublicHandler) Slots(c *gin.Context) {
	slots, err := h.freeSlots.Execute(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, slots)
}

func (h *PublicHandler) Plans(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, plans)
}

////////////////////////////////////////////////////////
// BOOKING HAND-OFF
////////////////////////////////////////////////////////

// BookingMessage returns the WhatsApp link for an anonymous booking.
// Nothing is stored.
func (h *PublicHandler) BookingMessage(c *gin.Context) {
	var form domain.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		invalidRequest(c)
		return
	}

	link, err := booking.ComposeExternalMessageBooking(form, h.shopPhone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": link})
}
