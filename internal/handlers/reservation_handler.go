package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/carwash-scheduler/internal/middleware"
	ucProfile "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/profile"
	ucReservation "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	create         *ucReservation.CreateReservation
	createRepeat   *ucReservation.CreateRepeating
	listByDate     *ucReservation.ListByDate
	listByCustomer *ucReservation.ListByCustomer
	updateStatus   *ucReservation.UpdateStatus
	updatePayment  *ucReservation.UpdatePayment
	cancel         *ucReservation.Cancel
	rate           *ucReservation.Rate
	checkout       *ucReservation.StartCheckout
	account        *ucProfile.GetAccount
}

type ReservationUseCases struct {
	Create         *ucReservation.CreateReservation
	CreateRepeat   *ucReservation.CreateRepeating
	ListByDate     *ucReservation.ListByDate
	ListByCustomer *ucReservation.ListByCustomer
	UpdateStatus   *ucReservation.UpdateStatus
	UpdatePayment  *ucReservation.UpdatePayment
	Cancel         *ucReservation.Cancel
	Rate           *ucReservation.Rate
	Checkout       *ucReservation.StartCheckout
	Account        *ucProfile.GetAccount
}

func NewReservationHandler(uc ReservationUseCases) *ReservationHandler {
	return &ReservationHandler{
		create:         uc.Create,
		createRepeat:   uc.CreateRepeat,
		listByDate:     uc.ListByDate,
		listByCustomer: uc.ListByCustomer,
		updateStatus:   uc.UpdateStatus,
		updatePayment:  uc.UpdatePayment,
		cancel:         uc.Cancel,
		rate:           uc.Rate,
		checkout:       uc.Checkout,
		account:        uc.Account,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
}

type UpdatePaymentRequest struct {
	PaymentStatus string   `json:"payment_status" binding:"required"`
	PaymentMethod string   `json:"payment_method"`
	PaymentAmount *float64 `json:"payment_amount"`
}

type RateRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type RepeatingRequest struct {
	domain.Form
	UserID    *string `json:"user_id"`
	EveryDays int     `json:"every_days"`
	Count     int     `json:"count"`
}

// ======================================================
// CLIENT
// ======================================================

// Create books a slot for the caller. The caller's plan, if any, is copied
// onto the reservation.
func (h *ReservationHandler) Create(c *gin.Context) {
	var form domain.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		invalidRequest(c)
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	acc, err := h.account.Execute(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if form.Email == "" {
		form.Email = acc.Profile.Email
	}

	var planID *string
	if acc.Plan != nil {
		planID = &acc.Plan.ID
	}

	res, err := h.create.Execute(ctx, ucReservation.CreateReservationInput{
		UserID: &userID,
		PlanID: planID,
		Form:   form,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *ReservationHandler) ListMine(c *gin.Context) {
	list, err := h.listByCustomer.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	res, err := h.cancel.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) Rate(c *gin.Context) {
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	res, err := h.rate.Execute(c.Request.Context(), ucReservation.RateInput{
		UserID:        middleware.UserID(c),
		ReservationID: c.Param("id"),
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) Checkout(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	acc, err := h.account.Execute(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	link, err := h.checkout.Execute(ctx, userID, c.Param("id"), acc.Profile.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// ======================================================
// STAFF
// ======================================================

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	list, err := h.listByDate.Execute(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ReservationHandler) ListForUser(c *gin.Context) {
	list, err := h.listByCustomer.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	res, err := h.updateStatus.Execute(c.Request.Context(), ucReservation.UpdateStatusInput{
		ActorID:       middleware.UserID(c),
		ReservationID: c.Param("id"),
		Status:        req.Status,
		AdminNotes:    req.AdminNotes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) UpdatePayment(c *gin.Context) {
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	res, err := h.updatePayment.Execute(c.Request.Context(), ucReservation.UpdatePaymentInput{
		ActorID:       middleware.UserID(c),
		ReservationID: c.Param("id"),
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
		PaymentAmount: req.PaymentAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) CreateRepeating(c *gin.Context) {
	var req RepeatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	rs, err := h.createRepeat.Execute(c.Request.Context(), ucReservation.CreateRepeatingInput{
		ActorID:   middleware.UserID(c),
		UserID:    req.UserID,
		Form:      req.Form,
		EveryDays: req.EveryDays,
		Count:     req.Count,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": rs, "total": len(rs)})
}
