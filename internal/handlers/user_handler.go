package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/profile"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/carwash-scheduler/internal/middleware"
	ucProfile "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/profile"
)

// UserHandler serves the user administration panel and the staff actions
// on customers (stamps, walk-in visits, plans).
type UserHandler struct {
	list         *ucProfile.ListUsers
	edit         *ucProfile.EditUsers
	remove       *ucProfile.DeleteUser
	adjustStamps *ucProfile.AdjustStamps
	recordVisit  *ucProfile.RecordVisit
}

func NewUserHandler(
	list *ucProfile.ListUsers,
	edit *ucProfile.EditUsers,
	remove *ucProfile.DeleteUser,
	adjustStamps *ucProfile.AdjustStamps,
	recordVisit *ucProfile.RecordVisit,
) *UserHandler {
	return &UserHandler{
		list:         list,
		edit:         edit,
		remove:       remove,
		adjustStamps: adjustStamps,
		recordVisit:  recordVisit,
	}
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type AssignPlanRequest struct {
	PlanID *string `json:"plan_id"`
}

type StampsRequest struct {
	Delta int `json:"delta"`
}

type VisitRequest struct {
	Service string `json:"service" binding:"required"`
	Vehicle string `json:"vehicle"`
	Notes   string `json:"notes"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.list.Execute(c.Request.Context(), domain.ListFilter{
		Query: c.Query("q"),
		Role:  c.Query("role"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, users)
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	p, err := h.edit.ChangeRole(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *UserHandler) AssignPlan(c *gin.Context) {
	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	p, err := h.edit.AssignPlan(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.PlanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SaveDrafts takes the admin table's pending edits keyed by user id.
func (h *UserHandler) SaveDrafts(c *gin.Context) {
	var drafts map[string]domain.Patch
	if err := c.ShouldBindJSON(&drafts); err != nil {
		invalidRequest(c)
		return
	}

	users, err := h.edit.SaveDrafts(c.Request.Context(), middleware.UserID(c), drafts)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, users)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) AdjustStamps(c *gin.Context) {
	var req StampsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	total, err := h.adjustStamps.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stamps": total})
}

func (h *UserHandler) RecordVisit(c *gin.Context) {
	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	out, err := h.recordVisit.Execute(c.Request.Context(), ucProfile.VisitInput{
		ActorID: middleware.UserID(c),
		UserID:  c.Param("id"),
		Service: req.Service,
		Vehicle: req.Vehicle,
		Notes:   req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}
