package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/carwash-scheduler/internal/middleware"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	ucPlan "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/plan"
)

type PlanHandler struct {
	plans *ucPlan.Plans
}

func NewPlanHandler(plans *ucPlan.Plans) *PlanHandler {
	return &PlanHandler{plans: plans}
}

type PlanRequest struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	MonthlyPrice        float64  `json:"monthly_price"`
	QuarterlyPrice      *float64 `json:"quarterly_price"`
	Features            []string `json:"features"`
	UnavailableFeatures []string `json:"unavailable_features"`
	Highlight           bool     `json:"highlight"`
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	p, err := h.plans.Create(c.Request.Context(), middleware.UserID(c), &models.Plan{
		Name:                req.Name,
		Description:         req.Description,
		MonthlyPrice:        req.MonthlyPrice,
		QuarterlyPrice:      req.QuarterlyPrice,
		Features:            req.Features,
		UnavailableFeatures: req.UnavailableFeatures,
		Highlight:           req.Highlight,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PlanHandler) Update(c *gin.Context) {
	var patch domain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		invalidRequest(c)
		return
	}

	p, err := h.plans.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.plans.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanHandler) SaveDrafts(c *gin.Context) {
	var drafts map[string]domain.Patch
	if err := c.ShouldBindJSON(&drafts); err != nil {
		invalidRequest(c)
		return
	}

	plans, err := h.plans.SaveDrafts(c.Request.Context(), middleware.UserID(c), drafts)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, plans)
}
