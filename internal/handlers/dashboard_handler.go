package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/dashboard"
	ucDashboard "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/dashboard"
)

type DashboardHandler struct {
	summary *ucDashboard.Summary
}

func NewDashboardHandler(summary *ucDashboard.Summary) *DashboardHandler {
	return &DashboardHandler{summary: summary}
}

// Summary reads ?window= and ?current=. The client sends the window it is
// showing as current; an empty window keeps it.
func (h *DashboardHandler) Summary(c *gin.Context) {
	out, err := h.summary.Execute(c.Request.Context(), ucDashboard.SummaryInput{
		Window:  c.Query("window"),
		Current: domain.Window(c.Query("current")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DashboardHandler) Windows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"windows": domain.Windows,
		"default": domain.DefaultWindow,
	})
}
