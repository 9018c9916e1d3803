package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cashplan/internal/services"
)

// DashboardHandler handles projection dashboard requests. Every endpoint
// accepts an optional "days" query parameter; invalid values fall back to the
// configured default window.
type DashboardHandler struct {
	dashboardService  services.DashboardServicer
	defaultWindowDays int
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, defaultWindowDays int) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, defaultWindowDays: defaultWindowDays}
}

// GetTimeline handles the retrieval of the chart-ready balance timeline
// @Summary     Get balance timeline
// @Description Project the ledger over a window and return per-day income, expense, and running balance series for charting
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Param       days query int false "Projection window in days (1-365, default from config)"
// @Success     200 {object} projection.Timeline "Chart-ready timeline"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/timeline [get]
func (h *DashboardHandler) GetTimeline(c *gin.Context) {
	days := parseWindowDays(c, h.defaultWindowDays)

	timeline, err := h.dashboardService.Timeline(days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, timeline)
}

// GetStats handles the retrieval of scalar dashboard figures
// @Summary     Get dashboard stats
// @Description Project the ledger over a window and return current balance, projected balance, upcoming totals, recurring breakdowns, and total debt
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Param       days query int false "Projection window in days (1-365, default from config)"
// @Success     200 {object} projection.Stats "Dashboard stats"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	days := parseWindowDays(c, h.defaultWindowDays)

	stats, err := h.dashboardService.Stats(days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetUpcomingTransactions handles the retrieval of projected entries
// @Summary     Get upcoming transactions
// @Description Project the ledger over a window and return every dated entry (recurring occurrences expanded, splits resolved) in chronological order
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Param       days query int false "Projection window in days (1-365, default from config)"
// @Success     200 {object} services.UpcomingTransactions "Projected entries"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/transactions [get]
func (h *DashboardHandler) GetUpcomingTransactions(c *gin.Context) {
	days := parseWindowDays(c, h.defaultWindowDays)

	upcoming, err := h.dashboardService.UpcomingTransactions(days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, upcoming)
}
