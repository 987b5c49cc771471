package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/energy/backend/internal/analytics"
	"github.com/JonnyWalker81/energy/backend/internal/models"
	"github.com/JonnyWalker81/energy/backend/internal/service"
)

type InsightsHandler struct {
	insightsService service.InsightsService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *InsightsHandler) GetDashboard(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	dashboard, err := h.insightsService.Dashboard(c.Request.Context(), ownerID)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetRecent handles GET /api/v1/insights/recent?limit=
func (h *InsightsHandler) GetRecent(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	limit, ok := intParam(c, "limit")
	if !ok {
		return
	}

	activities, err := h.insightsService.Recent(c.Request.Context(), ownerID, limit)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": activities})
}

type hoursResponse struct {
	Window analytics.Window     `json:"window"`
	Hours  models.CategoryHours `json:"hours"`
}

// GetHoursPerCategory handles GET /api/v1/insights/hours?window=
func (h *InsightsHandler) GetHoursPerCategory(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	window, ok := windowParam(c)
	if !ok {
		return
	}
	if window == "" {
		window = analytics.WindowWeek
	}

	hours, err := h.insightsService.HoursPerCategory(c.Request.Context(), ownerID, window)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, hoursResponse{Window: window, Hours: hours})
}

type hourlyResponse struct {
	Window   analytics.Window      `json:"window"`
	Averages models.HourlyAverages `json:"averages"`
}

// GetHourlyAverage handles GET /api/v1/insights/hourly?window=
func (h *InsightsHandler) GetHourlyAverage(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	window, ok := windowParam(c)
	if !ok {
		return
	}
	if window == "" {
		window = analytics.WindowDay
	}

	averages, err := h.insightsService.HourlyAverageEnergy(c.Request.Context(), ownerID, window)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, hourlyResponse{Window: window, Averages: averages})
}

type topResponse struct {
	Direction models.Direction     `json:"direction"`
	Window    analytics.Window     `json:"window"`
	Items     []models.NameSummary `json:"items"`
}

// GetTopByCategory handles GET /api/v1/insights/top?direction=&limit=&window=
func (h *InsightsHandler) GetTopByCategory(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	direction, ok := directionParam(c)
	if !ok {
		return
	}
	limit, ok := intParam(c, "limit")
	if !ok {
		return
	}
	window, ok := windowParam(c)
	if !ok {
		return
	}
	if window == "" {
		window = analytics.WindowMonth
	}

	items, err := h.insightsService.TopByCategory(c.Request.Context(), ownerID, direction, limit, window)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, topResponse{Direction: direction, Window: window, Items: items})
}

// GetWeeklyTrend handles GET /api/v1/insights/weekly
func (h *InsightsHandler) GetWeeklyTrend(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	points, err := h.insightsService.WeeklyTrend(c.Request.Context(), ownerID)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": points})
}
