package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/energy/backend/internal/analytics"
	"github.com/JonnyWalker81/energy/backend/internal/apierror"
	"github.com/JonnyWalker81/energy/backend/internal/models"
	"github.com/JonnyWalker81/energy/backend/internal/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
	insightsService service.InsightsService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService service.ActivityService, insightsService service.InsightsService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		insightsService: insightsService,
	}
}

// CreateActivity handles POST /api/v1/activities
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	var req models.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid JSON format"))
		return
	}

	activity, err := h.activityService.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// ListActivities handles GET /api/v1/activities
// Query: window (day|week|month, default day), energy, q, page, page_size.
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	window, ok := windowParam(c)
	if !ok {
		return
	}
	energy, ok := energyParam(c)
	if !ok {
		return
	}
	page, ok := intParam(c, "page")
	if !ok {
		return
	}
	pageSize, ok := intParam(c, "page_size")
	if !ok {
		return
	}

	result, err := h.insightsService.History(c.Request.Context(), ownerID, analytics.HistoryQuery{
		Window:   window,
		Filter:   analytics.Filter{Energy: energy, Search: c.Query("q")},
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetActivity handles GET /api/v1/activities/:id
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, ok := activityIDParam(c)
	if !ok {
		return
	}

	activity, err := h.activityService.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		writeServiceError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, activity)
}

// UpdateActivity handles PUT /api/v1/activities/:id
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, ok := activityIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid JSON format"))
		return
	}

	activity, err := h.activityService.Update(c.Request.Context(), ownerID, id, &req)
	if err != nil {
		writeServiceError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, activity)
}

// DeleteActivity handles DELETE /api/v1/activities/:id
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, ok := activityIDParam(c)
	if !ok {
		return
	}

	if err := h.activityService.Delete(c.Request.Context(), ownerID, id); err != nil {
		writeServiceError(c, err, id)
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkDeleteActivities handles POST /api/v1/activities/bulk-delete
func (h *ActivityHandler) BulkDeleteActivities(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	var req models.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid JSON format"))
		return
	}

	deleted, err := h.activityService.DeleteMany(c.Request.Context(), ownerID, req.IDs)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, models.BulkDeleteResponse{Deleted: deleted})
}

// SuggestNames handles GET /api/v1/activities/suggestions?q=
func (h *ActivityHandler) SuggestNames(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	limit, ok := intParam(c, "limit")
	if !ok {
		return
	}

	names, err := h.activityService.Suggest(c.Request.Context(), ownerID, c.Query("q"), limit)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": names})
}

// CanonicalName handles GET /api/v1/activities/canonical?name=
func (h *ActivityHandler) CanonicalName(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	raw, present := c.GetQuery("name")
	if !present {
		invalidParam(c, "name", "is required")
		return
	}

	name, err := h.activityService.Canonicalize(c.Request.Context(), ownerID, raw)
	if err != nil {
		writeServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"input": raw, "name": name})
}
