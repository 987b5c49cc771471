package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/energy/backend/internal/analytics"
	"github.com/JonnyWalker81/energy/backend/internal/apierror"
	"github.com/JonnyWalker81/energy/backend/internal/models"
	"github.com/JonnyWalker81/energy/backend/internal/service"
)

// Each helper writes a 400 problem and returns ok=false on bad input, so
// callers just return.

func invalidParam(c *gin.Context, field, message string) {
	apierror.WriteProblem(c, apierror.NewInvalidParamError(apierror.GetRequestID(c), field, message))
}

// windowParam reads ?window=, returning "" when absent so the service picks
// the view's default.
func windowParam(c *gin.Context) (analytics.Window, bool) {
	raw := strings.TrimSpace(c.Query("window"))
	if raw == "" {
		return "", true
	}
	w, err := analytics.ParseWindow(raw)
	if err != nil {
		invalidParam(c, "window", err.Error())
		return "", false
	}
	return w, true
}

// intParam reads an optional positive integer; 0 means absent.
func intParam(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		invalidParam(c, name, "must be a positive integer")
		return 0, false
	}
	return n, true
}

func energyParam(c *gin.Context) (*models.EnergyLevel, bool) {
	raw := strings.TrimSpace(c.Query("energy"))
	if raw == "" {
		return nil, true
	}
	level, err := models.ParseEnergyLevel(raw)
	if err != nil {
		invalidParam(c, "energy", err.Error())
		return nil, false
	}
	return &level, true
}

func directionParam(c *gin.Context) (models.Direction, bool) {
	d, err := analytics.ParseDirection(c.Query("direction"))
	if err != nil {
		invalidParam(c, "direction", err.Error())
		return "", false
	}
	return d, true
}

// activityIDParam validates the :id path segment.
func activityIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := service.ValidateActivityID(id); err != nil {
		apierror.WriteProblem(c, apierror.NewInvalidIDError(apierror.GetRequestID(c), "id", id))
		return "", false
	}
	return id, true
}
