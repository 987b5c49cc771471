package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the activity and insight endpoints on rg, which must
// already carry the auth middleware. writeGuard runs in front of the
// create and bulk delete routes (idempotency replay); it may be nil.
func RegisterRoutes(rg *gin.RouterGroup, activities *ActivityHandler, insights *InsightsHandler, writeGuard gin.HandlerFunc) {
	guarded := []gin.HandlerFunc{}
	if writeGuard != nil {
		guarded = append(guarded, writeGuard)
	}

	rg.GET("/activities", activities.ListActivities)
	rg.POST("/activities", append(guarded, activities.CreateActivity)...)
	rg.POST("/activities/bulk-delete", append(guarded, activities.BulkDeleteActivities)...)
	rg.GET("/activities/suggestions", activities.SuggestNames)
	rg.GET("/activities/canonical", activities.CanonicalName)
	rg.GET("/activities/:id", activities.GetActivity)
	rg.PUT("/activities/:id", activities.UpdateActivity)
	rg.DELETE("/activities/:id", activities.DeleteActivity)

	rg.GET("/dashboard", insights.GetDashboard)

	in := rg.Group("/insights")
	{
		in.GET("/recent", insights.GetRecent)
		in.GET("/hours", insights.GetHoursPerCategory)
		in.GET("/hourly", insights.GetHourlyAverage)
		in.GET("/top", insights.GetTopByCategory)
		in.GET("/weekly", insights.GetWeeklyTrend)
	}
}
