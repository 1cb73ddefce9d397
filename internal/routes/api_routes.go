package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ketan-2905/classbunk/internal/handlers"
)

// RegisterAPIRoutes wires every API endpoint. Routes behind authRequired
// expect the student id on the request context.
func RegisterAPIRoutes(r *gin.Engine, h *handlers.Handler, authRequired gin.HandlerFunc) {
	api := r.Group("/api")
	{
		api.POST("/signup", h.SignupHandler)
		api.POST("/login", h.LoginHandler)
		api.GET("/electives", h.ElectiveOptionsHandler)

		auth := api.Group("", authRequired)
		{
			auth.POST("/logout", h.LogoutHandler)
			auth.POST("/sync-schedule", h.SyncScheduleHandler)
			auth.GET("/dashboard", h.DashboardHandler)
			auth.POST("/attendance/toggle", h.ToggleAttendanceHandler)

			schedule := auth.Group("/schedule")
			{
				schedule.POST("/manage", h.ManageScheduleHandler)
				schedule.GET("/available", h.AvailableLecturesHandler)
			}

			auth.GET("/fix-duplicates", h.FixDuplicatesHandler)
			auth.GET("/report/attendance", h.AttendanceReportHandler)
		}
	}
}
