package router

import (
	"github.com/gin-gonic/gin"

	"enrolpay/internal/handler"
	"enrolpay/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	jobH *handler.JobHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Job triggers
	jobs := v1.Group("/jobs")
	jobs.POST("/status-update", jobH.RunStatusUpdate)
	jobs.POST("/notification-dispatch", jobH.RunNotificationDispatch)

	// Read-only reporting
	agencies := v1.Group("/agencies")
	agencies.GET("/:id/installments", reportH.ListInstallments)
	agencies.GET("/:id/installments/due-soon", reportH.ListDueSoon)
	agencies.GET("/:id/notifications", reportH.ListNotifications)
	agencies.GET("/:id/activity", reportH.ListAuditEntries)

	v1.GET("/plans/:id/commission", reportH.PlanCommission)
	v1.GET("/job-runs", reportH.ListJobRuns)

	return r
}
