// Package api exposes the clinic over HTTP for the web client. It is a thin
// surface: every route binds JSON, calls the service layer, and returns the
// result; all derivation stays in internal/metrics.
package api

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
)

type Server struct {
	db        *sql.DB
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewServer(db *sql.DB, jwtSecret []byte) *Server {
	return &Server{
		db:        db,
		jwtSecret: jwtSecret,
		tokenTTL:  12 * time.Hour,
	}
}

// Router builds the gin engine with all routes registered. Everything under
// /api except login requires a Bearer token.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	_ = router.SetTrustedProxies(nil)

	router.POST("/api/login", s.login)

	authed := router.Group("/api", s.authMiddleware())
	{
		authed.GET("/patients", s.listPatients)
		authed.POST("/patients", s.createPatient)
		authed.GET("/patients/:id", s.getPatient)
		authed.PUT("/patients/:id", s.updatePatient)
		authed.POST("/patients/:id/archive", s.archivePatient)

		authed.GET("/patients/:id/checkins", s.listCheckIns)
		authed.POST("/patients/:id/checkins", s.createCheckIn)
		authed.DELETE("/checkins/:id", s.deleteCheckIn)

		authed.GET("/patients/:id/plans", s.listPlans)
		authed.POST("/patients/:id/plans", s.createPlan)
		authed.GET("/plans/:id/summary", s.planSummary)
		authed.POST("/plans/:id/meals", s.addMeal)
		authed.POST("/meals/:id/items", s.addFoodItem)

		authed.GET("/patients/:id/trend", s.patientTrend)
		authed.GET("/patients/:id/report", s.patientReport)

		authed.GET("/appointments", s.listAppointments)
		authed.POST("/patients/:id/appointments", s.scheduleAppointment)
		authed.POST("/appointments/:id/complete", s.completeAppointment)
		authed.POST("/appointments/:id/cancel", s.cancelAppointment)

		authed.GET("/foodref", s.listReferenceFoods)
	}

	return router
}

// apiError returns the consistent JSON error shape: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
