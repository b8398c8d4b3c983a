package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/railsathi/railsathi/internal/config"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		TargetHeader: config.HEADER_KEY_X_REQUEST_ID,
	}))
	e.Use(NewEchoLogger(s.logger))
	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("railsathi"))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/api", s.HelloWorldHandler)

	e.GET("/api/health", s.healthHandler)

	var complaintGroup = e.Group("/api/v1/complaints")
	complaintGroup.POST("", s.CreateComplaint)
	complaintGroup.GET("", s.ListComplaintsByDate)
	complaintGroup.GET("/:id", s.GetComplaintByID)
	complaintGroup.PATCH("/:id", s.UpdateComplaint)
	complaintGroup.DELETE("/:id", s.DeleteComplaint)
	complaintGroup.POST("/:id/media", s.UploadComplaintMedia)
	complaintGroup.DELETE("/:id/media", s.DeleteComplaintMedia)

	e.GET("/api/v1/trains/:no", s.GetTrainByNumber)

	return e
}
