package router

import (
	"counsel-api/core/middleware"
	"counsel-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

func NewAvailabilityRouter(availabilityController *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		AvailabilityController: availabilityController,
	}
}

func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// public: clients browse slots without authentication
	v1.POST("/calendar/available", r.AvailabilityController.AvailableSlots)

	private := v1.Group("/private", mw.AuthMiddleware())
	private.GET("/counselors/:id/working-hours", r.AvailabilityController.GetWorkingHours)
	private.PUT("/counselors/:id/working-hours", r.AvailabilityController.PutWorkingHours)
}
