package router

import (
	"counsel-api/core/middleware"
	"counsel-api/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	CalendarController *controller.CalendarController
}

func NewCalendarRouter(calendarController *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{
		CalendarController: calendarController,
	}
}

func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// OAuth redirect target, no session yet
	v1.GET("/calendar/callback", r.CalendarController.HandleCallback)

	private := v1.Group("/private/calendar", mw.AuthMiddleware())
	private.GET("/auth-url", r.CalendarController.GetAuthURL)
	private.GET("/connection", r.CalendarController.GetConnection)
	private.DELETE("/connection", r.CalendarController.Disconnect)
}
