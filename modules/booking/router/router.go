package router

import (
	"counsel-api/core/middleware"
	"counsel-api/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	BookingController *controller.BookingController
}

func NewBookingRouter(bookingController *controller.BookingController) *BookingRouter {
	return &BookingRouter{
		BookingController: bookingController,
	}
}

func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.POST("/meetings", r.BookingController.Create)
	v1.PATCH("/meetings/:id", r.BookingController.Reschedule)
	v1.DELETE("/meetings/:id", r.BookingController.Cancel)

	private := v1.Group("/private", mw.AuthMiddleware())
	private.GET("/booking-url", r.BookingController.BookingPageURL)
}
