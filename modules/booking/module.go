package booking

import (
	"counsel-api/core/middleware"
	availabilityservice "counsel-api/modules/availability/service"
	"counsel-api/modules/booking/controller"
	"counsel-api/modules/booking/router"
	"counsel-api/modules/booking/service"
	calendarservice "counsel-api/modules/calendar/service"
	meetingservice "counsel-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the booking module and registers routes
func Init(
	e *echo.Echo,
	availability availabilityservice.AvailabilityService,
	meetings meetingservice.MeetingProvider,
	calendar calendarservice.CalendarService,
	notifier service.InviteNotifier,
	tokens controller.TokenResolver,
	mw *middleware.Middleware,
) service.BookingService {
	svc := service.NewBookingService(availability, meetings, calendar, notifier)
	ctrl := controller.NewBookingController(svc, tokens)

	router.NewBookingRouter(ctrl).Setup(e, mw)
	return svc
}
