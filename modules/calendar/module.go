package calendar

import (
	"counsel-api/core/database"
	"counsel-api/core/middleware"
	"counsel-api/modules/calendar/controller"
	"counsel-api/modules/calendar/repository"
	"counsel-api/modules/calendar/router"
	"counsel-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the calendar module and registers routes
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) service.CalendarService {
	repo := repository.NewCalendarConnectionRepository(db)
	svc := service.NewCalendarService(repo)
	ctrl := controller.NewCalendarController(svc)

	router.NewCalendarRouter(ctrl).Setup(e, mw)
	return svc
}
