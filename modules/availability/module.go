package availability

import (
	"counsel-api/core/database"
	"counsel-api/core/middleware"
	"counsel-api/modules/availability/controller"
	"counsel-api/modules/availability/repository"
	"counsel-api/modules/availability/router"
	"counsel-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes
func Init(e *echo.Echo, db database.IDatabase, calendar service.BusyLister, mw *middleware.Middleware) service.AvailabilityService {
	repo := repository.NewWorkingHoursRepository(db)
	svc := service.NewAvailabilityService(repo, calendar)
	ctrl := controller.NewAvailabilityController(svc)

	router.NewAvailabilityRouter(ctrl).Setup(e, mw)
	return svc
}
