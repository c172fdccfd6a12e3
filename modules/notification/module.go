package notification

import (
	"counsel-api/core/database"
	"counsel-api/core/middleware"
	"counsel-api/core/queue"
	"counsel-api/modules/notification/controller"
	"counsel-api/modules/notification/repository"
	"counsel-api/modules/notification/router"
	"counsel-api/modules/notification/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the notification module, registers routes, and binds the
// invite worker handler when a mux is given.
func Init(e *echo.Echo, db database.IDatabase, client *queue.Client, mux *asynq.ServeMux, mw *middleware.Middleware) service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, client)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)

	if mux != nil {
		mux.HandleFunc(service.TaskBookingInvite, svc.HandleBookingInviteTask)
	}
	return svc
}
