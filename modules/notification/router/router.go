package router

import (
	"counsel-api/core/middleware"
	"counsel-api/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	NotificationController *controller.NotificationController
}

func NewNotificationRouter(notificationController *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{
		NotificationController: notificationController,
	}
}

func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	private := v1.Group("/private/notifications", mw.AuthMiddleware())
	private.GET("", r.NotificationController.GetMyNotifications)
	private.POST("/read", r.NotificationController.MarkAsRead)
}
