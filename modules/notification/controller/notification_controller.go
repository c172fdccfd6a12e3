package controller

import (
	"counsel-api/core/controller"
	"counsel-api/core/errors"
	"counsel-api/core/middleware"
	"counsel-api/modules/notification/dto"
	"counsel-api/modules/notification/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	controller.BaseController
	notificationService service.NotificationService
}

func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{
		BaseController:      controller.NewBaseController(),
		notificationService: notificationService,
	}
}

// GetMyNotifications godoc
// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.NotificationResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /private/notifications [get]
func (ctrl *NotificationController) GetMyNotifications(c echo.Context) error {
	counselorID, ok := c.Get(middleware.ContextCounselorID).(uuid.UUID)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "Missing counselor identity")
	}

	notifications, err := ctrl.notificationService.GetMyNotifications(c.Request().Context(), counselorID)
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInternalServer, "failed to list notifications", err))
	}
	return ctrl.SuccessResponse(c, notifications, "Notifications retrieved")
}

// MarkAsRead godoc
// @Summary Mark notifications as read
// @Description Marks the given ids, or all when none given
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkReadRequest false "Notification ids"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/notifications/read [post]
func (ctrl *NotificationController) MarkAsRead(c echo.Context) error {
	counselorID, ok := c.Get(middleware.ContextCounselorID).(uuid.UUID)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "Missing counselor identity")
	}

	var req dto.MarkReadRequest
	_ = c.Bind(&req)

	if err := ctrl.notificationService.MarkAsRead(c.Request().Context(), counselorID, req.IDs); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInternalServer, "failed to mark notifications read", err))
	}
	return ctrl.SuccessResponse(c, nil, "Notifications marked read")
}
