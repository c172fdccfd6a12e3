package controller

import (
	"counsel-api/core/controller"
	"counsel-api/core/errors"
	"counsel-api/core/middleware"
	"counsel-api/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CalendarController handles calendar connection HTTP requests
type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarService
}

func NewCalendarController(svc service.CalendarService) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: svc,
	}
}

// GetAuthURL handles GET /private/calendar/auth-url
// @Summary Get the Google Calendar authorization URL
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AuthURLResponse
// @Router /private/calendar/auth-url [get]
func (c *CalendarController) GetAuthURL(ctx echo.Context) error {
	counselorID, ok := ctx.Get(middleware.ContextCounselorID).(uuid.UUID)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing counselor identity")
	}

	result, appErr := c.CalendarService.GetAuthURL(counselorID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Authorization URL generated")
}

// HandleCallback handles GET /calendar/callback
// @Summary Google Calendar OAuth callback
// @Description Exchanges the authorization code and stores the calendar connection
// @Tags Calendar
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "Counselor id"
// @Success 200 {object} dto.ConnectionResponse
// @Failure 400 {object} errors.AppError
// @Router /calendar/callback [get]
func (c *CalendarController) HandleCallback(ctx echo.Context) error {
	code := ctx.QueryParam("code")
	if code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing authorization code")
	}

	counselorID, err := uuid.Parse(ctx.QueryParam("state"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid state")
	}

	result, appErr := c.CalendarService.SaveConnectionFromCode(ctx.Request().Context(), counselorID, code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Calendar connected")
}

// GetConnection handles GET /private/calendar/connection
// @Summary Get the calendar connection status
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ConnectionResponse
// @Router /private/calendar/connection [get]
func (c *CalendarController) GetConnection(ctx echo.Context) error {
	counselorID, ok := ctx.Get(middleware.ContextCounselorID).(uuid.UUID)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing counselor identity")
	}

	result, appErr := c.CalendarService.GetConnection(ctx.Request().Context(), counselorID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Calendar connection")
}

// Disconnect handles DELETE /private/calendar/connection
// @Summary Disconnect Google Calendar
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /private/calendar/connection [delete]
func (c *CalendarController) Disconnect(ctx echo.Context) error {
	counselorID, ok := ctx.Get(middleware.ContextCounselorID).(uuid.UUID)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing counselor identity")
	}

	if appErr := c.CalendarService.Disconnect(ctx.Request().Context(), counselorID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Calendar disconnected")
}
