package controller

import (
	"context"

	"counsel-api/core/constants"
	"counsel-api/core/controller"
	"counsel-api/core/errors"
	"counsel-api/core/middleware"
	"counsel-api/modules/booking/dto"
	"counsel-api/modules/booking/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenResolver yields the meeting provider access token for a request.
type TokenResolver interface {
	ResolveCredential(ctx context.Context, explicitToken, sessionID string) (string, *errors.AppError)
}

type BookingController struct {
	controller.BaseController
	bookingService service.BookingService
	tokens         TokenResolver
}

func NewBookingController(bookingService service.BookingService, tokens TokenResolver) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		bookingService: bookingService,
		tokens:         tokens,
	}
}

func (ctrl *BookingController) resolveToken(c echo.Context) (string, *errors.AppError) {
	sessionID := ""
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil {
		sessionID = cookie.Value
	}
	return ctrl.tokens.ResolveCredential(c.Request().Context(), c.Request().Header.Get("token"), sessionID)
}

// Create godoc
// @Summary Book a meeting
// @Description Checks availability, creates the provider meeting, then mirrors it to the calendar
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking"
// @Success 200 {object} dto.BookingResult
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /meetings [post]
func (ctrl *BookingController) Create(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if req.Topic == "" || req.StartTime.IsZero() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "topic and start_time are required")
	}

	token, appErr := ctrl.resolveToken(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	result, appErr := ctrl.bookingService.Create(c.Request().Context(), token, &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, result, "Booking processed")
}

// Reschedule godoc
// @Summary Reschedule a meeting
// @Description Moves the meeting to a new start, excluding its own mirror from the conflict check
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Meeting id"
// @Param request body dto.RescheduleBookingRequest true "New schedule"
// @Success 200 {object} dto.BookingResult
// @Failure 404 {object} controller.ErrorResponse
// @Router /meetings/{id} [patch]
func (ctrl *BookingController) Reschedule(c echo.Context) error {
	var req dto.RescheduleBookingRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if req.StartTime.IsZero() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "start_time is required")
	}

	token, appErr := ctrl.resolveToken(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	result, appErr := ctrl.bookingService.Reschedule(c.Request().Context(), token, c.Param("id"), &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, result, "Reschedule processed")
}

// Cancel godoc
// @Summary Cancel a meeting
// @Description Deletes the provider meeting and best-effort removes the calendar mirror
// @Tags bookings
// @Produce json
// @Param id path string true "Meeting id"
// @Param counselor_id query string true "Counselor id"
// @Success 200 {object} dto.BookingResult
// @Failure 404 {object} controller.ErrorResponse
// @Router /meetings/{id} [delete]
func (ctrl *BookingController) Cancel(c echo.Context) error {
	counselorID, err := uuid.Parse(c.QueryParam("counselor_id"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid counselor id")
	}

	token, appErr := ctrl.resolveToken(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	result, appErr := ctrl.bookingService.Cancel(c.Request().Context(), token, c.Param("id"), counselorID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, result, "Cancellation processed")
}

// BookingPageURL godoc
// @Summary Get the public booking page URL
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BookingPageURLResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /booking-url [get]
func (ctrl *BookingController) BookingPageURL(c echo.Context) error {
	counselorID, ok := c.Get(middleware.ContextCounselorID).(uuid.UUID)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "Missing counselor identity")
	}
	name, _ := c.Get(middleware.ContextName).(string)

	resp, appErr := ctrl.bookingService.BookingPageURL(counselorID, name)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, "Booking page URL")
}
