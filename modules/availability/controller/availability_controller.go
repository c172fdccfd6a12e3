package controller

import (
	"counsel-api/core/controller"
	"counsel-api/core/errors"
	"counsel-api/core/middleware"
	"counsel-api/modules/availability/dto"
	"counsel-api/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AvailabilityController handles slot and working-hours HTTP requests
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityService
}

func NewAvailabilityController(svc service.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// AvailableSlots handles POST /calendar/available
// @Summary List bookable time slots
// @Description Computes free slots for a counselor from the requested instant through that local day
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.AvailableSlotsRequest true "Slot query"
// @Success 200 {object} dto.AvailableSlotsResponse
// @Failure 400 {object} errors.AppError
// @Router /calendar/available [post]
func (c *AvailabilityController) AvailableSlots(ctx echo.Context) error {
	var req dto.AvailableSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AvailabilityService.ResolveSlots(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Available slots resolved")
}

// GetWorkingHours handles GET /private/counselors/:id/working-hours
// @Summary Get a counselor's working hours
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.WorkingHoursResponse
// @Router /private/counselors/{id}/working-hours [get]
func (c *AvailabilityController) GetWorkingHours(ctx echo.Context) error {
	counselorID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid counselor id")
	}

	result, appErr := c.AvailabilityService.GetWorkingHours(ctx.Request().Context(), counselorID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Working hours")
}

// PutWorkingHours handles PUT /private/counselors/:id/working-hours
// @Summary Replace a counselor's working hours
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.WorkingHoursRequest true "Working hours"
// @Success 200 {object} dto.WorkingHoursResponse
// @Failure 400 {object} errors.AppError
// @Router /private/counselors/{id}/working-hours [put]
func (c *AvailabilityController) PutWorkingHours(ctx echo.Context) error {
	counselorID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid counselor id")
	}

	// counselors may only edit their own configuration
	if authed, ok := ctx.Get(middleware.ContextCounselorID).(uuid.UUID); ok && authed != counselorID {
		return c.Forbidden(errors.ErrForbidden, "Cannot edit another counselor's working hours")
	}

	var req dto.WorkingHoursRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AvailabilityService.PutWorkingHours(ctx.Request().Context(), counselorID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Working hours updated")
}
