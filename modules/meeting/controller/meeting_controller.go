package controller

import (
	"context"

	"counsel-api/core/constants"
	"counsel-api/core/controller"
	"counsel-api/core/errors"
	"counsel-api/modules/meeting/dto"
	"counsel-api/modules/meeting/entity"
	"counsel-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// TokenResolver yields the provider access token for a request. An explicit
// token always wins over the session credential.
type TokenResolver interface {
	ResolveCredential(ctx context.Context, explicitToken, sessionID string) (string, *errors.AppError)
}

type MeetingController struct {
	controller.BaseController
	provider service.MeetingProvider
	tokens   TokenResolver
}

func NewMeetingController(provider service.MeetingProvider, tokens TokenResolver) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		provider:       provider,
		tokens:         tokens,
	}
}

func (ctrl *MeetingController) resolveToken(c echo.Context) (string, *errors.AppError) {
	sessionID := ""
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil {
		sessionID = cookie.Value
	}
	return ctrl.tokens.ResolveCredential(c.Request().Context(), c.Request().Header.Get("token"), sessionID)
}

// ListMeetings godoc
// @Summary List upcoming meetings
// @Description Lists the operator's upcoming meetings from the meeting provider
// @Tags meetings
// @Produce json
// @Param token header string false "Explicit provider token"
// @Success 200 {array} dto.MeetingResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /meetings [get]
func (ctrl *MeetingController) ListMeetings(c echo.Context) error {
	token, appErr := ctrl.resolveToken(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	meetings, appErr := ctrl.provider.ListMeetings(c.Request().Context(), token)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	resp := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		resp = append(resp, *dto.ToMeetingResponse(&meetings[i]))
	}
	return ctrl.SuccessResponse(c, resp, "Meetings retrieved")
}

// GetMeeting godoc
// @Summary Get a meeting
// @Tags meetings
// @Produce json
// @Param id path string true "Meeting id"
// @Param token header string false "Explicit provider token"
// @Success 200 {object} dto.MeetingResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /meetings/{id} [get]
func (ctrl *MeetingController) GetMeeting(c echo.Context) error {
	token, appErr := ctrl.resolveToken(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	meeting, appErr := ctrl.provider.GetMeeting(c.Request().Context(), token, c.Param("id"))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, dto.ToMeetingResponse(meeting), "Meeting retrieved")
}

// AddRegistrant godoc
// @Summary Register an attendee to a meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Param id path string true "Meeting id"
// @Param request body dto.AddRegistrantRequest true "Registrant"
// @Success 200 {object} dto.RegistrantResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /meetings/{id}/registrants [post]
func (ctrl *MeetingController) AddRegistrant(c echo.Context) error {
	var req dto.AddRegistrantRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if req.Email == "" || req.FirstName == "" {
		return ctrl.BadRequest(errors.ErrInvalidInput, "email and first_name are required")
	}

	token, appErr := ctrl.resolveToken(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	registrant, appErr := ctrl.provider.AddRegistrant(c.Request().Context(), token, c.Param("id"), &entity.Registrant{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, dto.RegistrantResponse{
		ID:      registrant.ID,
		Email:   registrant.Email,
		JoinURL: registrant.JoinURL,
	}, "Registrant added")
}
