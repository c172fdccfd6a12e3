package controller

import (
	"net/http"
	"time"

	"counsel-api/core/constants"
	"counsel-api/core/controller"
	"counsel-api/core/errors"
	"counsel-api/core/utils"
	"counsel-api/modules/auth/dto"
	"counsel-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	tokenService service.TokenService
}

func NewAuthController(tokenService service.TokenService) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		tokenService:   tokenService,
	}
}

// sessionID returns the session cookie value, minting a new session when the
// request carries none.
func (ctrl *AuthController) sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sid := utils.GenerateID()
	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(constants.SessionTTL),
	})
	return sid
}

// HandleCallback godoc
// @Summary Meeting provider OAuth callback
// @Description Exchanges the authorization code and binds the credential to the session
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.AuthStatusResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /zoom/oauth/callback [get]
func (ctrl *AuthController) HandleCallback(c echo.Context) error {
	sessionID := ctrl.sessionID(c)

	resp, appErr := ctrl.tokenService.ExchangeCode(c.Request().Context(), c.QueryParam("code"), sessionID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, "Signed in with meeting provider")
}

// Status godoc
// @Summary Report meeting provider auth state
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AuthStatusRequest false "Optional explicit token"
// @Success 200 {object} dto.AuthStatusResponse
// @Router /zoom/oauth [post]
func (ctrl *AuthController) Status(c echo.Context) error {
	var req dto.AuthStatusRequest
	_ = c.Bind(&req)

	sessionID := ""
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil {
		sessionID = cookie.Value
	}

	resp, appErr := ctrl.tokenService.Status(c.Request().Context(), req.Token, sessionID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, "Auth status")
}

// RefreshToken godoc
// @Summary Refresh the stored meeting provider credential
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /zoom/oauth/refreshtoken [post]
func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	cookie, err := c.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return ctrl.Unauthorized(errors.ErrTokenExpired, "No active session")
	}

	resp, appErr := ctrl.tokenService.Refresh(c.Request().Context(), cookie.Value)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, "Token refreshed")
}

// Logout godoc
// @Summary Clear the stored meeting provider credential
// @Tags auth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /zoom/oauth/logout [post]
func (ctrl *AuthController) Logout(c echo.Context) error {
	sessionID := ""
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil {
		sessionID = cookie.Value
	}

	if appErr := ctrl.tokenService.Logout(c.Request().Context(), sessionID); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return ctrl.SuccessResponse(c, nil, "Signed out")
}
