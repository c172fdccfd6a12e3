package router

import (
	"counsel-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

func (r *AuthRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	zoom := v1.Group("/zoom")
	zoom.GET("/oauth/callback", r.AuthController.HandleCallback)
	zoom.POST("/oauth", r.AuthController.Status)
	zoom.POST("/oauth/refreshtoken", r.AuthController.RefreshToken)
	zoom.POST("/oauth/logout", r.AuthController.Logout)
}
