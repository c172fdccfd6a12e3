package auth

import (
	"counsel-api/core/cache"
	"counsel-api/modules/auth/controller"
	"counsel-api/modules/auth/repository"
	"counsel-api/modules/auth/router"
	"counsel-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, c cache.Cache) service.TokenService {
	repo := repository.NewCredentialRepository(c)
	svc := service.NewTokenService(repo)
	ctrl := controller.NewAuthController(svc)

	router.NewAuthRouter(ctrl).Setup(e)
	return svc
}
