package meeting

import (
	"counsel-api/modules/meeting/controller"
	"counsel-api/modules/meeting/router"
	"counsel-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting module and registers routes
func Init(e *echo.Echo, tokens controller.TokenResolver) service.MeetingProvider {
	provider := service.NewMeetingProvider()
	ctrl := controller.NewMeetingController(provider, tokens)

	router.NewMeetingRouter(ctrl).Setup(e)
	return provider
}
