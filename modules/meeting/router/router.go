package router

import (
	"counsel-api/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{
		MeetingController: meetingController,
	}
}

func (r *MeetingRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/meetings", r.MeetingController.ListMeetings)
	v1.GET("/meetings/:id", r.MeetingController.GetMeeting)
	v1.POST("/meetings/:id/registrants", r.MeetingController.AddRegistrant)
}
