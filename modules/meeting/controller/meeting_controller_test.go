package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"counsel-api/core/constants"
	"counsel-api/core/errors"
	"counsel-api/modules/meeting/entity"

	"github.com/labstack/echo/v4"
)

type stubResolver struct {
	gotExplicit string
	gotSession  string
}

func (r *stubResolver) ResolveCredential(ctx context.Context, explicitToken, sessionID string) (string, *errors.AppError) {
	r.gotExplicit = explicitToken
	r.gotSession = sessionID
	return "resolved", nil
}

type stubProvider struct{}

func (stubProvider) CreateMeeting(ctx context.Context, token string, meeting *entity.Meeting) (*entity.Meeting, *errors.AppError) {
	return meeting, nil
}
func (stubProvider) GetMeeting(ctx context.Context, token, meetingID string) (*entity.Meeting, *errors.AppError) {
	return &entity.Meeting{ID: meetingID}, nil
}
func (stubProvider) ListMeetings(ctx context.Context, token string) ([]entity.Meeting, *errors.AppError) {
	return nil, nil
}
func (stubProvider) EditMeeting(ctx context.Context, token, meetingID string, meeting *entity.Meeting) *errors.AppError {
	return nil
}
func (stubProvider) DeleteMeeting(ctx context.Context, token, meetingID string) *errors.AppError {
	return nil
}
func (stubProvider) AddRegistrant(ctx context.Context, token, meetingID string, registrant *entity.Registrant) (*entity.Registrant, *errors.AppError) {
	return registrant, nil
}

// The explicit override token rides in the token request header, never the
// query string, so it stays out of access logs and shared URLs.
func TestResolveTokenReadsHeaderNotQuery(t *testing.T) {
	resolver := &stubResolver{}
	ctrl := NewMeetingController(stubProvider{}, resolver)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/meetings?token=query-token", nil)
	req.Header.Set("token", "header-token")
	req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "sid-1"})
	rec := httptest.NewRecorder()

	if err := ctrl.ListMeetings(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListMeetings: %v", err)
	}
	if resolver.gotExplicit != "header-token" {
		t.Fatalf("explicit token = %q, want the header value", resolver.gotExplicit)
	}
	if resolver.gotSession != "sid-1" {
		t.Fatalf("session id = %q, want sid-1", resolver.gotSession)
	}
}

func TestResolveTokenWithoutHeaderFallsToSession(t *testing.T) {
	resolver := &stubResolver{}
	ctrl := NewMeetingController(stubProvider{}, resolver)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
	req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "sid-2"})
	rec := httptest.NewRecorder()

	if err := ctrl.ListMeetings(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListMeetings: %v", err)
	}
	if resolver.gotExplicit != "" {
		t.Fatalf("explicit token = %q, want empty", resolver.gotExplicit)
	}
	if resolver.gotSession != "sid-2" {
		t.Fatalf("session id = %q, want sid-2", resolver.gotSession)
	}
}
