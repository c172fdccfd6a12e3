package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"counsel-api/core/config"
	"counsel-api/core/errors"
	"counsel-api/core/logger"
	"counsel-api/modules/meeting/entity"
)

// MeetingProvider is the video meeting provider client. Callers supply the
// access token for the operator session; the provider never caches tokens.
//
// Provider failures are surfaced, not retried. 401 means the token is no
// longer valid and the operator must re-authenticate; 400 and 404 on a
// meeting id mean the meeting no longer exists upstream and needs recreation.
type MeetingProvider interface {
	CreateMeeting(ctx context.Context, token string, meeting *entity.Meeting) (*entity.Meeting, *errors.AppError)
	GetMeeting(ctx context.Context, token, meetingID string) (*entity.Meeting, *errors.AppError)
	ListMeetings(ctx context.Context, token string) ([]entity.Meeting, *errors.AppError)
	EditMeeting(ctx context.Context, token, meetingID string, meeting *entity.Meeting) *errors.AppError
	DeleteMeeting(ctx context.Context, token, meetingID string) *errors.AppError
	AddRegistrant(ctx context.Context, token, meetingID string, registrant *entity.Registrant) (*entity.Registrant, *errors.AppError)
}

type zoomMeetingProvider struct {
	httpClient *http.Client
}

func NewMeetingProvider() MeetingProvider {
	return &zoomMeetingProvider{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *zoomMeetingProvider) baseURL() string {
	if cfg, ok := config.GetSafe(); ok && cfg.Zoom.APIBaseURL != "" {
		return cfg.Zoom.APIBaseURL
	}
	return "https://api.zoom.us/v2"
}

type zoomMeetingPayload struct {
	Topic     string `json:"topic"`
	Agenda    string `json:"agenda,omitempty"`
	Type      int    `json:"type"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Timezone  string `json:"timezone,omitempty"`
}

type zoomMeetingList struct {
	Meetings []entity.Meeting `json:"meetings"`
}

func toZoomPayload(meeting *entity.Meeting) *zoomMeetingPayload {
	meetingType := meeting.Type
	if meetingType == 0 {
		meetingType = entity.TypeScheduled
	}
	return &zoomMeetingPayload{
		Topic:     meeting.Topic,
		Agenda:    meeting.Agenda,
		Type:      meetingType,
		StartTime: meeting.StartTime.UTC().Format("2006-01-02T15:04:05Z"),
		Duration:  meeting.DurationMinutes,
		Timezone:  meeting.Timezone,
	}
}

func (p *zoomMeetingProvider) CreateMeeting(ctx context.Context, token string, meeting *entity.Meeting) (*entity.Meeting, *errors.AppError) {
	body, appErr := p.call(ctx, http.MethodPost, p.baseURL()+"/users/me/meetings", token, toZoomPayload(meeting))
	if appErr != nil {
		return nil, appErr
	}

	var created entity.Meeting
	if err := json.Unmarshal(body, &created); err != nil {
		logger.Error("MeetingProvider:CreateMeeting:Unmarshal:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to parse created meeting", err)
	}
	logger.Info("MeetingProvider:CreateMeeting:Success", "meeting_id", created.ID)
	return &created, nil
}

func (p *zoomMeetingProvider) GetMeeting(ctx context.Context, token, meetingID string) (*entity.Meeting, *errors.AppError) {
	body, appErr := p.call(ctx, http.MethodGet, p.baseURL()+"/meetings/"+meetingID, token, nil)
	if appErr != nil {
		return nil, appErr
	}

	var meeting entity.Meeting
	if err := json.Unmarshal(body, &meeting); err != nil {
		logger.Error("MeetingProvider:GetMeeting:Unmarshal:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to parse meeting", err)
	}
	return &meeting, nil
}

func (p *zoomMeetingProvider) ListMeetings(ctx context.Context, token string) ([]entity.Meeting, *errors.AppError) {
	body, appErr := p.call(ctx, http.MethodGet, p.baseURL()+"/users/me/meetings?type=upcoming", token, nil)
	if appErr != nil {
		return nil, appErr
	}

	var list zoomMeetingList
	if err := json.Unmarshal(body, &list); err != nil {
		logger.Error("MeetingProvider:ListMeetings:Unmarshal:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to parse meeting list", err)
	}
	return list.Meetings, nil
}

func (p *zoomMeetingProvider) EditMeeting(ctx context.Context, token, meetingID string, meeting *entity.Meeting) *errors.AppError {
	_, appErr := p.call(ctx, http.MethodPatch, p.baseURL()+"/meetings/"+meetingID, token, toZoomPayload(meeting))
	return appErr
}

func (p *zoomMeetingProvider) DeleteMeeting(ctx context.Context, token, meetingID string) *errors.AppError {
	_, appErr := p.call(ctx, http.MethodDelete, p.baseURL()+"/meetings/"+meetingID, token, nil)
	return appErr
}

func (p *zoomMeetingProvider) AddRegistrant(ctx context.Context, token, meetingID string, registrant *entity.Registrant) (*entity.Registrant, *errors.AppError) {
	body, appErr := p.call(ctx, http.MethodPost, p.baseURL()+"/meetings/"+meetingID+"/registrants", token, registrant)
	if appErr != nil {
		return nil, appErr
	}

	var added entity.Registrant
	if err := json.Unmarshal(body, &added); err != nil {
		logger.Error("MeetingProvider:AddRegistrant:Unmarshal:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to parse registrant", err)
	}
	return &added, nil
}

// call issues one provider request and maps failure statuses. The status
// semantics drive the recovery path the API reports to callers.
func (p *zoomMeetingProvider) call(ctx context.Context, method, apiURL, token string, payload any) ([]byte, *errors.AppError) {
	if token == "" {
		return nil, errors.NewAppError(errors.ErrTokenExpired, "meeting provider token missing or expired", nil)
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to encode request", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.Error("MeetingProvider:call:DoRequest:Error", "error", err, "url", apiURL)
		return nil, errors.NewAppError(errors.ErrInternalServer, "meeting provider unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to read response", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errors.NewAppError(errors.ErrTokenExpired, "meeting provider session expired, re-authentication required", nil)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		logger.Warn("MeetingProvider:call:ResourceMissing", "status", resp.StatusCode, "url", apiURL)
		return nil, errors.NewAppError(errors.ErrResourceMissing, "meeting no longer exists upstream and needs recreation", nil)
	default:
		logger.Error("MeetingProvider:call:APIError", "status", resp.StatusCode, "url", apiURL, "body", string(body))
		return nil, errors.NewUpstreamError(resp.StatusCode, fmt.Sprintf("meeting provider error: %d", resp.StatusCode), nil)
	}
}
