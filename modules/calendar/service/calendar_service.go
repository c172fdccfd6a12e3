package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"counsel-api/core/config"
	"counsel-api/core/errors"
	"counsel-api/core/logger"
	"counsel-api/modules/calendar/dto"
	"counsel-api/modules/calendar/entity"
	"counsel-api/modules/calendar/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const meetingIDProperty = "meetingId"

type CalendarService interface {
	// Calendar operations against the provider
	ListEvents(ctx context.Context, counselorID uuid.UUID, from, to time.Time, maxResults int) ([]entity.Event, *errors.AppError)
	FreeBusy(ctx context.Context, counselorID uuid.UUID, from, to time.Time) (bool, *errors.AppError)
	AddEvent(ctx context.Context, counselorID uuid.UUID, event *entity.Event) (*entity.Event, *errors.AppError)
	UpdateEvent(ctx context.Context, counselorID uuid.UUID, eventID string, event *entity.Event) *errors.AppError
	DeleteEvent(ctx context.Context, counselorID uuid.UUID, eventID string) *errors.AppError
	GetEvent(ctx context.Context, counselorID uuid.UUID, eventID string) (*entity.Event, *errors.AppError)

	// Connection management
	GetAuthURL(counselorID uuid.UUID) (*dto.AuthURLResponse, *errors.AppError)
	SaveConnectionFromCode(ctx context.Context, counselorID uuid.UUID, code string) (*dto.ConnectionResponse, *errors.AppError)
	GetConnection(ctx context.Context, counselorID uuid.UUID) (*dto.ConnectionResponse, *errors.AppError)
	Disconnect(ctx context.Context, counselorID uuid.UUID) *errors.AppError
}

type googleCalendarService struct {
	repo       repository.CalendarConnectionRepository
	httpClient *http.Client
	now        func() time.Time
}

func NewCalendarService(repo repository.CalendarConnectionRepository) CalendarService {
	return &googleCalendarService{
		repo:       repo,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

func (s *googleCalendarService) apiBase() string {
	if cfg, ok := config.GetSafe(); ok && cfg.GoogleAPI.CalendarAPIBaseURL != "" {
		return cfg.GoogleAPI.CalendarAPIBaseURL
	}
	return "https://www.googleapis.com/calendar/v3"
}

func (s *googleCalendarService) freeBusyURL() string {
	return s.apiBase() + "/freeBusy"
}

func (s *googleCalendarService) eventsURL() string {
	return s.apiBase() + "/calendars/primary/events"
}

// Google wire types

type googleEventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type googleEventProperties struct {
	Private map[string]string `json:"private,omitempty"`
}

type googleEvent struct {
	ID                 string                 `json:"id,omitempty"`
	Summary            string                 `json:"summary,omitempty"`
	Description        string                 `json:"description,omitempty"`
	Status             string                 `json:"status,omitempty"`
	Start              googleEventTime        `json:"start"`
	End                googleEventTime        `json:"end"`
	ExtendedProperties *googleEventProperties `json:"extendedProperties,omitempty"`
}

type googleEventList struct {
	Items []googleEvent `json:"items"`
}

func toGoogleEvent(event *entity.Event) *googleEvent {
	ge := &googleEvent{
		ID:          event.ID,
		Summary:     event.Summary,
		Description: event.Description,
		Start:       googleEventTime{DateTime: event.Start.Format(time.RFC3339), TimeZone: event.TimeZone},
		End:         googleEventTime{DateTime: event.End.Format(time.RFC3339), TimeZone: event.TimeZone},
	}
	if event.MeetingID != "" {
		ge.ExtendedProperties = &googleEventProperties{
			Private: map[string]string{meetingIDProperty: event.MeetingID},
		}
	}
	return ge
}

func fromGoogleEvent(ge googleEvent) entity.Event {
	event := entity.Event{
		ID:          ge.ID,
		Summary:     ge.Summary,
		Description: ge.Description,
		Status:      ge.Status,
	}
	if ge.ExtendedProperties != nil {
		event.MeetingID = ge.ExtendedProperties.Private[meetingIDProperty]
	}
	if ge.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, ge.Start.DateTime); err == nil {
			event.Start = t
		}
	} else if ge.Start.Date != "" {
		if t, err := time.Parse("2006-01-02", ge.Start.Date); err == nil {
			event.Start = t
		}
	}
	if ge.End.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, ge.End.DateTime); err == nil {
			event.End = t
		}
	} else if ge.End.Date != "" {
		if t, err := time.Parse("2006-01-02", ge.End.Date); err == nil {
			event.End = t
		}
	}
	return event
}

// ListEvents returns the events intersecting [from, to), bounded by maxResults.
func (s *googleCalendarService) ListEvents(ctx context.Context, counselorID uuid.UUID, from, to time.Time, maxResults int) ([]entity.Event, *errors.AppError) {
	token, appErr := s.ensureValidToken(ctx, counselorID)
	if appErr != nil {
		return nil, appErr
	}

	params := url.Values{}
	params.Add("timeMin", from.UTC().Format(time.RFC3339))
	params.Add("timeMax", to.UTC().Format(time.RFC3339))
	params.Add("singleEvents", "true")
	params.Add("orderBy", "startTime")
	params.Add("maxResults", fmt.Sprintf("%d", maxResults))

	body, appErr := s.call(ctx, http.MethodGet, s.eventsURL()+"?"+params.Encode(), token, nil)
	if appErr != nil {
		return nil, appErr
	}

	var list googleEventList
	if err := json.Unmarshal(body, &list); err != nil {
		logger.Error("CalendarService:ListEvents:Unmarshal:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to parse event list", err)
	}

	events := make([]entity.Event, 0, len(list.Items))
	for _, item := range list.Items {
		if item.Status == "cancelled" {
			continue
		}
		events = append(events, fromGoogleEvent(item))
	}
	return events, nil
}

// FreeBusy reports whether [from, to) is entirely free.
func (s *googleCalendarService) FreeBusy(ctx context.Context, counselorID uuid.UUID, from, to time.Time) (bool, *errors.AppError) {
	token, appErr := s.ensureValidToken(ctx, counselorID)
	if appErr != nil {
		return false, appErr
	}

	reqBody := map[string]any{
		"timeMin": from.UTC().Format(time.RFC3339),
		"timeMax": to.UTC().Format(time.RFC3339),
		"items":   []map[string]string{{"id": "primary"}},
	}

	body, appErr := s.call(ctx, http.MethodPost, s.freeBusyURL(), token, reqBody)
	if appErr != nil {
		return false, appErr
	}

	var freeBusyResp struct {
		Calendars map[string]struct {
			Busy []struct {
				Start string `json:"start"`
				End   string `json:"end"`
			} `json:"busy"`
		} `json:"calendars"`
	}
	if err := json.Unmarshal(body, &freeBusyResp); err != nil {
		logger.Error("CalendarService:FreeBusy:Unmarshal:Error", "error", err)
		return false, errors.NewAppError(errors.ErrInternalServer, "failed to parse freebusy response", err)
	}

	for _, cal := range freeBusyResp.Calendars {
		if len(cal.Busy) > 0 {
			return false, nil
		}
	}
	return true, nil
}

// AddEvent creates the mirror event. The event id is the meeting id so the
// linkage can be recovered from either side.
func (s *googleCalendarService) AddEvent(ctx context.Context, counselorID uuid.UUID, event *entity.Event) (*entity.Event, *errors.AppError) {
	token, appErr := s.ensureValidToken(ctx, counselorID)
	if appErr != nil {
		return nil, appErr
	}

	body, appErr := s.call(ctx, http.MethodPost, s.eventsURL(), token, toGoogleEvent(event))
	if appErr != nil {
		return nil, appErr
	}

	var created googleEvent
	if err := json.Unmarshal(body, &created); err != nil {
		logger.Error("CalendarService:AddEvent:Unmarshal:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to parse created event", err)
	}
	result := fromGoogleEvent(created)
	return &result, nil
}

func (s *googleCalendarService) UpdateEvent(ctx context.Context, counselorID uuid.UUID, eventID string, event *entity.Event) *errors.AppError {
	token, appErr := s.ensureValidToken(ctx, counselorID)
	if appErr != nil {
		return appErr
	}

	_, appErr = s.call(ctx, http.MethodPut, s.eventsURL()+"/"+url.PathEscape(eventID), token, toGoogleEvent(event))
	return appErr
}

func (s *googleCalendarService) DeleteEvent(ctx context.Context, counselorID uuid.UUID, eventID string) *errors.AppError {
	token, appErr := s.ensureValidToken(ctx, counselorID)
	if appErr != nil {
		return appErr
	}

	_, appErr = s.call(ctx, http.MethodDelete, s.eventsURL()+"/"+url.PathEscape(eventID), token, nil)
	return appErr
}

// GetEvent returns (nil, nil) when the event does not exist.
func (s *googleCalendarService) GetEvent(ctx context.Context, counselorID uuid.UUID, eventID string) (*entity.Event, *errors.AppError) {
	token, appErr := s.ensureValidToken(ctx, counselorID)
	if appErr != nil {
		return nil, appErr
	}

	body, appErr := s.call(ctx, http.MethodGet, s.eventsURL()+"/"+url.PathEscape(eventID), token, nil)
	if appErr != nil {
		if appErr.Code == errors.ErrUpstream && (appErr.Status == http.StatusNotFound || appErr.Status == http.StatusGone) {
			return nil, nil
		}
		return nil, appErr
	}

	var ge googleEvent
	if err := json.Unmarshal(body, &ge); err != nil {
		logger.Error("CalendarService:GetEvent:Unmarshal:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to parse event", err)
	}
	if ge.Status == "cancelled" {
		return nil, nil
	}
	event := fromGoogleEvent(ge)
	return &event, nil
}

// call performs one provider request, mapping non-2xx statuses to upstream
// errors that preserve the original status code.
func (s *googleCalendarService) call(ctx context.Context, method, apiURL, token string, payload any) ([]byte, *errors.AppError) {
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

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Error("CalendarService:call:DoRequest:Error", "error", err, "url", apiURL)
		return nil, errors.NewAppError(errors.ErrInternalServer, "calendar provider unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("CalendarService:call:APIError", "status", resp.StatusCode, "url", apiURL, "body", string(body))
		return nil, errors.NewUpstreamError(resp.StatusCode, fmt.Sprintf("calendar provider error: %d", resp.StatusCode), nil)
	}
	return body, nil
}

// ensureValidToken loads the counselor's connection and refreshes the access
// token when it has expired. The stored credential is replaced wholesale.
func (s *googleCalendarService) ensureValidToken(ctx context.Context, counselorID uuid.UUID) (string, *errors.AppError) {
	conn, err := s.repo.GetConnection(ctx, counselorID, dto.ProviderGoogle)
	if err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to load calendar connection", err)
	}
	if conn == nil {
		return "", errors.NewAppError(errors.ErrUnauthorized, "Calendar not connected. Please connect Google Calendar first", nil)
	}

	if conn.TokenExpiresAt.IsZero() || s.now().Before(conn.TokenExpiresAt) {
		return conn.AccessToken, nil
	}

	if conn.RefreshToken == "" {
		return "", errors.NewAppError(errors.ErrTokenExpired, "Calendar token expired and no refresh token available", nil)
	}

	newToken, err := s.refreshToken(ctx, conn.RefreshToken)
	if err != nil {
		logger.Error("CalendarService:ensureValidToken:Refresh:Error", "error", err, "counselor_id", counselorID)
		return "", errors.NewAppError(errors.ErrTokenExpired, "failed to refresh calendar token", err)
	}

	conn.AccessToken = newToken.AccessToken
	if newToken.RefreshToken != "" {
		conn.RefreshToken = newToken.RefreshToken
	}
	conn.TokenExpiresAt = newToken.Expiry
	if err := s.repo.UpdateConnection(ctx, conn); err != nil {
		logger.Error("CalendarService:ensureValidToken:UpdateConnection:Error", "error", err, "counselor_id", counselorID)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to store refreshed token", err)
	}

	return newToken.AccessToken, nil
}

func (s *googleCalendarService) refreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, fmt.Errorf("config not initialized")
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		Endpoint:     google.Endpoint,
	}

	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return tokenSource.Token()
}

func (s *googleCalendarService) oauthConfig() (*oauth2.Config, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}
	if cfg.GoogleAPI.ClientID == "" || cfg.GoogleAPI.ClientSecret == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Google Calendar not configured", nil)
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/calendar.events",
			"https://www.googleapis.com/auth/calendar.readonly",
		},
		Endpoint: google.Endpoint,
	}, nil
}

// GetAuthURL starts the calendar OAuth flow; state carries the counselor id.
func (s *googleCalendarService) GetAuthURL(counselorID uuid.UUID) (*dto.AuthURLResponse, *errors.AppError) {
	oauthConfig, appErr := s.oauthConfig()
	if appErr != nil {
		return nil, appErr
	}
	authURL := oauthConfig.AuthCodeURL(counselorID.String(), oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return &dto.AuthURLResponse{AuthURL: authURL}, nil
}

// SaveConnectionFromCode exchanges the authorization code and stores the
// resulting tokens for the counselor.
func (s *googleCalendarService) SaveConnectionFromCode(ctx context.Context, counselorID uuid.UUID, code string) (*dto.ConnectionResponse, *errors.AppError) {
	oauthConfig, appErr := s.oauthConfig()
	if appErr != nil {
		return nil, appErr
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.Error("CalendarService:SaveConnectionFromCode:Exchange:Error", "error", err, "counselor_id", counselorID)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	conn := &entity.CalendarConnection{
		CounselorID:    counselorID,
		Provider:       dto.ProviderGoogle,
		AccessToken:    token.AccessToken,
		RefreshToken:   token.RefreshToken,
		TokenExpiresAt: token.Expiry,
		IsActive:       true,
	}
	if _, err := s.repo.CreateConnection(ctx, conn); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store calendar connection", err)
	}

	logger.Info("CalendarService:SaveConnectionFromCode:Success", "counselor_id", counselorID)
	return &dto.ConnectionResponse{
		Provider:       conn.Provider,
		CalendarEmail:  conn.CalendarEmail,
		TokenExpiresAt: conn.TokenExpiresAt,
		IsActive:       conn.IsActive,
	}, nil
}

func (s *googleCalendarService) GetConnection(ctx context.Context, counselorID uuid.UUID) (*dto.ConnectionResponse, *errors.AppError) {
	conn, err := s.repo.GetConnection(ctx, counselorID, dto.ProviderGoogle)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load calendar connection", err)
	}
	if conn == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Calendar not connected", nil)
	}
	return &dto.ConnectionResponse{
		Provider:       conn.Provider,
		CalendarEmail:  conn.CalendarEmail,
		TokenExpiresAt: conn.TokenExpiresAt,
		IsActive:       conn.IsActive,
	}, nil
}

func (s *googleCalendarService) Disconnect(ctx context.Context, counselorID uuid.UUID) *errors.AppError {
	if err := s.repo.DeactivateConnection(ctx, counselorID, dto.ProviderGoogle); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to disconnect calendar", err)
	}
	return nil
}
