package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"counsel-api/core/config"
	"counsel-api/core/errors"
	"counsel-api/modules/calendar/entity"

	"github.com/google/uuid"
)

type stubConnectionRepo struct {
	conn *entity.CalendarConnection
}

func (r *stubConnectionRepo) CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error) {
	r.conn = conn
	return conn, nil
}

func (r *stubConnectionRepo) GetConnection(ctx context.Context, counselorID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	return r.conn, nil
}

func (r *stubConnectionRepo) UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error {
	r.conn = conn
	return nil
}

func (r *stubConnectionRepo) DeactivateConnection(ctx context.Context, counselorID uuid.UUID, provider string) error {
	r.conn = nil
	return nil
}

func newTestCalendarService(t *testing.T, handler http.Handler) CalendarService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config.SetForTest(&config.Config{
		GoogleAPI: config.GoogleAPIConfig{CalendarAPIBaseURL: server.URL},
	})
	t.Cleanup(func() { config.SetForTest(nil) })

	repo := &stubConnectionRepo{conn: &entity.CalendarConnection{
		Provider:    "google",
		AccessToken: "cal-token",
		IsActive:    true,
	}}
	return NewCalendarService(repo)
}

// monday returns 2026-08-31 (a Monday) at the given UTC hour.
func monday(hour int) time.Time {
	return time.Date(2026, 8, 31, hour, 0, 0, 0, time.UTC)
}

func TestFreeBusyReportsBusyWindow(t *testing.T) {
	svc := newTestCalendarService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/freeBusy" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer cal-token" {
			t.Errorf("authorization header = %q", got)
		}
		_, _ = w.Write([]byte(`{"calendars":{"primary":{"busy":[{"start":"2026-08-31T10:00:00Z","end":"2026-08-31T10:30:00Z"}]}}}`))
	}))

	free, appErr := svc.FreeBusy(context.Background(), uuid.New(), monday(10), monday(11))
	if appErr != nil {
		t.Fatalf("FreeBusy: %v", appErr)
	}
	if free {
		t.Fatal("window with a busy block reported free")
	}
}

func TestFreeBusyReportsFreeWindow(t *testing.T) {
	svc := newTestCalendarService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"calendars":{"primary":{"busy":[]}}}`))
	}))

	free, appErr := svc.FreeBusy(context.Background(), uuid.New(), monday(9), monday(10))
	if appErr != nil {
		t.Fatalf("FreeBusy: %v", appErr)
	}
	if !free {
		t.Fatal("empty busy list reported busy")
	}
}

func TestFreeBusyPreservesUpstreamStatus(t *testing.T) {
	svc := newTestCalendarService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, appErr := svc.FreeBusy(context.Background(), uuid.New(), monday(9), monday(10))
	if appErr == nil {
		t.Fatal("expected an error")
	}
	if appErr.Code != errors.ErrUpstream || appErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("got %s/%d, want %s/503", appErr.Code, appErr.Status, errors.ErrUpstream)
	}
}

func TestGetEventAbsentIsNotAnError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "404 on the event id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "cancelled event body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":"9001","status":"cancelled"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestCalendarService(t, tt.handler)

			event, appErr := svc.GetEvent(context.Background(), uuid.New(), "9001")
			if appErr != nil {
				t.Fatalf("GetEvent: %v", appErr)
			}
			if event != nil {
				t.Fatalf("absent event returned %+v", event)
			}
		})
	}
}
