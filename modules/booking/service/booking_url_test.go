package service

import (
	"testing"

	"counsel-api/core/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBookingPageURL(t *testing.T) {
	config.SetForTest(&config.Config{
		App: config.AppConfig{URL: "https://counsel.example.com/"},
	})
	t.Cleanup(func() { config.SetForTest(nil) })

	svc := NewBookingService(nil, nil, nil, nil)
	counselorID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	t.Run("slugs the counselor name", func(t *testing.T) {
		resp, appErr := svc.BookingPageURL(counselorID, "Dr. Hannah Kim")
		require.Nil(t, appErr)
		require.Equal(t, "dr-hannah-kim", resp.Slug)
		require.Equal(t, "https://counsel.example.com/book/dr-hannah-kim?c="+counselorID.String(), resp.URL)
	})

	t.Run("falls back to the counselor id when the name is empty", func(t *testing.T) {
		resp, appErr := svc.BookingPageURL(counselorID, "")
		require.Nil(t, appErr)
		require.Equal(t, counselorID.String(), resp.Slug)
	})
}
