package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTransportMode(t *testing.T) {
	mode, err := ParseTransportMode("driving")
	require.NoError(t, err)
	require.Equal(t, ModeDriving, mode)

	mode, err = ParseTransportMode("Transit")
	require.NoError(t, err)
	require.Equal(t, ModeTransit, mode)

	_, err = ParseTransportMode("teleport")
	require.Error(t, err)
}

func TestDurationText(t *testing.T) {
	tests := []struct {
		d    time.Duration
		mode TransportMode
		want string
	}{
		{56 * time.Minute, ModeBicycling, "🚴 bicycling 56 minutes"},
		{3*time.Hour + 23*time.Minute, ModeDriving, "🚗 driving 3 hours 23 minutes"},
		{2 * time.Hour, ModeTransit, "🚆 transit 2 hours"},
		{90 * time.Second, ModeWalking, "🚶 walking 1 minutes"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, DurationText(tt.d, tt.mode))
	}
}

func TestEventAttending(t *testing.T) {
	require.True(t, Event{CreatedByMe: true}.Attending())
	require.True(t, Event{ResponseStatus: Accepted}.Attending())
	require.True(t, Event{ResponseStatus: Tentative}.Attending())
	require.False(t, Event{ResponseStatus: Declined}.Attending())
	require.False(t, Event{ResponseStatus: NeedsAction}.Attending())
	require.False(t, Event{}.Attending())
}
