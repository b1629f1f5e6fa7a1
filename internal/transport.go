package internal

import (
	"fmt"
	"strings"
	"time"
)

type TransportMode string

var (
	ModeDriving   TransportMode = "driving"
	ModeWalking   TransportMode = "walking"
	ModeBicycling TransportMode = "bicycling"
	ModeTransit   TransportMode = "transit"
)

func (m TransportMode) String() string {
	return string(m)
}

func (m TransportMode) Glyph() string {
	switch m {
	case ModeDriving:
		return "🚗"
	case ModeWalking:
		return "🚶"
	case ModeBicycling:
		return "🚴"
	case ModeTransit:
		return "🚆"
	}
	return "🚗"
}

func ParseTransportMode(s string) (TransportMode, error) {
	switch m := TransportMode(strings.ToLower(s)); m {
	case ModeDriving, ModeWalking, ModeBicycling, ModeTransit:
		return m, nil
	}
	return "", fmt.Errorf("unknown transport mode %q", s)
}

// DurationText renders a commute duration the way it appears in the
// companion event title, e.g. "🚗 driving 1 hours 23 minutes".
func DurationText(d time.Duration, mode TransportMode) string {
	minutes := int(d / time.Minute)
	hours, minutes := minutes/60, minutes%60

	parts := []string{mode.Glyph(), mode.String()}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hours", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutes", minutes))
	}
	return strings.Join(parts, " ")
}
