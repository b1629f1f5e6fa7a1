// Package google resolves travel durations through the Google
// Distance Matrix API.
package google

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"googlemaps.github.io/maps"

	"github.com/mkralj/traveltime/internal"
)

type Router struct {
	client *maps.Client
}

func NewRouter(apiKey string) (*Router, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("maps: creating client: %v", err)
	}
	return &Router{client: client}, nil
}

func (r *Router) FindRoute(ctx context.Context, origin, destination string, arrival time.Time, mode internal.TransportMode) (time.Duration, error) {
	resp, err := r.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         travelMode(mode),
		ArrivalTime:  strconv.FormatInt(arrival.Unix(), 10),
	})
	if err != nil {
		return 0, err
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, internal.ErrNoRoute
	}
	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, internal.ErrNoRoute
	}
	return element.Duration, nil
}

func travelMode(mode internal.TransportMode) maps.Mode {
	switch mode {
	case internal.ModeWalking:
		return maps.TravelModeWalking
	case internal.ModeBicycling:
		return maps.TravelModeBicycling
	case internal.ModeTransit:
		return maps.TravelModeTransit
	}
	return maps.TravelModeDriving
}
