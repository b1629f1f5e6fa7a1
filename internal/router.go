package internal

import (
	"context"
	"errors"
	"time"
)

// ErrNoRoute is returned by a Router when no physical route exists
// between the origin and the destination for the requested mode.
var ErrNoRoute = errors.New("no route found")

type Router interface {
	FindRoute(ctx context.Context, origin, destination string, arrival time.Time, mode TransportMode) (time.Duration, error)
}
