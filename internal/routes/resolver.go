package routes

import (
	"context"
	"time"

	"github.com/mkralj/traveltime/internal"
)

// Resolver answers "how long is the commute" questions, going to the
// router only when the cache has no answer for the route.
type Resolver struct {
	cache  *Cache
	router internal.Router
}

func NewResolver(cache *Cache, router internal.Router) *Resolver {
	return &Resolver{cache: cache, router: router}
}

// Resolve returns the travel duration for arriving at destination by
// arrival, or ok=false when no route exists or the lookup failed.
// Router errors are not surfaced: they are cached as "no route" so a
// flaky pair doesn't get hammered run after run.
func (r *Resolver) Resolve(ctx context.Context, origin, destination string, arrival time.Time, mode internal.TransportMode) (time.Duration, bool) {
	if d, ok, cached := r.cache.Get(ctx, origin, destination, mode); cached {
		return d, ok
	}

	d, err := r.router.FindRoute(ctx, origin, destination, arrival, mode)
	if err != nil {
		r.cache.Put(ctx, origin, destination, mode, 0, false)
		return 0, false
	}
	r.cache.Put(ctx, origin, destination, mode, d, true)
	return d, true
}
