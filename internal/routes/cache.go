package routes

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mkralj/traveltime/internal"
)

// noRoute marks origin/destination pairs with no route between them,
// so unreachable pairs are not re-queried on every run.
const noRoute = "none"

// Cache stores resolved travel durations in a KV store. The key is
// (origin, destination, mode); arrival time is deliberately left out,
// trading time-of-day accuracy for far fewer route lookups.
type Cache struct {
	kv  internal.KV
	ttl time.Duration
}

func NewCache(kv internal.KV, ttl time.Duration) *Cache {
	return &Cache{kv: kv, ttl: ttl}
}

// Get returns the cached duration for the route. cached reports
// whether an entry was found at all; ok reports whether a route
// exists. A KV failure degrades to a miss.
func (c *Cache) Get(ctx context.Context, origin, destination string, mode internal.TransportMode) (d time.Duration, ok, cached bool) {
	value, found, err := c.kv.Get(ctx, routeKey(origin, destination, mode))
	if err != nil || !found {
		return 0, false, false
	}
	if value == noRoute {
		return 0, false, true
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, false
	}
	return time.Duration(seconds) * time.Second, true, true
}

// Put records the outcome of a live route lookup, including the
// negative one. Write failures are ignored: the worst case is an
// extra lookup on the next run.
func (c *Cache) Put(ctx context.Context, origin, destination string, mode internal.TransportMode, d time.Duration, ok bool) {
	value := noRoute
	if ok {
		value = strconv.Itoa(int(d / time.Second))
	}
	_ = c.kv.Put(ctx, routeKey(origin, destination, mode), value, c.ttl)
}

func routeKey(origin, destination string, mode internal.TransportMode) string {
	return fmt.Sprintf("route:%s|%s|%s", origin, destination, mode)
}
