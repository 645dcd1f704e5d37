package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor is one client's token bucket with its last use time
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Registry is a thread-safe set of per-client rate limiters. Clients idle
// for longer than the TTL are dropped by a background janitor.
type Registry struct {
	visitors map[string]*visitor
	mutex    sync.Mutex

	limit rate.Limit
	burst int
	ttl   time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRegistry creates a registry allowing perMinute requests per client with
// the given burst. perMinute <= 0 disables limiting.
func NewRegistry(perMinute, burst int, ttl time.Duration) *Registry {
	if burst <= 0 {
		burst = perMinute
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}

	r := &Registry{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	// Sweep idle clients every TTL
	go r.cleanupExpired(ttl)

	return r
}

// Enabled reports whether the registry limits anything
func (r *Registry) Enabled() bool {
	return r.limit != rate.Inf
}

// Allow reports whether the client identified by key may make a request now
func (r *Registry) Allow(key string) bool {
	if !r.Enabled() {
		return true
	}
	return r.limiterFor(key, time.Now()).Allow()
}

func (r *Registry) limiterFor(key string, now time.Time) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	v, exists := r.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// cleanupExpired removes idle clients periodically until Close is called
func (r *Registry) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			r.evictIdle(now)
		}
	}
}

// evictIdle drops clients not seen within the TTL before now
func (r *Registry) evictIdle(now time.Time) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for key, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.ttl {
			delete(r.visitors, key)
		}
	}
}

// Size returns the number of tracked clients (for debugging/monitoring)
func (r *Registry) Size() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.visitors)
}

// Clear forgets every client
func (r *Registry) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.visitors = make(map[string]*visitor)
}

// Close stops the janitor goroutine. It is safe to call more than once.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}
