package ratelimiter

import (
	"sync"
	"time"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// FixedWindowRateLimiter counts submissions per client within a fixed
// window. It guards the write endpoints only; reads are never limited.
type FixedWindowRateLimiter struct {
	sync.RWMutex
	clients map[string]int
	limit   int
	window  time.Duration
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	rl := &FixedWindowRateLimiter{
		clients: make(map[string]int),
		limit:   limit,
		window:  window,
	}
	go rl.cleanup()
	return rl
}

func (rl *FixedWindowRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	for range ticker.C {
		rl.Lock()
		rl.clients = make(map[string]int)
		rl.Unlock()
	}
}

// Allow reports whether the client may proceed, and how long to wait when
// it may not.
func (rl *FixedWindowRateLimiter) Allow(client string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	if rl.clients[client] < rl.limit {
		rl.clients[client]++
		return true, 0
	}
	return false, rl.window
}
