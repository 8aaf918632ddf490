package auth

import (
	"sync"
	"time"
)

// LoginLimiter throttles failed login attempts, keyed by client IP plus
// username, over a sliding window. Hitting the limit locks the pair out for
// a fixed duration; a successful login clears its record.
type LoginLimiter struct {
	mu      sync.Mutex
	records map[string]*loginRecord

	maxAttempts int
	window      time.Duration
	lockout     time.Duration

	stopJanitor chan struct{}
}

type loginRecord struct {
	failures    int
	windowStart time.Time
	lockedUntil time.Time
}

// LoginLimiterConfig configures the login limiter. Zero values fall back to
// the defaults.
type LoginLimiterConfig struct {
	MaxAttempts     int
	Window          time.Duration
	Lockout         time.Duration
	JanitorInterval time.Duration
}

// DefaultLoginLimiterConfig returns the production limits: five failures in
// fifteen minutes locks the IP+username pair out for thirty minutes.
func DefaultLoginLimiterConfig() LoginLimiterConfig {
	return LoginLimiterConfig{
		MaxAttempts:     5,
		Window:          15 * time.Minute,
		Lockout:         30 * time.Minute,
		JanitorInterval: 5 * time.Minute,
	}
}

// NewLoginLimiter creates a login limiter and starts its cleanup goroutine.
// Call Stop when the limiter is no longer needed.
func NewLoginLimiter(cfg LoginLimiterConfig) *LoginLimiter {
	defaults := DefaultLoginLimiterConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaults.MaxAttempts
	}
	if cfg.Window <= 0 {
		cfg.Window = defaults.Window
	}
	if cfg.Lockout <= 0 {
		cfg.Lockout = defaults.Lockout
	}
	if cfg.JanitorInterval <= 0 {
		cfg.JanitorInterval = defaults.JanitorInterval
	}

	l := &LoginLimiter{
		records:     make(map[string]*loginRecord),
		maxAttempts: cfg.MaxAttempts,
		window:      cfg.Window,
		lockout:     cfg.Lockout,
		stopJanitor: make(chan struct{}),
	}

	go l.janitor(cfg.JanitorInterval)

	return l
}

// Stop terminates the cleanup goroutine.
func (l *LoginLimiter) Stop() {
	close(l.stopJanitor)
}

func limiterKey(ip, username string) string {
	return ip + ":" + username
}

// Allow reports whether a login attempt for the IP+username pair may
// proceed. When it may not, retryAfter is the remaining lockout.
func (l *LoginLimiter) Allow(ip, username string) (allowed bool, retryAfter time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.records[limiterKey(ip, username)]
	if !ok {
		return true, 0
	}

	if now.Before(record.lockedUntil) {
		return false, record.lockedUntil.Sub(now)
	}

	// An expired window resets the count on the next failure
	if now.Sub(record.windowStart) > l.window {
		return true, 0
	}

	if record.failures < l.maxAttempts {
		return true, 0
	}

	return false, l.lockout
}

// RecordFailure registers a failed attempt. Reaching the limit starts the
// lockout.
func (l *LoginLimiter) RecordFailure(ip, username string) {
	now := time.Now()
	key := limiterKey(ip, username)

	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.records[key]
	if !ok || now.Sub(record.windowStart) > l.window {
		record = &loginRecord{windowStart: now}
		l.records[key] = record
	}

	record.failures++
	if record.failures >= l.maxAttempts {
		record.lockedUntil = now.Add(l.lockout)
	}
}

// RecordSuccess clears the failure record after a successful login.
func (l *LoginLimiter) RecordSuccess(ip, username string) {
	l.mu.Lock()
	delete(l.records, limiterKey(ip, username))
	l.mu.Unlock()
}

func (l *LoginLimiter) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.expireRecords()
		case <-l.stopJanitor:
			return
		}
	}
}

func (l *LoginLimiter) expireRecords() {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, record := range l.records {
		windowOver := now.Sub(record.windowStart) > l.window
		lockoutOver := now.After(record.lockedUntil)
		if windowOver && lockoutOver {
			delete(l.records, key)
		}
	}
}
