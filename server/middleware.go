package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of http requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests.",
		},
		[]string{"method", "path"},
	)
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// telemetry records Prometheus metrics for every request.
func telemetry(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(startTime)
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration.Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, http.StatusText(rec.status)).Inc()

		slog.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", duration,
		)
	})
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter holds one token bucket per client IP. Buckets refill a
// whole window's worth of requests over the window and allow the full
// budget in a burst, idle buckets are pruned on a schedule.
type rateLimiter struct {
	mu     sync.Mutex
	ips    map[string]*ipLimiter
	window time.Duration
	max    int
}

func newRateLimiter(window time.Duration, max int) *rateLimiter {
	return &rateLimiter{
		ips:    map[string]*ipLimiter{},
		window: window,
		max:    max,
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.ips[ip]
	if !ok {
		l = &ipLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.max)/rl.window.Seconds()), rl.max),
		}
		rl.ips[ip] = l
	}
	l.lastSeen = time.Now()
	return l.limiter.Allow()
}

func (rl *rateLimiter) prune(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, l := range rl.ips {
		if time.Since(l.lastSeen) > maxIdle {
			delete(rl.ips, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			slog.Warn(fmt.Sprintf("rate limit exceeded for %s on %s", clientIP(r), r.URL.Path))
			respondFailure(w, http.StatusTooManyRequests, "Too many requests from this IP, please try again later.", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}
