package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"foodgram/internal/handler/http/respond"
)

var rateLimitRejected = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "foodgram_rate_limit_rejected_total",
		Help: "Requests rejected by a per-IP rate limiter",
	},
	[]string{"limiter"},
)

// visitor is the token bucket of one client IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter applies a token bucket per client IP.
type IPRateLimiter struct {
	name      string
	limit     rate.Limit
	burst     int
	extractor IPExtractor
	idleTTL   time.Duration
	now       func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastClean time.Time
}

// NewIPRateLimiter allows rps requests per second per IP with bursts of burst.
// name labels the rejection metric ("auth", ...).
func NewIPRateLimiter(name string, rps float64, burst int, extractor IPExtractor) *IPRateLimiter {
	return &IPRateLimiter{
		name:      name,
		limit:     rate.Limit(rps),
		burst:     burst,
		extractor: extractor,
		idleTTL:   10 * time.Minute,
		now:       time.Now,
		visitors:  make(map[string]*visitor),
		lastClean: time.Now(),
	}
}

// Middleware rejects requests over the limit with 429 and Retry-After.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := l.extractor.ExtractIP(r)
		if err != nil {
			// IP が取れない場合は制限しない
			slog.Warn("rate limiter could not resolve client ip",
				slog.String("remote_addr", r.RemoteAddr),
				slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}

		ok, retryAfter := l.allow(ip)
		if !ok {
			rateLimitRejected.WithLabelValues(l.name).Inc()
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			respond.Detail(w, http.StatusTooManyRequests, "Request was throttled.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allow takes a token for ip. When none is left it returns the whole
// seconds until the next token.
func (l *IPRateLimiter) allow(ip string) (bool, int) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.cleanupLocked(now)

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	res := v.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, 1
	}
	delay := res.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	res.CancelAt(now)
	return false, int(math.Ceil(delay.Seconds()))
}

// cleanupLocked drops idle visitors at most once per idleTTL. Caller holds l.mu.
func (l *IPRateLimiter) cleanupLocked(now time.Time) {
	if now.Sub(l.lastClean) < l.idleTTL {
		return
	}
	l.lastClean = now
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idleTTL {
			delete(l.visitors, ip)
		}
	}
}

// Len returns the number of tracked IPs.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
