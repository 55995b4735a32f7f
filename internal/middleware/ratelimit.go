package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/coachtrack/internal/httperr"
)

type RateLimiterConfig struct {
	GeneralRate     rate.Limit
	GeneralBurst    int
	InviteRate      rate.Limit
	InviteBurst     int
	CleanupInterval time.Duration
}

// PerMinute builds a config from per-minute budgets; burst equals the budget.
func PerMinute(general, invite int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(general) / 60.0),
		GeneralBurst:    general,
		InviteRate:      rate.Limit(float64(invite) / 60.0),
		InviteBurst:     invite,
		CleanupInterval: 5 * time.Minute,
	}
}

type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

type limiterSet struct {
	mu       sync.Mutex
	r        rate.Limit
	burst    int
	limiters map[uint]*userLimiter
}

func newLimiterSet(r rate.Limit, burst int) *limiterSet {
	return &limiterSet{r: r, burst: burst, limiters: make(map[uint]*userLimiter)}
}

func (s *limiterSet) get(userID uint) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	ul, ok := s.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(s.r, s.burst)}
		s.limiters[userID] = ul
	}
	ul.lastAccess = time.Now()
	return ul.limiter
}

func (s *limiterSet) evictOlderThan(ttl time.Duration) {
	now := time.Now()
	s.mu.Lock()
	for id, ul := range s.limiters {
		if now.Sub(ul.lastAccess) > ttl {
			delete(s.limiters, id)
		}
	}
	s.mu.Unlock()
}

func (s *limiterSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimiter keeps token buckets per authenticated user: one for the API as
// a whole and a stricter one for issuing invitations.
type RateLimiter struct {
	config  RateLimiterConfig
	log     *zap.Logger
	general *limiterSet
	invite  *limiterSet
	stopCh  chan struct{}
	once    sync.Once
}

func NewRateLimiter(config RateLimiterConfig, log *zap.Logger) *RateLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	rl := &RateLimiter{
		config:  config,
		log:     log,
		general: newLimiterSet(config.GeneralRate, config.GeneralBurst),
		invite:  newLimiterSet(config.InviteRate, config.InviteBurst),
		stopCh:  make(chan struct{}),
	}

	if config.CleanupInterval > 0 {
		go rl.cleanupLoop()
	}

	return rl
}

func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// General must run after AuthMiddleware.
func (rl *RateLimiter) General() gin.HandlerFunc {
	return rl.middleware(rl.general, rl.config.GeneralRate, "general")
}

func (rl *RateLimiter) Invite() gin.HandlerFunc {
	return rl.middleware(rl.invite, rl.config.InviteRate, "invite")
}

func (rl *RateLimiter) middleware(set *limiterSet, r rate.Limit, kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.Next()
			return
		}

		if !set.get(userID).Allow() {
			rl.log.Warn("rate limit exceeded",
				zap.Uint("user_id", userID),
				zap.String("limit_type", kind),
			)
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(r)))
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ttl := rl.config.CleanupInterval * 2
			rl.general.evictOlderThan(ttl)
			rl.invite.evictOlderThan(ttl)
		case <-rl.stopCh:
			return
		}
	}
}

func retryAfterSeconds(r rate.Limit) int {
	if r <= 0 {
		return 60
	}
	sec := int(math.Ceil(1.0 / float64(r)))
	if sec < 1 {
		sec = 1
	}
	return sec
}
