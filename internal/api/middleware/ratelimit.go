package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/otomarket/auction-services/auctiongateway/internal/apperror"
	"github.com/otomarket/auction-services/auctiongateway/internal/config"
	"github.com/otomarket/auction-services/auctiongateway/internal/constants"
	"golang.org/x/time/rate"
)

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// BidRateLimiter throttles bid submissions per bidder with a token
// bucket. Entries idle longer than the cleanup horizon are dropped so
// the map does not grow with every bidder ever seen.
type BidRateLimiter struct {
	mu      sync.Mutex
	users   map[int64]*userLimiter
	perMin  int
	burst   int
	maxIdle time.Duration
}

func NewBidRateLimiter(cfg *config.Config) *BidRateLimiter {
	rl := &BidRateLimiter{
		users:   make(map[int64]*userLimiter),
		perMin:  cfg.Auction.BidRatePerMinute,
		burst:   cfg.Auction.BidBurst,
		maxIdle: 30 * time.Minute,
	}
	go rl.cleanup()
	return rl
}

func (rl *BidRateLimiter) limiterFor(userID int64) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.users[userID]
	if !ok {
		entry = &userLimiter{limiter: rate.NewLimiter(rate.Limit(float64(rl.perMin)/60.0), rl.burst)}
		rl.users[userID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (rl *BidRateLimiter) cleanup() {
	for {
		time.Sleep(10 * time.Minute)
		rl.mu.Lock()
		for id, entry := range rl.users {
			if time.Since(entry.lastSeen) > rl.maxIdle {
				delete(rl.users, id)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *BidRateLimiter) Limit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.limiterFor(UserID(c)).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(apperror.Response{
				Error: constants.GetErrorMessage(constants.ErrCodeRateLimited),
				Code:  constants.ErrCodeRateLimited,
			})
		}
		return c.Next()
	}
}
