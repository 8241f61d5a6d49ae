package rate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	loginBurstWindow  = time.Minute
	loginSustainedWin = 15 * time.Minute
)

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
}

// LoginLimiter throttles password attempts per account over two windows: a
// short burst window and a longer sustained one. Both windows count every
// attempt; a blocked caller learns how long to wait, not which window tripped.
type LoginLimiter struct {
	store        WindowStore
	perBurst     int
	perSustained int
}

func NewLoginLimiter(store WindowStore, perBurst, perSustained int) *LoginLimiter {
	if perBurst < 0 {
		perBurst = 0
	}
	if perSustained < 0 {
		perSustained = 0
	}

	return &LoginLimiter{
		store:        store,
		perBurst:     perBurst,
		perSustained: perSustained,
	}
}

// AllowAttempt counts one login attempt for the account and reports whether it
// may proceed. When blocked, the returned value is the number of seconds until
// the tightest window frees up.
func (l *LoginLimiter) AllowAttempt(ctx context.Context, account string) (int64, bool, error) {
	account = normalizeAccount(account)
	if account == "" {
		return 0, false, fmt.Errorf("account key is required")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)

	if l.perBurst > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, burstKey(account), loginBurstWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.perBurst) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if l.perSustained > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, sustainedKey(account), loginSustainedWin)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.perSustained) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if retryAfterSec > 0 {
		return retryAfterSec, false, nil
	}

	return 0, true, nil
}

// RetryAfter reports the current wait without counting an attempt.
func (l *LoginLimiter) RetryAfter(ctx context.Context, account string) (int64, error) {
	account = normalizeAccount(account)
	if account == "" {
		return 0, fmt.Errorf("account key is required")
	}
	if l.store == nil {
		return 0, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)

	if l.perBurst > 0 {
		count, ttl, err := l.store.WindowState(ctx, burstKey(account))
		if err != nil {
			return 0, err
		}
		if count >= int64(l.perBurst) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if l.perSustained > 0 {
		count, ttl, err := l.store.WindowState(ctx, sustainedKey(account))
		if err != nil {
			return 0, err
		}
		if count >= int64(l.perSustained) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	return retryAfterSec, nil
}

func normalizeAccount(account string) string {
	return strings.ToLower(strings.TrimSpace(account))
}

func burstKey(account string) string {
	return "rate:login:1m:" + account
}

func sustainedKey(account string) string {
	return "rate:login:15m:" + account
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
