package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyLimiter is a fixed-window counter shared by every instance pointing at the
// same Valkey database.
type ValkeyLimiter struct {
	client valkey.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewValkeyLimiter allows limit requests per key in each window.
func NewValkeyLimiter(client valkey.Client, prefix string, limit int, window time.Duration) *ValkeyLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	if window <= 0 {
		window = time.Minute
	}
	return &ValkeyLimiter{
		client: client,
		prefix: strings.TrimRight(prefix, ":"),
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Allow increments the caller's counter for the current window. The increment and the
// expiry run in one MULTI/EXEC so a counter never outlives its window.
func (l *ValkeyLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := l.now()
	windowKey := l.windowKey(key, now)
	resps := l.client.DoMulti(ctx,
		l.client.B().Multi().Build(),
		l.client.B().Incr().Key(windowKey).Build(),
		l.client.B().Expireat().Key(windowKey).Timestamp(l.windowExpiry(now).Unix()).Build(),
		l.client.B().Exec().Build(),
	)
	for _, resp := range resps[:len(resps)-1] {
		if err := resp.Error(); err != nil {
			return false, fmt.Errorf("queue rate counter: %w", err)
		}
	}
	results, err := resps[len(resps)-1].ToArray()
	if err != nil {
		return false, fmt.Errorf("exec rate counter: %w", err)
	}
	if len(results) == 0 {
		return false, fmt.Errorf("exec rate counter: transaction aborted")
	}
	count, err := results[0].AsInt64()
	if err != nil {
		return false, fmt.Errorf("incr rate counter: %w", err)
	}
	return count <= l.limit, nil
}

// Close releases the underlying client.
func (l *ValkeyLimiter) Close() {
	l.client.Close()
}

func (l *ValkeyLimiter) windowKey(key string, now time.Time) string {
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, l.bucket(now))
}

// windowExpiry is one second past the end of the window containing now.
func (l *ValkeyLimiter) windowExpiry(now time.Time) time.Time {
	end := (l.bucket(now) + 1) * int64(l.window)
	return time.Unix(0, end).Add(time.Second)
}

func (l *ValkeyLimiter) bucket(now time.Time) int64 {
	return now.UnixNano() / int64(l.window)
}

// ClientOptions parses either a plain host:port or a valkey:// / redis:// URL.
func ClientOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
