package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	deckCursorPrefix = "deck_cursor:"
	deckCursorTTL    = 24 * time.Hour
)

// DeckRepo tracks how far into the candidate deck each session has swiped.
// The cursor only ever moves forward between resets; deck assembly and the
// explicit reset endpoint both put it back to zero, without touching any
// like or pass record.
type DeckRepo struct {
	client *goredis.Client
}

func NewDeckRepo(client *goredis.Client) *DeckRepo {
	return &DeckRepo{client: client}
}

func (r *DeckRepo) Advance(ctx context.Context, sid string) (int, error) {
	if r.client == nil {
		return 0, fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sid) == "" {
		return 0, fmt.Errorf("session id is required")
	}

	value, err := r.client.Incr(ctx, deckCursorKey(sid)).Result()
	if err != nil {
		return 0, fmt.Errorf("advance deck cursor: %w", err)
	}
	r.client.Expire(ctx, deckCursorKey(sid), deckCursorTTL)
	return int(value), nil
}

func (r *DeckRepo) Reset(ctx context.Context, sid string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sid) == "" {
		return fmt.Errorf("session id is required")
	}

	if err := r.client.Set(ctx, deckCursorKey(sid), 0, deckCursorTTL).Err(); err != nil {
		return fmt.Errorf("reset deck cursor: %w", err)
	}
	return nil
}

func deckCursorKey(sid string) string {
	return deckCursorPrefix + sid
}
