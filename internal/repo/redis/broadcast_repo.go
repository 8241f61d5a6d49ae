package redis

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"
)

const logoutChannel = "auth:logout"

// BroadcastRepo relays forced-logout signals over redis pub/sub so every API
// instance can drop the user's live connections, not just the one that
// handled the logout request.
type BroadcastRepo struct {
	client *goredis.Client
}

func NewBroadcastRepo(client *goredis.Client) *BroadcastRepo {
	return &BroadcastRepo{client: client}
}

func (r *BroadcastRepo) PublishLogout(ctx context.Context, userID string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}

	if err := r.client.Publish(ctx, logoutChannel, userID).Err(); err != nil {
		return fmt.Errorf("publish logout: %w", err)
	}
	return nil
}

// SubscribeLogout delivers the user IDs of logout events until ctx is done.
// The returned channel is closed when the subscription ends.
func (r *BroadcastRepo) SubscribeLogout(ctx context.Context) (<-chan string, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	sub := r.client.Subscribe(ctx, logoutChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe logout channel: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
