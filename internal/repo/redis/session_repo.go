package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/David-1512/LearnHub/internal/domain/enums"
	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
)

const (
	sessionPrefix      = "sessions:"
	userSessionsPrefix = "user_sessions:"
)

// SessionRepo keeps sessions as redis hashes whose expiry IS the idle
// timeout: Touch pushes the expiry forward, and a session nobody touched
// for the idle window simply disappears.
type SessionRepo struct {
	client *goredis.Client
}

func NewSessionRepo(client *goredis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

func (r *SessionRepo) Create(ctx context.Context, session authsvc.SessionRecord, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(session.SID) == "" || strings.TrimSpace(session.UserID) == "" {
		return authsvc.ErrInvalidInput
	}
	if ttl <= 0 {
		ttl = authsvc.DefaultIdleTTL
	}

	fields := map[string]interface{}{
		"user_id":   session.UserID,
		"roles":     strings.Join(enums.RolesToStrings(session.Roles), ","),
		"issued_at": session.IssuedAt.Unix(),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, sessionKey(session.SID), fields)
	pipe.Expire(ctx, sessionKey(session.SID), ttl)
	pipe.SAdd(ctx, userSessionsKey(session.UserID), session.SID)
	pipe.Expire(ctx, userSessionsKey(session.UserID), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create redis session: %w", err)
	}

	return nil
}

func (r *SessionRepo) Get(ctx context.Context, sid string) (authsvc.SessionRecord, error) {
	if r.client == nil {
		return authsvc.SessionRecord{}, fmt.Errorf("redis client is nil")
	}

	values, err := r.client.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return authsvc.SessionRecord{}, fmt.Errorf("get session hash: %w", err)
	}
	if len(values) == 0 {
		return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
	}

	session, err := parseSessionRecord(values)
	if err != nil {
		return authsvc.SessionRecord{}, err
	}
	session.SID = sid
	return session, nil
}

// Touch slides the idle expiry of the session and of the user's session set.
func (r *SessionRepo) Touch(ctx context.Context, sid string, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if ttl <= 0 {
		ttl = authsvc.DefaultIdleTTL
	}

	ok, err := r.client.Expire(ctx, sessionKey(sid), ttl).Result()
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if !ok {
		return authsvc.ErrSessionNotFound
	}

	userID, err := r.client.HGet(ctx, sessionKey(sid), "user_id").Result()
	if err == nil && userID != "" {
		r.client.Expire(ctx, userSessionsKey(userID), ttl)
	}

	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, sid string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sid) == "" {
		return nil
	}

	userID, err := r.client.HGet(ctx, sessionKey(sid), "user_id").Result()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("load session for delete: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(sid))
	if userID != "" {
		pipe.SRem(ctx, userSessionsKey(userID), sid)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (r *SessionRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(userID) == "" {
		return authsvc.ErrInvalidInput
	}

	sids, err := r.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	for _, sid := range sids {
		if err := r.Delete(ctx, sid); err != nil {
			return err
		}
	}

	if err := r.client.Del(ctx, userSessionsKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete user sessions key: %w", err)
	}

	return nil
}

func parseSessionRecord(values map[string]string) (authsvc.SessionRecord, error) {
	userID := strings.TrimSpace(values["user_id"])
	if userID == "" {
		return authsvc.SessionRecord{}, authsvc.ErrUnauthorized
	}

	issuedUnix, err := strconv.ParseInt(values["issued_at"], 10, 64)
	if err != nil {
		return authsvc.SessionRecord{}, authsvc.ErrUnauthorized
	}

	var roles []string
	if raw := strings.TrimSpace(values["roles"]); raw != "" {
		roles = strings.Split(raw, ",")
	}

	return authsvc.SessionRecord{
		UserID:   userID,
		Roles:    enums.RolesFromStrings(roles),
		IssuedAt: time.Unix(issuedUnix, 0).UTC(),
	}, nil
}

func sessionKey(sid string) string {
	return sessionPrefix + sid
}

func userSessionsKey(userID string) string {
	return userSessionsPrefix + userID
}
