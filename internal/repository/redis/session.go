package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/07chouthri/flowerschool-storefront/internal/domain"
	apperrors "github.com/07chouthri/flowerschool-storefront/pkg/errors"
)

const keyPrefix = "checkout:session:"

// saveIfVersionScript compares the stored session's version against the
// expected one and swaps in the new document atomically. Expected
// version 0 means the key must not exist yet.
var saveIfVersionScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current then
  local doc = cjson.decode(current)
  if tonumber(doc.version) ~= tonumber(ARGV[2]) then
    return 0
  end
elseif tonumber(ARGV[2]) ~= 0 then
  return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'EX', ARGV[3])
return 1
`)

// SessionRepository implements repository.SessionRepository using Redis.
// Sessions are stored as a single JSON document per key so every save
// replaces the whole aggregate.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a new Redis-backed session repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a session by ID from Redis.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	key := keyPrefix + sessionID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("session", sessionID)
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

// SaveIfVersion persists the session when the stored version matches.
// The write and the version check run in one Lua script so concurrent
// savers cannot interleave between them.
func (r *SessionRepository) SaveIfVersion(ctx context.Context, session *domain.Session, expectedVersion int64) (bool, error) {
	key := keyPrefix + session.ID

	next := *session
	next.Version = expectedVersion + 1
	next.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(&next)
	if err != nil {
		return false, fmt.Errorf("marshal session: %w", err)
	}

	ttlSeconds := int64(r.ttl / time.Second)
	res, err := saveIfVersionScript.Run(ctx, r.client, []string{key}, data, expectedVersion, ttlSeconds).Int64()
	if err != nil {
		return false, fmt.Errorf("redis save session: %w", err)
	}
	if res != 1 {
		return false, nil
	}

	session.Version = next.Version
	session.UpdatedAt = next.UpdatedAt
	return true, nil
}

// Delete removes a session from Redis by ID.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := keyPrefix + sessionID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}

	return nil
}
