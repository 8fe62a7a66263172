package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/datamind-io/authcore/internal/common"
	"github.com/datamind-io/authcore/internal/server/models"
)

const keyPrefix = "session:"

// RedisStore keeps session contexts as JSON blobs under "session:<token>"
// with a key TTL matching the token lifetime. Expiry is enforced by Redis
// itself; an expired key simply reads as absent.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

func (s *RedisStore) Put(ctx context.Context, token string, sc *models.SessionContext, ttl time.Duration) error {
	record := sc.Clone()
	record.ExpiresAt = s.now().Add(ttl)

	b, err := json.Marshal(record)
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, keyPrefix+token, b, ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*models.SessionContext, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: redis get: %v", common.ErrStorageUnavailable, err)
	}

	record := &models.SessionContext{}
	if err := json.Unmarshal([]byte(val), record); err != nil {
		return nil, fmt.Errorf("%w: corrupt session record: %v", common.ErrStorageUnavailable, err)
	}
	return record, nil
}

// Mutate fetches the record, applies fn, and writes the full record back
// with the remaining TTL. Concurrent mutations on the same token race under
// last-writer-wins; see the Store contract.
func (s *RedisStore) Mutate(ctx context.Context, token string, fn func(*models.SessionContext) error) error {
	record, err := s.Get(ctx, token)
	if err != nil {
		return err
	}

	if err := fn(record); err != nil {
		return err
	}

	remaining := record.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return common.ErrSessionNotFound
	}

	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, keyPrefix+token, b, remaining).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("%w: redis del: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}
