// Package sessions stores the mutable per-token session context. Two
// interchangeable backends implement the same contract: an in-process
// guarded map and a Redis cache. The backend is chosen once at startup and
// injected into the session service; sessions never migrate between
// backends mid-run.
package sessions

import (
	"context"
	"time"

	"github.com/datamind-io/authcore/internal/server/models"
)

// Store is the session keyspace contract.
//
// Both backends enforce the record's absolute expiry: the Redis backend via
// the key TTL, the in-memory backend by comparing the stored ExpiresAt on
// every read, so an in-memory session is never readable past its token's
// own expiry.
type Store interface {
	// Put upserts the context under the token with the given time-to-live.
	Put(ctx context.Context, token string, sc *models.SessionContext, ttl time.Duration) error

	// Get returns the stored context, or common.ErrSessionNotFound if the
	// token has no session or the session has expired.
	Get(ctx context.Context, token string) (*models.SessionContext, error)

	// Mutate applies fn to the stored context as a single logical
	// read-modify-write. If fn returns an error nothing is written. The
	// in-memory backend serializes mutations; the Redis backend is
	// last-writer-wins on the full record, acceptable for the expected
	// low-frequency, non-concurrent per-token write pattern.
	Mutate(ctx context.Context, token string, fn func(*models.SessionContext) error) error

	// Delete removes the session. Absence is not an error.
	Delete(ctx context.Context, token string) error
}
