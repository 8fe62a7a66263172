package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datamind-io/authcore/internal/common"
	"github.com/datamind-io/authcore/internal/server/models"
)

func testContext(userID string) *models.SessionContext {
	return &models.SessionContext{
		UserID:    userID,
		Email:     userID + "@x.com",
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tok", testContext("u1"), time.Minute))

	got, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "u1@x.com", got.Email)
	assert.False(t, got.ExpiresAt.IsZero())
}

func TestMemoryStore_GetMissing(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, common.ErrSessionNotFound), "got %v", err)
}

func TestMemoryStore_ExpiredRecordIsAbsent(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Put(ctx, "tok", testContext("u1"), time.Minute))

	// advance past the TTL
	s.now = func() time.Time { return now.Add(2 * time.Minute) }

	_, err := s.Get(ctx, "tok")
	assert.True(t, errors.Is(err, common.ErrSessionNotFound), "got %v", err)

	err = s.Mutate(ctx, "tok", func(sc *models.SessionContext) error { return nil })
	assert.True(t, errors.Is(err, common.ErrSessionNotFound), "got %v", err)
}

func TestMemoryStore_Mutate(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tok", testContext("u1"), time.Minute))

	err := s.Mutate(ctx, "tok", func(sc *models.SessionContext) error {
		sc.LastQuery = "select 1"
		return nil
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "select 1", got.LastQuery)
}

func TestMemoryStore_MutateErrorLeavesRecordUntouched(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	sc := testContext("u1")
	sc.LastQuery = "original"
	require.NoError(t, s.Put(ctx, "tok", sc, time.Minute))

	boom := errors.New("boom")
	err := s.Mutate(ctx, "tok", func(sc *models.SessionContext) error {
		sc.LastQuery = "clobbered"
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "original", got.LastQuery)
}

func TestMemoryStore_DeleteIdempotent(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tok", testContext("u1"), time.Minute))
	require.NoError(t, s.Delete(ctx, "tok"))
	require.NoError(t, s.Delete(ctx, "tok"))

	_, err := s.Get(ctx, "tok")
	assert.True(t, errors.Is(err, common.ErrSessionNotFound), "got %v", err)
}

func TestMemoryStore_ConcurrentMutationsDoNotLoseUpdates(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tok", testContext("u1"), time.Minute))

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = s.Mutate(ctx, "tok", func(sc *models.SessionContext) error {
				sc.LastQuery += "x"
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Len(t, got.LastQuery, n, "every mutation must be applied exactly once")
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	sc := testContext("u1")
	sc.ActiveDB = &models.DataSource{Type: "postgres", Host: "h"}
	require.NoError(t, s.Put(ctx, "tok", sc, time.Minute))

	got, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	got.ActiveDB.Host = "mutated"

	again, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "h", again.ActiveDB.Host)
}
