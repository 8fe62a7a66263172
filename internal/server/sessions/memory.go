package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/datamind-io/authcore/internal/common"
	"github.com/datamind-io/authcore/internal/server/models"
)

// MemoryStore is a thread-safe in-memory Store. Sessions are lost on
// restart. There is no background sweep; expired records are treated as
// absent on access and dropped lazily.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]*models.SessionContext
	now  func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*models.SessionContext),
		now:  time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, token string, sc *models.SessionContext, ttl time.Duration) error {
	record := sc.Clone()
	record.ExpiresAt = s.now().Add(ttl)

	s.mu.Lock()
	s.data[token] = record
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*models.SessionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.lookup(token)
	if err != nil {
		return nil, err
	}
	return record.Clone(), nil
}

func (s *MemoryStore) Mutate(_ context.Context, token string, fn func(*models.SessionContext) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.lookup(token)
	if err != nil {
		return err
	}

	// fn works on a copy; a failed mutation leaves the stored record untouched
	next := record.Clone()
	if err := fn(next); err != nil {
		return err
	}

	s.data[token] = next
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.data, token)
	s.mu.Unlock()
	return nil
}

// lookup must be called with the store lock held.
func (s *MemoryStore) lookup(token string) (*models.SessionContext, error) {
	record, ok := s.data[token]
	if !ok {
		return nil, common.ErrSessionNotFound
	}
	if s.now().After(record.ExpiresAt) {
		delete(s.data, token)
		return nil, common.ErrSessionNotFound
	}
	return record, nil
}
