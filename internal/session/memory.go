package session

import (
	"context"
	"sync"
	"time"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
)

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// MemoryStore 在进程内保存会话，进程重启后所有会话失效
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, sess *domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// ttl 为 0 时不过期，与 redis 的 SET 行为一致
	entry := memoryEntry{session: *sess}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.sessions[sess.ID] = entry
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}

	sess := entry.session
	return &sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
