package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. A background janitor sweeps
// expired entries so long-lived processes do not accumulate dead sessions;
// Get additionally checks expiry so a session never outlives its TTL even
// between sweeps.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	now  func() time.Time
	done chan struct{}
	once sync.Once
}

// DefaultSweepInterval is how often the janitor scans for expired sessions.
const DefaultSweepInterval = 24 * time.Hour

// NewMemoryStore starts a store whose janitor runs every sweepInterval.
// Pass 0 to use DefaultSweepInterval. Call Close to stop the janitor.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	s := &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go s.janitor(sweepInterval)
	return s
}

func (s *MemoryStore) Create(_ context.Context, userID int64, username string, ttl time.Duration) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        newID(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	out := *sess
	return &out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || sess.Expired(s.now()) {
		return nil, ErrNotFound
	}

	out := *sess
	return &out, nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close stops the janitor goroutine. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	now := s.now()
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
}
