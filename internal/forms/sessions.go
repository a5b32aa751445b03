package forms

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/meur/harborline/internal/models"
	"github.com/meur/harborline/internal/storage"
)

// Session holds one visitor's forms and game mode selection.
type Session struct {
	ID        string
	BugReport *Controller[models.BugReport]
	Contact   *Controller[models.ContactSubmission]

	mu       sync.Mutex
	gameMode string
	selected bool
	lastSeen time.Time
}

// Form returns the session's form by name.
func (s *Session) Form(name string) (Form, bool) {
	switch name {
	case BugReportFormName:
		return s.BugReport, true
	case ContactFormName:
		return s.Contact, true
	default:
		return nil, false
	}
}

// SelectGameMode records the visitor's game mode choice.
func (s *Session) SelectGameMode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameMode = id
	s.selected = true
}

// GameMode returns the visitor's choice, if any.
func (s *Session) GameMode() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameMode, s.selected
}

// Sessions keeps visitor sessions in a bounded LRU cache. A session idle for
// longer than the TTL is replaced on its next Open. No background goroutine is started.
type Sessions struct {
	client *storage.Client
	opts   []Option
	clock  Clock
	ttl    time.Duration

	mu    sync.Mutex
	cache *lru.Cache[string, *Session]
}

// NewSessions creates a session registry holding at most capacity sessions.
// The clock from opts drives expiry as well as the forms.
func NewSessions(client *storage.Client, capacity int, ttl time.Duration, opts ...Option) *Sessions {
	if capacity < 1 {
		capacity = 1
	}
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[string, *Session](capacity)
	return &Sessions{
		client: client,
		opts:   opts,
		clock:  newOptions(opts).clock,
		ttl:    ttl,
		cache:  cache,
	}
}

// Open returns the session for id, creating it when missing or expired.
// Every call extends the session's lifetime.
func (s *Sessions) Open(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	sess, ok := s.cache.Get(id)
	if ok && s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl {
		s.cache.Remove(id)
		ok = false
	}
	if !ok {
		sess = &Session{
			ID:        id,
			BugReport: NewController(BugReportForm(), s.client, s.opts...),
			Contact:   NewController(ContactForm(), s.client, s.opts...),
		}
		s.cache.Add(id, sess)
	}
	sess.lastSeen = now
	return sess
}

// Len returns the number of cached sessions, including idle ones not yet replaced.
func (s *Sessions) Len() int {
	return s.cache.Len()
}
