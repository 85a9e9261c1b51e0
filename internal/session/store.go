package session

import (
	"container/list"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/DeafMist/news-dashboard/internal/dashboard"
	"github.com/DeafMist/news-dashboard/internal/metrics"
)

// ErrClosed is returned by Do once the session has been evicted.
var ErrClosed = errors.New("session closed")

// Session is one browser's interactive dashboard. Do serializes access so
// each event runs to completion before the next one starts.
type Session struct {
	ID string

	mu     sync.Mutex
	dash   *dashboard.Interactive
	closed atomic.Bool
}

// Do runs fn with exclusive access to the dashboard.
func (s *Session) Do(fn func(d *dashboard.Interactive) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return ErrClosed
	}
	return fn(s.dash)
}

type item struct {
	key  string
	sess *Session
	ts   time.Time
}

// Store keeps a bounded set of sessions, dropping the least recently used
// ones past capacity and any idle longer than ttl.
type Store struct {
	mu       sync.Mutex
	items    map[string]*list.Element
	order    *list.List // front is least recently used
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store with the provided capacity and ttl.
func NewStore(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the live session for id and marks it as used.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[id]
	if !ok {
		return nil, false
	}
	it := el.Value.(*item)
	if now.Sub(it.ts) > s.ttl {
		s.remove(el)
		s.compact(now)
		return nil, false
	}

	it.ts = now
	s.order.MoveToBack(el)
	s.compact(now)
	return it.sess, true
}

// Create stores a new session for dash under a fresh id.
func (s *Store) Create(dash *dashboard.Interactive) *Session {
	sess := &Session{ID: uuid.NewString(), dash: dash}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[sess.ID] = s.order.PushBack(&item{key: sess.ID, sess: sess, ts: now})
	s.compact(now)
	return sess
}

// Len returns the number of sessions held, expired ones included until the
// next compaction.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) compact(now time.Time) {
	cutoff := now.Add(-s.ttl)

	for el := s.order.Front(); el != nil; el = s.order.Front() {
		if len(s.items) <= s.capacity && !el.Value.(*item).ts.Before(cutoff) {
			break
		}
		s.remove(el)
	}
	metrics.ActiveSessions.Set(float64(len(s.items)))
}

func (s *Store) remove(el *list.Element) {
	it := el.Value.(*item)
	it.sess.closed.Store(true)
	delete(s.items, it.key)
	s.order.Remove(el)
}
