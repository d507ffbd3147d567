package game

import (
	"sync"
	"time"
)

// Session is the ephemeral per-room state: the undealt number pool and
// the handle of the active draw loop. It is reconstructed on round
// start, never reloaded from the store.
type Session struct {
	roomID uint

	mu     sync.Mutex
	pool   []int
	live   bool
	cancel chan struct{}
	done   chan struct{}
}

// SetPoolIfEmpty installs pool unless the session already holds one.
// Returns true if the pool was installed.
func (s *Session) SetPoolIfEmpty(pool []int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pool) > 0 {
		return false
	}
	s.pool = pool
	return true
}

// HasPool reports whether undealt numbers remain.
func (s *Session) HasPool() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pool) > 0
}

// Live reports whether a draw loop is currently running.
func (s *Session) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// StartDrawLoop begins popping one number per interval. tick is called
// with each popped number; returning false stops the loop (the caller
// handles its own failure). The loop also stops when the pool runs
// out. Only one loop may run per session: if one is live this is a
// no-op and returns false.
func (s *Session) StartDrawLoop(interval time.Duration, tick func(n int) bool) bool {
	s.mu.Lock()
	if s.live {
		s.mu.Unlock()
		return false
	}
	s.live = true
	s.cancel = make(chan struct{})
	s.done = make(chan struct{})
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer func() {
			s.mu.Lock()
			s.live = false
			s.cancel = nil
			s.mu.Unlock()
			close(done)
		}()

		for {
			select {
			case <-cancel:
				return
			case <-ticker.C:
				s.mu.Lock()
				if len(s.pool) == 0 {
					s.mu.Unlock()
					return
				}
				n := s.pool[len(s.pool)-1]
				s.pool = s.pool[:len(s.pool)-1]
				s.mu.Unlock()

				if !tick(n) {
					return
				}
			}
		}
	}()
	return true
}

// StopDrawLoop cancels the draw loop and waits for it to exit, so a
// tick can never fire after the caller has cleared persisted draw
// state. Safe to call when no loop is running.
func (s *Session) StopDrawLoop() {
	s.mu.Lock()
	if !s.live || s.cancel == nil {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	close(cancel)
	<-done
}

// ClearPool drops any undealt numbers.
func (s *Session) ClearPool() {
	s.mu.Lock()
	s.pool = nil
	s.mu.Unlock()
}

// Registry maps room ids to live sessions. Its lifecycle is the server
// process; it is handed to the coordinator at construction.
type Registry struct {
	mu       sync.Mutex
	sessions map[uint]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uint]*Session)}
}

// Ensure returns the session for roomID, creating an empty one if
// absent. Idempotent.
func (r *Registry) Ensure(roomID uint) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[roomID]
	if !ok {
		s = &Session{roomID: roomID}
		r.sessions[roomID] = s
	}
	return s
}

func (r *Registry) Get(roomID uint) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[roomID]
	return s, ok
}

// Remove stops the room's draw loop and discards its session.
func (r *Registry) Remove(roomID uint) {
	r.mu.Lock()
	s, ok := r.sessions[roomID]
	delete(r.sessions, roomID)
	r.mu.Unlock()

	if ok {
		s.StopDrawLoop()
	}
}

// Shutdown cancels every outstanding draw loop. Called on server exit.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[uint]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.StopDrawLoop()
	}
}
