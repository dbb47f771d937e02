package session

import "sync"

// Store maps session identifiers to sessions. It is constructed once by the
// composition root and shared by all request handlers; the map is guarded by
// its own lock and each session serializes its own mutations.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for id, creating an empty one if the
// identifier has not been seen before. It never fails.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s := newSession(id)
	st.sessions[id] = s
	return s
}

// Get returns the session for id if it exists. Unlike GetOrCreate it has no
// side effects, so read-only paths do not create sessions.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes the session for id and reports whether one existed.
// Deleting an absent session is a no-op.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
