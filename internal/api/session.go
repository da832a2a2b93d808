package api

import "sync"

// SessionState caches whether the opaque backend session cookie is believed
// valid. The client never sees the cookie value itself; it only tracks the
// outcome of probes, logins, logouts, and observed 401 responses.
//
// It is constructed once and injected wherever session awareness is needed,
// so tests can substitute their own instance.
type SessionState struct {
	mu    sync.Mutex
	valid bool
}

// NewSessionState returns a session state with no valid session.
func NewSessionState() *SessionState {
	return &SessionState{}
}

// IsValid returns the cached validity flag.
func (s *SessionState) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valid
}

// MarkValid records a successful login or session probe.
func (s *SessionState) MarkValid() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valid = true
}

// MarkInvalid records a failed probe or an observed 401.
func (s *SessionState) MarkInvalid() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valid = false
}

// Clear drops the cached session on explicit logout.
func (s *SessionState) Clear() {
	s.MarkInvalid()
}
