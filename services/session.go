package services

import (
	"sync"
)

// Session is one chat's in-progress state: its cart and its current screen.
type Session struct {
	Cart *Cart
	View *ViewController
}

// Sessions hands out one Session per chat, created on first use.
type Sessions struct {
	mu      sync.Mutex
	byChat  map[int64]*Session
	auth    Authenticator
	errText string
}

func NewSessions(auth Authenticator, loginErrText string) *Sessions {
	return &Sessions{byChat: make(map[int64]*Session), auth: auth, errText: loginErrText}
}

func (s *Sessions) Get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byChat[chatID]
	if !ok {
		sess = &Session{Cart: NewCart(), View: NewViewController(s.auth, s.errText)}
		s.byChat[chatID] = sess
	}
	return sess
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byChat)
}
