package storage

import (
	"time"
)

// CooldownStorage remembers when each trivia question was last presented,
// keyed by question text. Questions with identical text share one entry.
// Entries are never removed. It is owned by the game loop and is not safe
// for concurrent use.
type CooldownStorage struct {
	lastShown map[string]time.Time
}

// NewCooldownStorage creates an empty CooldownStorage.
func NewCooldownStorage() *CooldownStorage {
	return &CooldownStorage{
		lastShown: make(map[string]time.Time),
	}
}

// LastShown returns when the question was last presented, if ever.
func (s *CooldownStorage) LastShown(question string) (time.Time, bool) {
	t, ok := s.lastShown[question]
	return t, ok
}

// MarkShown records that the question was presented at the given time.
func (s *CooldownStorage) MarkShown(question string, at time.Time) {
	s.lastShown[question] = at
}

// Eligible reports whether more than cooldown has elapsed since the question
// was last presented. Questions never presented are always eligible.
func (s *CooldownStorage) Eligible(question string, now time.Time, cooldown time.Duration) bool {
	last, ok := s.lastShown[question]
	if !ok {
		return true
	}
	return now.Sub(last) > cooldown
}

// Len returns the number of distinct question texts ever presented.
func (s *CooldownStorage) Len() int {
	return len(s.lastShown)
}
