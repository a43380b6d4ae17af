package handlers

import (
	"strings"
	"sync"
	"time"
)

// submissionLimiter throttles user generated submissions (reviews, questions)
// per author within a sliding window. A nil limiter allows everything.
type submissionLimiter struct {
	limit  int
	window time.Duration
	clock  func() time.Time
	mu     sync.Mutex
	seen   map[string]submissionWindow
}

type submissionWindow struct {
	count   int
	resetAt time.Time
}

func newSubmissionLimiter(limit int, window time.Duration, clock func() time.Time) *submissionLimiter {
	if limit <= 0 || window <= 0 {
		return nil
	}
	if clock == nil {
		clock = time.Now
	}
	return &submissionLimiter{
		limit:  limit,
		window: window,
		clock:  clock,
		seen:   make(map[string]submissionWindow),
	}
}

// allow reports whether the author may submit again within the current window.
func (l *submissionLimiter) allow(author string) bool {
	if l == nil {
		return true
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = "anonymous"
	}

	now := l.clock()
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.seen[author]
	if !ok || now.After(entry.resetAt) {
		l.seen[author] = submissionWindow{count: 1, resetAt: now.Add(l.window)}
		l.pruneLocked(now)
		return true
	}
	if entry.count >= l.limit {
		return false
	}
	entry.count++
	l.seen[author] = entry
	return true
}

func (l *submissionLimiter) pruneLocked(now time.Time) {
	for author, entry := range l.seen {
		if now.After(entry.resetAt) {
			delete(l.seen, author)
		}
	}
}
