// Package toast is the console's notification layer: a process-wide queue of
// short messages that expire on their own after a fixed time.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// DefaultTTL is how long a toast stays visible when no TTL is configured.
const DefaultTTL = 5 * time.Second

// Notifier is the write side used by the wizard, the dashboard and the CLI.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

type Toast struct {
	ID        string
	Kind      Kind
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Queue keeps toasts until they expire or are dismissed. It is safe for
// concurrent use; the dashboard poller posts from its own goroutine.
type Queue struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	toasts []Toast
	seen   map[string]struct{}
}

func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{ttl: ttl, now: time.Now, seen: make(map[string]struct{})}
}

// Show enqueues a message and returns its id.
func (q *Queue) Show(kind Kind, message string) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	t := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}
	q.toasts = append(q.toasts, t)
	return t.ID
}

func (q *Queue) Success(message string) { q.Show(KindSuccess, message) }
func (q *Queue) Error(message string)   { q.Show(KindError, message) }
func (q *Queue) Info(message string)    { q.Show(KindInfo, message) }

// Dismiss removes a toast before it expires. Unknown ids are ignored.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			delete(q.seen, id)
			return
		}
	}
}

// Active returns the toasts that have not expired yet, oldest first.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.expireLocked()
	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Drain returns active toasts that were not returned by a previous Drain.
// The console calls it after each command, so a toast that expires while the
// prompt sits idle is never printed.
func (q *Queue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.expireLocked()
	var out []Toast
	for _, t := range q.toasts {
		if _, ok := q.seen[t.ID]; ok {
			continue
		}
		q.seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (q *Queue) expireLocked() {
	now := q.now()
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
			continue
		}
		delete(q.seen, t.ID)
	}
	q.toasts = kept
}
