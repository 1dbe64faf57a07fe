// Package scheduler implements the debounced commit scheduler: per-item
// timers that coalesce bursts of mutation events into single commits.
package scheduler

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/shared"
)

// DefaultQuietPeriod is the coalescing window used when none is configured.
const DefaultQuietPeriod = 800 * time.Millisecond

// CommitFn performs the actual write for one item once its edit burst has
// quieted. It must revalidate that the item still exists: the item may have
// been deleted while the timer was armed, in which case the commit is a no-op.
type CommitFn func()

type key struct {
	domain models.Domain
	itemID string
}

type entry struct {
	timer  *time.Timer
	commit CommitFn
}

// Scheduler maintains one timer per (domain, itemID) key. Each Schedule call
// cancel-and-restarts that key's timer; when the quiet period elapses with no
// further calls the commit runs exactly once. Timers for different keys never
// interfere.
type Scheduler struct {
	mu     sync.Mutex
	quiet  time.Duration
	timers map[key]*entry
	logger *log.Logger
}

// New creates a Scheduler with the given quiet period.
func New(quiet time.Duration, logger *log.Logger) *Scheduler {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Scheduler{
		quiet:  quiet,
		timers: make(map[key]*entry),
		logger: logger,
	}
}

// Schedule arms (or re-arms) the timer for one item's pending commit. The
// newest commit closure wins; within one key, commits are strictly ordered by
// scheduling time.
func (s *Scheduler) Schedule(domain models.Domain, itemID string, commit CommitFn) {
	k := key{domain: domain, itemID: itemID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.timers[k]; ok {
		old.timer.Stop()
	}

	e := &entry{commit: commit}
	e.timer = time.AfterFunc(s.quiet, func() { s.fire(k, e) })
	s.timers[k] = e
}

// Pending returns how many commits are currently armed.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.timers)
}

// Flush runs every armed commit immediately. Required before anything
// resembling page unload: without it, edits inside the quiet window would
// never reach durable storage.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	entries := make([]*entry, 0, len(s.timers))
	for k, e := range s.timers {
		e.timer.Stop()
		entries = append(entries, e)
		delete(s.timers, k)
	}
	s.mu.Unlock()

	for _, e := range entries {
		e.commit()
	}
}

// Stop drops every armed commit without running it.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, e := range s.timers {
		e.timer.Stop()
		delete(s.timers, k)
	}
}

// fire runs when a key's quiet period elapses. The entry identity check
// guards against the race where the timer already fired but a concurrent
// Schedule replaced the entry before this goroutine took the lock.
func (s *Scheduler) fire(k key, e *entry) {
	s.mu.Lock()
	cur, ok := s.timers[k]
	if !ok || cur != e {
		s.mu.Unlock()
		return
	}
	delete(s.timers, k)
	s.mu.Unlock()

	e.commit()
}
