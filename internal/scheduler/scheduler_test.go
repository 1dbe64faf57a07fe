package scheduler

import (
	"bytes"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/shared"
)

const quiet = 40 * time.Millisecond

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	s := New(quiet, shared.NewLogger(&bytes.Buffer{}))
	t.Cleanup(s.Stop)
	return s
}

// settle waits long enough for any armed timer to have fired.
func settle() { time.Sleep(quiet * 3) }

func TestScheduler(t *testing.T) {
	t.Run("Coalesces Bursts", func(t *testing.T) {
		s := newTestScheduler(t)

		var commits atomic.Int64
		for i := 0; i < 5; i++ {
			s.Schedule(models.DomainBudget, "b1", func() { commits.Add(1) })
		}

		settle()

		if got := commits.Load(); got != 1 {
			t.Errorf("5 rapid schedules should commit once, got %d", got)
		}
	})

	t.Run("Separate Bursts Commit Separately", func(t *testing.T) {
		s := newTestScheduler(t)

		var commits atomic.Int64
		s.Schedule(models.DomainBudget, "b1", func() { commits.Add(1) })
		settle()

		s.Schedule(models.DomainBudget, "b1", func() { commits.Add(1) })
		settle()

		if got := commits.Load(); got != 2 {
			t.Errorf("two quiesced bursts should commit twice, got %d", got)
		}
	})

	t.Run("Keys Are Independent", func(t *testing.T) {
		s := newTestScheduler(t)

		var b1, c1 atomic.Int64
		s.Schedule(models.DomainBudget, "b1", func() { b1.Add(1) })
		// Re-arming b1 must not disturb the countdown timer, and vice versa.
		s.Schedule(models.DomainCountdown, "b1", func() { c1.Add(1) })
		s.Schedule(models.DomainBudget, "b1", func() { b1.Add(1) })

		settle()

		if b1.Load() != 1 {
			t.Errorf("budget/b1 should commit once, got %d", b1.Load())
		}
		if c1.Load() != 1 {
			t.Errorf("countdown/b1 should commit once, got %d", c1.Load())
		}
	})

	t.Run("Newest Commit Wins", func(t *testing.T) {
		s := newTestScheduler(t)

		var got atomic.Int64
		s.Schedule(models.DomainPacking, "p1", func() { got.Store(1) })
		s.Schedule(models.DomainPacking, "p1", func() { got.Store(2) })

		settle()

		if got.Load() != 2 {
			t.Errorf("the re-armed commit closure should run, got marker %d", got.Load())
		}
	})

	t.Run("Flush Runs Armed Commits Now", func(t *testing.T) {
		s := newTestScheduler(t)

		var commits atomic.Int64
		s.Schedule(models.DomainBudget, "b1", func() { commits.Add(1) })
		s.Schedule(models.DomainPlanner, "d1", func() { commits.Add(1) })

		s.Flush()

		if got := commits.Load(); got != 2 {
			t.Fatalf("flush should run both commits immediately, got %d", got)
		}
		if s.Pending() != 0 {
			t.Errorf("flush should disarm all timers, %d still pending", s.Pending())
		}

		// The original timers must not fire a second time.
		settle()
		if got := commits.Load(); got != 2 {
			t.Errorf("flushed commits ran again, got %d", got)
		}
	})

	t.Run("Stop Drops Armed Commits", func(t *testing.T) {
		s := newTestScheduler(t)

		var commits atomic.Int64
		s.Schedule(models.DomainBudget, "b1", func() { commits.Add(1) })

		s.Stop()
		settle()

		if got := commits.Load(); got != 0 {
			t.Errorf("stop should drop commits without running them, got %d", got)
		}
	})
}
