package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/models"
)

// fakeNotifier records deliveries and lets tests flip the permission state.
type fakeNotifier struct {
	mu      sync.Mutex
	granted bool
	tags    []string
}

func (n *fakeNotifier) Granted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.granted
}

func (n *fakeNotifier) setGranted(v bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.granted = v
}

func (n *fakeNotifier) Notify(title, body, tag string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tags = append(n.tags, tag)
	return nil
}

func (n *fakeNotifier) deliveries() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.tags...)
}

func testReminder(id int64, due time.Time, leads []int) models.Reminder {
	return models.Reminder{
		ID:        id,
		Title:     "Pay rent",
		Datetime:  due,
		Timezone:  "UTC",
		LeadTimes: leads,
		Status:    models.StatusPending,
	}
}

func TestScheduleForArmsFutureLeads(t *testing.T) {
	n := &fakeNotifier{granted: true}
	s := NewScheduler(n)

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return now })

	s.ScheduleFor(testReminder(1, now.Add(time.Hour), []int{5, 30}))

	if got := s.ArmedCount(1); got != 2 {
		t.Errorf("ArmedCount() = %d, want 2", got)
	}
}

func TestScheduleForIsIdempotent(t *testing.T) {
	n := &fakeNotifier{granted: true}
	s := NewScheduler(n)

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return now })

	r := testReminder(1, now.Add(time.Hour), []int{5, 30})
	s.ScheduleFor(r)
	s.ScheduleFor(r)

	if got := s.ArmedCount(1); got != 2 {
		t.Errorf("ArmedCount() after double schedule = %d, want 2", got)
	}
}

func TestPastLeadTimesAreSkipped(t *testing.T) {
	n := &fakeNotifier{granted: true}
	s := NewScheduler(n)

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return now })

	// Due in 10 minutes: the 30-minute lead is already past, the 5-minute
	// lead is still ahead.
	s.ScheduleFor(testReminder(1, now.Add(10*time.Minute), []int{5, 30}))

	if got := s.ArmedCount(1); got != 1 {
		t.Errorf("ArmedCount() = %d, want 1 (past lead suppressed)", got)
	}
}

func TestNonPendingOnlyCancels(t *testing.T) {
	n := &fakeNotifier{granted: true}
	s := NewScheduler(n)

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return now })

	r := testReminder(1, now.Add(time.Hour), []int{5})
	s.ScheduleFor(r)

	r.Status = models.StatusDone
	s.ScheduleFor(r)

	if got := s.ArmedCount(1); got != 0 {
		t.Errorf("ArmedCount() for done reminder = %d, want 0", got)
	}
}

func TestPermissionDeniedSkipsSilently(t *testing.T) {
	n := &fakeNotifier{granted: false}
	s := NewScheduler(n)

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return now })

	s.ScheduleFor(testReminder(1, now.Add(time.Hour), []int{5}))

	if got := s.ArmedCount(1); got != 0 {
		t.Errorf("ArmedCount() without permission = %d, want 0", got)
	}
}

func TestCancelUnknownIDIsNoop(t *testing.T) {
	s := NewScheduler(&fakeNotifier{granted: true})
	s.Cancel(42)
}

func TestTimerFiresWithTag(t *testing.T) {
	n := &fakeNotifier{granted: true}
	s := NewScheduler(n)

	// The timer duration is computed against the injected clock, so placing
	// the lead instant a hair after "now" makes it fire almost immediately.
	now := time.Now()
	s.SetNow(func() time.Time { return now })

	due := now.Add(30*time.Minute + 20*time.Millisecond)
	s.ScheduleFor(testReminder(7, due, []int{30}))

	deadline := time.After(2 * time.Second)
	for {
		if got := n.deliveries(); len(got) == 1 {
			if got[0] != "reminder-7-30" {
				t.Errorf("delivery tag = %s, want reminder-7-30", got[0])
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("timer did not fire")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if got := s.ArmedCount(7); got != 0 {
		t.Errorf("ArmedCount() after firing = %d, want 0", got)
	}
}

func TestRevokedPermissionDropsAtFireTime(t *testing.T) {
	n := &fakeNotifier{granted: true}
	s := NewScheduler(n)

	now := time.Now()
	s.SetNow(func() time.Time { return now })

	due := now.Add(5*time.Minute + 20*time.Millisecond)
	s.ScheduleFor(testReminder(3, due, []int{5}))
	n.setGranted(false)

	time.Sleep(200 * time.Millisecond)
	if got := n.deliveries(); len(got) != 0 {
		t.Errorf("deliveries after revocation = %v, want none", got)
	}
}

func TestReconcileOnStartup(t *testing.T) {
	n := &fakeNotifier{granted: true}
	s := NewScheduler(n)

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return now })

	// Pre-existing timer for a reminder that no longer exists
	s.ScheduleFor(testReminder(99, now.Add(time.Hour), []int{5}))

	pending := []models.Reminder{
		testReminder(1, now.Add(time.Hour), []int{5, 30}),
		testReminder(2, now.Add(2*time.Hour), []int{10}),
	}
	s.ReconcileOnStartup(pending)

	if got := s.ArmedCount(99); got != 0 {
		t.Errorf("stale reminder still armed: %d timers", got)
	}
	if got := s.ArmedCount(1); got != 2 {
		t.Errorf("ArmedCount(1) = %d, want 2", got)
	}
	if got := s.ArmedCount(2); got != 1 {
		t.Errorf("ArmedCount(2) = %d, want 1", got)
	}
}

func TestShutdownCancelsEverything(t *testing.T) {
	n := &fakeNotifier{granted: true}
	s := NewScheduler(n)

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return now })

	s.ScheduleFor(testReminder(1, now.Add(time.Hour), []int{5}))
	s.ScheduleFor(testReminder(2, now.Add(time.Hour), []int{5}))

	s.Shutdown()

	if s.ArmedCount(1) != 0 || s.ArmedCount(2) != 0 {
		t.Error("Shutdown() left timers armed")
	}
}
