package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/clock"
	"github.com/Leandrogm81/Compromissos/internal/logger"
	"github.com/Leandrogm81/Compromissos/internal/models"
)

// Scheduler arms in-process timers for pending reminders. The timer registry
// is process-scoped and volatile: nothing survives a restart, and
// ReconcileOnStartup must be called to rebuild it from the store.
type Scheduler struct {
	mu       sync.Mutex
	notifier Notifier
	// timers maps reminder id -> lead time minutes -> armed timer.
	timers map[int64]map[int]*time.Timer
	// now is swappable for tests.
	now func() time.Time
}

func NewScheduler(n Notifier) *Scheduler {
	return &Scheduler{
		notifier: n,
		timers:   make(map[int64]map[int]*time.Timer),
		now:      time.Now,
	}
}

// ScheduleFor cancels any timers already armed for the reminder, then arms one
// timer per lead time that still lies in the future. Calling it twice with the
// same reminder is equivalent to calling it once. Non-pending reminders and
// reminders with notifications unavailable only cancel.
func (s *Scheduler) ScheduleFor(r models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(r.ID)

	if r.Status != models.StatusPending {
		return
	}
	if !s.notifier.Granted() {
		logger.Debug("notifications not granted, skipping", "id", r.ID)
		return
	}

	now := s.now()
	for _, lead := range r.LeadTimes {
		fireAt := r.Datetime.Add(-time.Duration(lead) * time.Minute)
		if !fireAt.After(now) {
			logger.Debug("lead time already past, skipping", "id", r.ID, "lead", lead)
			continue
		}
		s.armLocked(r, lead, fireAt.Sub(now))
	}
}

func (s *Scheduler) armLocked(r models.Reminder, lead int, d time.Duration) {
	id := r.ID
	timer := time.AfterFunc(d, func() {
		s.fire(r, lead)
	})
	if s.timers[id] == nil {
		s.timers[id] = make(map[int]*time.Timer)
	}
	s.timers[id][lead] = timer
	logger.Debug("alert armed", "id", id, "lead", lead, "in", d.Round(time.Second))
}

func (s *Scheduler) fire(r models.Reminder, lead int) {
	s.mu.Lock()
	if m, ok := s.timers[r.ID]; ok {
		delete(m, lead)
		if len(m) == 0 {
			delete(s.timers, r.ID)
		}
	}
	s.mu.Unlock()

	if !s.notifier.Granted() {
		logger.Debug("notifications revoked before firing, dropping", "id", r.ID, "lead", lead)
		return
	}

	tag := fmt.Sprintf("reminder-%d-%d", r.ID, lead)
	body := s.alertBody(r, lead)
	if err := s.notifier.Notify(r.Title, body, tag); err != nil {
		logger.Error("failed to deliver alert", "id", r.ID, "lead", lead, "err", err)
	}
}

func (s *Scheduler) alertBody(r models.Reminder, lead int) string {
	date, wall, err := clock.ToCivilParts(r.Datetime, r.Timezone)
	when := date + " " + wall
	if err != nil {
		when = r.Datetime.Format(time.RFC3339)
	}
	if lead == 0 {
		return fmt.Sprintf("Due now (%s)", when)
	}
	return fmt.Sprintf("Due in %d min (%s)", lead, when)
}

// Cancel stops and discards every timer armed for the reminder. Unknown ids
// are a no-op.
func (s *Scheduler) Cancel(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
}

func (s *Scheduler) cancelLocked(id int64) {
	for lead, timer := range s.timers[id] {
		timer.Stop()
		delete(s.timers[id], lead)
	}
	delete(s.timers, id)
}

// ReconcileOnStartup rebuilds the registry from durable state: every pending
// reminder gets its future lead times re-armed, and anything armed for a
// reminder no longer in the list is cancelled.
func (s *Scheduler) ReconcileOnStartup(pending []models.Reminder) {
	keep := make(map[int64]bool, len(pending))
	for _, r := range pending {
		keep[r.ID] = true
	}

	s.mu.Lock()
	var stale []int64
	for id := range s.timers {
		if !keep[id] {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		s.cancelLocked(id)
	}
	s.mu.Unlock()

	for _, r := range pending {
		s.ScheduleFor(r)
	}
	logger.Debug("scheduler reconciled", "pending", len(pending), "stale", len(stale))
}

// Shutdown cancels every armed timer.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.timers {
		s.cancelLocked(id)
	}
}

// ArmedCount reports how many timers are currently armed for the reminder.
func (s *Scheduler) ArmedCount(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers[id])
}

// SetNow overrides the clock. Test hook.
func (s *Scheduler) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
