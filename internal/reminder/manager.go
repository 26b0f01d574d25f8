package reminder

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/apperrors"
	"github.com/Leandrogm81/Compromissos/internal/logger"
	"github.com/Leandrogm81/Compromissos/internal/models"
	"github.com/Leandrogm81/Compromissos/internal/recurrence"
	"github.com/Leandrogm81/Compromissos/internal/storage"
)

// AlertScheduler is the slice of the notification scheduler the manager
// drives. Scheduling failures are absorbed by the implementation; the manager
// never lets alert plumbing veto a persisted state change.
type AlertScheduler interface {
	ScheduleFor(r models.Reminder)
	Cancel(id int64)
}

// Manager owns reminder lifecycle transitions. All mutations for a given
// reminder id are serialized through a per-id lock, so concurrent toggles
// observe each other's writes instead of racing on read-modify-write.
type Manager struct {
	store storage.Provider
	sched AlertScheduler

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewManager(store storage.Provider, sched AlertScheduler) *Manager {
	return &Manager{
		store: store,
		sched: sched,
		locks: make(map[int64]*sync.Mutex),
	}
}

func (m *Manager) lockFor(id int64) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// Create validates and persists a new reminder, then arms its alerts. The id
// and timestamps are assigned here; callers pass a zero ID. New reminders are
// always pending regardless of the status passed in.
func (m *Manager) Create(r models.Reminder) (models.Reminder, error) {
	r.Status = models.StatusPending
	if r.Recurrence == "" {
		r.Recurrence = models.RecurrenceNone
	}
	if err := r.Validate(); err != nil {
		return models.Reminder{}, err
	}

	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	id, err := m.store.AddReminder(r)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to create reminder: %w", err)
	}
	r.ID = id

	m.sched.ScheduleFor(r)
	logger.Info("reminder created", "id", r.ID, "title", r.Title)
	return r, nil
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Datetime    *time.Time
	Timezone    *string
	LeadTimes   *[]int
	Attachments *[]models.Attachment
	Subtasks    *[]models.Subtask
	Status      *models.Status
	Recurrence  *models.Recurrence
	Icon        *string
}

// Update applies a partial update to an existing reminder and re-arms its
// alerts against the merged state.
func (m *Manager) Update(id int64, p Patch) (models.Reminder, error) {
	l := m.lockFor(id)
	l.Lock()
	defer l.Unlock()

	r, err := m.store.GetReminder(id)
	if err != nil {
		return models.Reminder{}, err
	}

	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Datetime != nil {
		r.Datetime = p.Datetime.UTC()
	}
	if p.Timezone != nil {
		r.Timezone = *p.Timezone
	}
	if p.LeadTimes != nil {
		r.LeadTimes = *p.LeadTimes
	}
	if p.Attachments != nil {
		r.Attachments = *p.Attachments
	}
	if p.Subtasks != nil {
		r.Subtasks = *p.Subtasks
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Recurrence != nil {
		r.Recurrence = *p.Recurrence
	}
	if p.Icon != nil {
		r.Icon = *p.Icon
	}

	if err := r.Validate(); err != nil {
		return models.Reminder{}, err
	}

	r.UpdatedAt = time.Now().UTC()
	if err := m.store.UpdateReminder(r); err != nil {
		return models.Reminder{}, fmt.Errorf("failed to update reminder %d: %w", id, err)
	}

	m.sched.ScheduleFor(r)
	logger.Info("reminder updated", "id", id)
	return r, nil
}

// Delete removes a reminder and cancels its alerts. Deleting an id that does
// not exist is a no-op.
func (m *Manager) Delete(id int64) error {
	l := m.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if err := m.store.DeleteReminder(id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			m.sched.Cancel(id)
			return nil
		}
		return fmt.Errorf("failed to delete reminder %d: %w", id, err)
	}

	m.sched.Cancel(id)
	logger.Info("reminder deleted", "id", id)
	return nil
}

// ToggleStatus flips a reminder between pending and done. A non-pending
// reminder (done or cancelled) always returns to pending. Completing a
// recurring reminder finalizes it as a plain done entry and spawns exactly
// one successor at the next occurrence, with subtask progress reset.
func (m *Manager) ToggleStatus(id int64) (models.Reminder, error) {
	l := m.lockFor(id)
	l.Lock()
	defer l.Unlock()

	r, err := m.store.GetReminder(id)
	if err != nil {
		return models.Reminder{}, err
	}

	if r.Status != models.StatusPending {
		r.Status = models.StatusPending
		r.UpdatedAt = time.Now().UTC()
		if err := m.store.UpdateReminder(r); err != nil {
			return models.Reminder{}, fmt.Errorf("failed to reopen reminder %d: %w", id, err)
		}
		m.sched.ScheduleFor(r)
		logger.Info("reminder reopened", "id", id)
		return r, nil
	}

	if r.IsRecurring() {
		return m.completeRecurring(r)
	}

	r.Status = models.StatusDone
	r.UpdatedAt = time.Now().UTC()
	if err := m.store.UpdateReminder(r); err != nil {
		return models.Reminder{}, fmt.Errorf("failed to complete reminder %d: %w", id, err)
	}
	m.sched.Cancel(id)
	logger.Info("reminder completed", "id", id)
	return r, nil
}

// completeRecurring finalizes the current occurrence and persists its
// successor. The successor's datetime is derived from the completed
// occurrence's scheduled datetime, not from the completion time, so
// completing late never drifts the series.
func (m *Manager) completeRecurring(r models.Reminder) (models.Reminder, error) {
	next, err := recurrence.NextOccurrence(r.Datetime, r.Recurrence)
	if err != nil {
		return models.Reminder{}, err
	}

	rule := r.Recurrence
	r.Status = models.StatusDone
	r.Recurrence = models.RecurrenceNone
	r.UpdatedAt = time.Now().UTC()
	if err := m.store.UpdateReminder(r); err != nil {
		return models.Reminder{}, fmt.Errorf("failed to finalize recurring reminder %d: %w", r.ID, err)
	}
	m.sched.Cancel(r.ID)

	successor := r
	successor.ID = 0
	successor.Status = models.StatusPending
	successor.Recurrence = rule
	successor.Datetime = next
	successor.Subtasks = resetSubtasks(r.Subtasks)

	created, err := m.Create(successor)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to spawn next occurrence of reminder %d: %w", r.ID, err)
	}
	logger.Info("recurring reminder advanced", "completed", r.ID, "next", created.ID, "at", next)
	return r, nil
}

func resetSubtasks(subtasks []models.Subtask) []models.Subtask {
	if len(subtasks) == 0 {
		return nil
	}
	out := make([]models.Subtask, len(subtasks))
	for i, st := range subtasks {
		st.Done = false
		out[i] = st
	}
	return out
}

// UpdateSubtaskStatus sets the done flag of one subtask. Setting a flag to
// its current value, or naming a subtask id the reminder does not have,
// leaves the reminder unchanged and still succeeds. Subtask changes never
// touch the parent's status or alerts.
func (m *Manager) UpdateSubtaskStatus(id int64, subtaskID string, done bool) (models.Reminder, error) {
	l := m.lockFor(id)
	l.Lock()
	defer l.Unlock()

	r, err := m.store.GetReminder(id)
	if err != nil {
		return models.Reminder{}, err
	}

	found := false
	for i := range r.Subtasks {
		if r.Subtasks[i].ID == subtaskID {
			found = true
			if r.Subtasks[i].Done == done {
				return r, nil
			}
			r.Subtasks[i].Done = done
			break
		}
	}
	if !found {
		return r, nil
	}

	r.UpdatedAt = time.Now().UTC()
	if err := m.store.UpdateReminder(r); err != nil {
		return models.Reminder{}, fmt.Errorf("failed to update subtask %s: %w", subtaskID, err)
	}
	return r, nil
}

// Get returns a single reminder.
func (m *Manager) Get(id int64) (models.Reminder, error) {
	return m.store.GetReminder(id)
}

// Pending returns pending reminders ordered by datetime.
func (m *Manager) Pending() ([]models.Reminder, error) {
	return m.store.GetRemindersByStatus(models.StatusPending)
}

// Resolved returns the archive: done and cancelled reminders merged, newest
// first.
func (m *Manager) Resolved() ([]models.Reminder, error) {
	done, err := m.store.GetRemindersByStatus(models.StatusDone)
	if err != nil {
		return nil, err
	}
	cancelled, err := m.store.GetRemindersByStatus(models.StatusCancelled)
	if err != nil {
		return nil, err
	}
	resolved := append(done, cancelled...)
	sort.Slice(resolved, func(i, j int) bool {
		if !resolved[i].Datetime.Equal(resolved[j].Datetime) {
			return resolved[i].Datetime.After(resolved[j].Datetime)
		}
		return resolved[i].ID > resolved[j].ID
	})
	return resolved, nil
}
