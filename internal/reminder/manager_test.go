package reminder

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/apperrors"
	"github.com/Leandrogm81/Compromissos/internal/models"
	"github.com/Leandrogm81/Compromissos/internal/storage"
)

// recordingScheduler captures scheduling calls so tests can assert the
// manager drives alerts without arming real timers.
type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []int64
	cancelled []int64
}

func (s *recordingScheduler) ScheduleFor(r models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, r.ID)
}

func (s *recordingScheduler) Cancel(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = append(s.cancelled, id)
}

func newTestManager(t *testing.T) (*Manager, *recordingScheduler, storage.Provider) {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "test.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	sched := &recordingScheduler{}
	return NewManager(store, sched), sched, store
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad test time %q: %v", s, err)
	}
	return ts
}

func baseReminder(t *testing.T) models.Reminder {
	return models.Reminder{
		Title:     "Pay rent",
		Datetime:  mustTime(t, "2024-03-01T09:00:00Z"),
		Timezone:  "UTC",
		LeadTimes: []int{30},
	}
}

func TestCreateDefaultsAndSchedules(t *testing.T) {
	m, sched, _ := newTestManager(t)

	r, err := m.Create(baseReminder(t))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if r.ID == 0 {
		t.Error("Create() did not assign an id")
	}
	if r.Status != models.StatusPending {
		t.Errorf("Create() status = %s, want pending", r.Status)
	}
	if r.Recurrence != models.RecurrenceNone {
		t.Errorf("Create() recurrence = %s, want none", r.Recurrence)
	}
	if r.CreatedAt.IsZero() || r.UpdatedAt.IsZero() {
		t.Error("Create() did not stamp timestamps")
	}
	if len(sched.scheduled) != 1 || sched.scheduled[0] != r.ID {
		t.Errorf("Create() scheduled = %v, want [%d]", sched.scheduled, r.ID)
	}
}

func TestCreateForcesPendingStatus(t *testing.T) {
	m, _, _ := newTestManager(t)

	r := baseReminder(t)
	r.Status = models.StatusDone

	created, err := m.Create(r)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Status != models.StatusPending {
		t.Errorf("Create() status = %s, want pending", created.Status)
	}

	got, err := m.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("persisted status = %s, want pending", got.Status)
	}
}

func TestCreateValidation(t *testing.T) {
	m, sched, _ := newTestManager(t)

	tests := []struct {
		name   string
		mutate func(*models.Reminder)
	}{
		{"empty title", func(r *models.Reminder) { r.Title = "" }},
		{"zero datetime", func(r *models.Reminder) { r.Datetime = time.Time{} }},
		{"bad recurrence", func(r *models.Reminder) { r.Recurrence = "yearly" }},
		{"negative lead", func(r *models.Reminder) { r.LeadTimes = []int{-5} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := baseReminder(t)
			tt.mutate(&r)

			if _, err := m.Create(r); !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}

	if len(sched.scheduled) != 0 {
		t.Errorf("failed creations still scheduled alerts: %v", sched.scheduled)
	}
}

func TestUpdatePatchesFields(t *testing.T) {
	m, sched, _ := newTestManager(t)

	r, err := m.Create(baseReminder(t))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newTitle := "Pay rent early"
	newDue := mustTime(t, "2024-03-02T10:00:00Z")
	got, err := m.Update(r.ID, Patch{Title: &newTitle, Datetime: &newDue})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if got.Title != newTitle {
		t.Errorf("Update() title = %s, want %s", got.Title, newTitle)
	}
	if !got.Datetime.Equal(newDue) {
		t.Errorf("Update() datetime = %v, want %v", got.Datetime, newDue)
	}
	// untouched fields survive
	if got.Timezone != "UTC" || len(got.LeadTimes) != 1 {
		t.Errorf("Update() clobbered untouched fields: %+v", got)
	}
	if len(sched.scheduled) != 2 {
		t.Errorf("Update() did not re-arm alerts, scheduled = %v", sched.scheduled)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	m, _, _ := newTestManager(t)

	title := "x"
	if _, err := m.Update(99, Patch{Title: &title}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateRejectsInvalidMerge(t *testing.T) {
	m, _, store := newTestManager(t)

	r, err := m.Create(baseReminder(t))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	empty := ""
	if _, err := m.Update(r.ID, Patch{Title: &empty}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("Update() error = %v, want ErrValidation", err)
	}

	// prior state untouched
	got, err := store.GetReminder(r.ID)
	if err != nil {
		t.Fatalf("GetReminder() error = %v", err)
	}
	if got.Title != "Pay rent" {
		t.Errorf("failed update leaked a partial write: title = %s", got.Title)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	m, sched, _ := newTestManager(t)

	r, err := m.Create(baseReminder(t))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := m.Delete(r.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := m.Delete(r.ID); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
	if err := m.Delete(12345); err != nil {
		t.Errorf("Delete(unknown) error = %v, want nil", err)
	}

	if len(sched.cancelled) == 0 || sched.cancelled[0] != r.ID {
		t.Errorf("Delete() did not cancel alerts, cancelled = %v", sched.cancelled)
	}
}

func TestToggleSymmetricForNonRecurring(t *testing.T) {
	m, _, _ := newTestManager(t)

	r, err := m.Create(baseReminder(t))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	done, err := m.ToggleStatus(r.ID)
	if err != nil {
		t.Fatalf("ToggleStatus() error = %v", err)
	}
	if done.Status != models.StatusDone {
		t.Errorf("first toggle status = %s, want done", done.Status)
	}

	back, err := m.ToggleStatus(r.ID)
	if err != nil {
		t.Fatalf("ToggleStatus() error = %v", err)
	}
	if back.Status != models.StatusPending {
		t.Errorf("second toggle status = %s, want pending", back.Status)
	}
}

func TestToggleCancelledReturnsToPending(t *testing.T) {
	m, _, _ := newTestManager(t)

	r, err := m.Create(baseReminder(t))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	cancelled := models.StatusCancelled
	if _, err := m.Update(r.ID, Patch{Status: &cancelled}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := m.ToggleStatus(r.ID)
	if err != nil {
		t.Fatalf("ToggleStatus() error = %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("toggle from cancelled status = %s, want pending", got.Status)
	}
}

func TestToggleRecurringSpawnsSuccessor(t *testing.T) {
	m, _, store := newTestManager(t)

	r := baseReminder(t)
	r.Recurrence = models.RecurrenceMonthly
	r.Subtasks = []models.Subtask{
		{ID: "st-1", Text: "transfer money", Done: true},
		{ID: "st-2", Text: "email landlord", Done: false},
	}

	created, err := m.Create(r)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	completed, err := m.ToggleStatus(created.ID)
	if err != nil {
		t.Fatalf("ToggleStatus() error = %v", err)
	}

	// Completed record is finalized as one-time done
	if completed.Status != models.StatusDone {
		t.Errorf("completed status = %s, want done", completed.Status)
	}
	if completed.Recurrence != models.RecurrenceNone {
		t.Errorf("completed recurrence = %s, want none", completed.Recurrence)
	}
	if !completed.Datetime.Equal(mustTime(t, "2024-03-01T09:00:00Z")) {
		t.Errorf("completed datetime changed: %v", completed.Datetime)
	}

	// Exactly one successor exists, carrying the rule forward
	all, err := store.GetAllReminders()
	if err != nil {
		t.Fatalf("GetAllReminders() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d reminders after recurring completion, want 2", len(all))
	}

	var successor models.Reminder
	for _, cand := range all {
		if cand.ID != created.ID {
			successor = cand
		}
	}
	if successor.Status != models.StatusPending {
		t.Errorf("successor status = %s, want pending", successor.Status)
	}
	if successor.Recurrence != models.RecurrenceMonthly {
		t.Errorf("successor recurrence = %s, want monthly", successor.Recurrence)
	}
	if !successor.Datetime.Equal(mustTime(t, "2024-04-01T09:00:00Z")) {
		t.Errorf("successor datetime = %v, want 2024-04-01T09:00:00Z", successor.Datetime)
	}
	if successor.Title != "Pay rent" {
		t.Errorf("successor title = %s, want Pay rent", successor.Title)
	}

	// Subtask ids carry over, progress resets
	if len(successor.Subtasks) != 2 {
		t.Fatalf("successor has %d subtasks, want 2", len(successor.Subtasks))
	}
	for _, st := range successor.Subtasks {
		if st.Done {
			t.Errorf("successor subtask %s still done", st.ID)
		}
	}
	if successor.Subtasks[0].ID != "st-1" || successor.Subtasks[1].ID != "st-2" {
		t.Errorf("successor subtask ids changed: %+v", successor.Subtasks)
	}
}

func TestReopenedRecurringDoesNotRespawn(t *testing.T) {
	m, _, store := newTestManager(t)

	r := baseReminder(t)
	r.Recurrence = models.RecurrenceDaily
	created, err := m.Create(r)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := m.ToggleStatus(created.ID); err != nil {
		t.Fatalf("ToggleStatus() error = %v", err)
	}

	// Reopen the finalized record and complete it again: it is one-time now,
	// so no second successor may appear.
	if _, err := m.ToggleStatus(created.ID); err != nil {
		t.Fatalf("reopen ToggleStatus() error = %v", err)
	}
	if _, err := m.ToggleStatus(created.ID); err != nil {
		t.Fatalf("complete ToggleStatus() error = %v", err)
	}

	all, err := store.GetAllReminders()
	if err != nil {
		t.Fatalf("GetAllReminders() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d reminders, want 2 (no re-spawn on reopen)", len(all))
	}
}

func TestUpdateSubtaskStatus(t *testing.T) {
	m, _, _ := newTestManager(t)

	r := baseReminder(t)
	r.Subtasks = []models.Subtask{{ID: "st-1", Text: "transfer money"}}
	created, err := m.Create(r)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := m.UpdateSubtaskStatus(created.ID, "st-1", true)
	if err != nil {
		t.Fatalf("UpdateSubtaskStatus() error = %v", err)
	}
	if !got.Subtasks[0].Done {
		t.Error("subtask not marked done")
	}
	if got.Status != models.StatusPending {
		t.Errorf("subtask change flipped parent status to %s", got.Status)
	}

	// Setting the same value again is a successful no-op
	before := got.UpdatedAt
	again, err := m.UpdateSubtaskStatus(created.ID, "st-1", true)
	if err != nil {
		t.Fatalf("no-op UpdateSubtaskStatus() error = %v", err)
	}
	if !again.UpdatedAt.Equal(before) {
		t.Error("no-op subtask update still touched the record")
	}

	// An unmatched subtask id leaves the reminder unchanged, not an error
	got, err = m.UpdateSubtaskStatus(created.ID, "missing", true)
	if err != nil {
		t.Fatalf("unknown subtask UpdateSubtaskStatus() error = %v", err)
	}
	if !got.UpdatedAt.Equal(before) {
		t.Error("unknown subtask update still touched the record")
	}
	if len(got.Subtasks) != 1 || got.Subtasks[0].ID != "st-1" || !got.Subtasks[0].Done {
		t.Errorf("unknown subtask update changed the list: %+v", got.Subtasks)
	}

	if _, err := m.UpdateSubtaskStatus(9999, "st-1", true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("unknown reminder error = %v, want ErrNotFound", err)
	}
}

func TestResolvedNewestFirst(t *testing.T) {
	m, _, _ := newTestManager(t)

	cancelled := models.StatusCancelled
	times := []string{
		"2024-03-01T09:00:00Z",
		"2024-03-15T09:00:00Z",
		"2024-03-08T09:00:00Z",
	}
	ids := make([]int64, len(times))
	for i, ts := range times {
		r := baseReminder(t)
		r.Datetime = mustTime(t, ts)
		created, err := m.Create(r)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids[i] = created.ID
	}

	// Two completed, one cancelled; the archive merges both
	for _, id := range ids[:2] {
		if _, err := m.ToggleStatus(id); err != nil {
			t.Fatalf("ToggleStatus() error = %v", err)
		}
	}
	if _, err := m.Update(ids[2], Patch{Status: &cancelled}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	resolved, err := m.Resolved()
	if err != nil {
		t.Fatalf("Resolved() error = %v", err)
	}
	if len(resolved) != 3 {
		t.Fatalf("Resolved() returned %d reminders, want 3", len(resolved))
	}
	want := []string{"2024-03-15T09:00:00Z", "2024-03-08T09:00:00Z", "2024-03-01T09:00:00Z"}
	for i, ts := range want {
		if !resolved[i].Datetime.Equal(mustTime(t, ts)) {
			t.Errorf("Resolved()[%d].Datetime = %v, want %s", i, resolved[i].Datetime, ts)
		}
	}
}

func TestConcurrentTogglesSerialize(t *testing.T) {
	m, _, store := newTestManager(t)

	r := baseReminder(t)
	created, err := m.Create(r)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// An even number of toggles must land back on pending
	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.ToggleStatus(created.ID); err != nil {
				t.Errorf("ToggleStatus() error = %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := store.GetReminder(created.ID)
	if err != nil {
		t.Fatalf("GetReminder() error = %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("after %d toggles status = %s, want pending", n, got.Status)
	}
}
