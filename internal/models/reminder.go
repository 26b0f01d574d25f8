package models

import (
	"fmt"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/apperrors"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Subtask is an independently togglable checklist item on a reminder.
type Subtask struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Attachment is an opaque binary payload attached to a reminder. The core
// stores and returns it untouched; interpretation belongs to the caller.
type Attachment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // MIME type
	Size      int64     `json:"size"`
	Hash      string    `json:"hash"`
	Data      []byte    `json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Reminder is the central entity: a time-based reminder with lead-time
// alerts, subtasks, attachments, and an optional recurrence rule.
type Reminder struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Datetime    time.Time    `json:"datetime"` // absolute due instant, stored UTC
	Timezone    string       `json:"timezone"` // IANA name, display interpretation only
	LeadTimes   []int        `json:"lead_times"` // minutes before Datetime
	Attachments []Attachment `json:"attachments,omitempty"`
	Subtasks    []Subtask    `json:"subtasks,omitempty"`
	Status      Status       `json:"status"`
	Recurrence  Recurrence   `json:"recurrence"`
	Icon        string       `json:"icon,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (r *Reminder) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("%w: reminder title cannot be empty", apperrors.ErrValidation)
	}

	if r.Datetime.IsZero() {
		return fmt.Errorf("%w: reminder datetime must be set", apperrors.ErrValidation)
	}

	switch r.Status {
	case StatusPending, StatusDone, StatusCancelled:
	default:
		return fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, r.Status)
	}

	switch r.Recurrence {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
	default:
		return fmt.Errorf("%w: invalid recurrence %q", apperrors.ErrValidation, r.Recurrence)
	}

	for _, lead := range r.LeadTimes {
		if lead <= 0 {
			return fmt.Errorf("%w: lead times must be positive minutes, got %d", apperrors.ErrValidation, lead)
		}
	}

	return nil
}

// IsRecurring reports whether completing this reminder spawns a successor.
func (r *Reminder) IsRecurring() bool {
	return r.Recurrence != RecurrenceNone
}

// FormatRecurrence returns a human-readable string describing the recurrence rule
func (r *Reminder) FormatRecurrence() string {
	switch r.Recurrence {
	case RecurrenceDaily:
		return "Daily"
	case RecurrenceWeekly:
		return "Weekly"
	case RecurrenceMonthly:
		return "Monthly"
	default:
		return "One-time"
	}
}
