// Package recurrence computes the next occurrence of a recurring reminder.
// Pure functions, no I/O.
package recurrence

import (
	"fmt"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/apperrors"
	"github.com/Leandrogm81/Compromissos/internal/models"
)

// NextOccurrence returns the instant of the occurrence following current for
// the given rule, preserving the time-of-day component:
//
//   - daily:   exactly 24 hours later
//   - weekly:  exactly 7×24 hours later
//   - monthly: same day-of-month in the next calendar month. When the next
//     month is shorter the date normalizes forward per time.AddDate
//     (Jan 31 + 1 month = Mar 2 or Mar 3), which callers accept as the
//     defined behavior rather than clamping to month end.
//
// Calling with RecurrenceNone is a precondition violation by the caller and
// fails with ErrInvariant.
func NextOccurrence(current time.Time, rule models.Recurrence) (time.Time, error) {
	switch rule {
	case models.RecurrenceDaily:
		return current.Add(24 * time.Hour), nil
	case models.RecurrenceWeekly:
		return current.Add(7 * 24 * time.Hour), nil
	case models.RecurrenceMonthly:
		return current.AddDate(0, 1, 0), nil
	case models.RecurrenceNone:
		return time.Time{}, fmt.Errorf("%w: NextOccurrence called with non-recurring rule", apperrors.ErrInvariant)
	default:
		return time.Time{}, fmt.Errorf("%w: unknown recurrence rule %q", apperrors.ErrInvariant, rule)
	}
}
