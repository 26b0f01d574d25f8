package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/clock"
	"github.com/Leandrogm81/Compromissos/internal/config"
	"github.com/Leandrogm81/Compromissos/internal/models"
	"github.com/Leandrogm81/Compromissos/internal/notify"
	"github.com/Leandrogm81/Compromissos/internal/reminder"
	"github.com/Leandrogm81/Compromissos/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Manager   *reminder.Manager
	Scheduler *notify.Scheduler
	Config    *config.Config
}

// parseLeadTimes parses a comma-separated list of lead-time minutes.
func parseLeadTimes(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var leads []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lead, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid lead time: %q", part)
		}
		if lead <= 0 {
			return nil, fmt.Errorf("lead times must be positive minutes, got %d", lead)
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

// resolveDatetime composes civil date and time parts in the given zone into
// an absolute instant. An empty zone falls back to the stored default.
func resolveDatetime(ctx *Context, date, wallTime, zone string) (time.Time, string, error) {
	if zone == "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return time.Time{}, "", err
		}
		zone = settings.Timezone
	}

	instant, err := clock.ToInstant(date, wallTime, zone)
	if err != nil {
		return time.Time{}, "", err
	}
	return instant, zone, nil
}

// formatWhen renders a reminder's due instant as civil date and time in its
// own timezone.
func formatWhen(r models.Reminder) string {
	date, wall, err := clock.ToCivilParts(r.Datetime, r.Timezone)
	if err != nil {
		return r.Datetime.Format(time.RFC3339)
	}
	return date + " " + wall
}

// formatLeadTimes renders lead times as a comma-separated minute list.
func formatLeadTimes(leads []int) string {
	if len(leads) == 0 {
		return "none"
	}
	parts := make([]string, len(leads))
	for i, lead := range leads {
		parts[i] = strconv.Itoa(lead)
	}
	return strings.Join(parts, ",") + "m"
}

// subtaskProgress renders "done/total" for a reminder's checklist.
func subtaskProgress(subtasks []models.Subtask) string {
	done := 0
	for _, st := range subtasks {
		if st.Done {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(subtasks))
}
