package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Leandrogm81/Compromissos/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type ListCmd struct {
	Search string `short:"s" help:"Filter by case-insensitive substring of title or description."`
	All    bool   `short:"a" help:"Include done and cancelled reminders."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var reminders []models.Reminder
	var err error
	if c.All {
		reminders, err = ctx.Store.GetAllReminders()
	} else {
		reminders, err = ctx.Manager.Pending()
	}
	if err != nil {
		return err
	}

	if c.Search != "" {
		reminders = filterReminders(reminders, c.Search)
	}

	if len(reminders) == 0 {
		fmt.Println("No reminders found")
		return nil
	}

	for _, r := range reminders {
		printReminderLine(r)
	}
	return nil
}

func filterReminders(reminders []models.Reminder, query string) []models.Reminder {
	query = strings.ToLower(query)
	var out []models.Reminder
	for _, r := range reminders {
		if strings.Contains(strings.ToLower(r.Title), query) ||
			strings.Contains(strings.ToLower(r.Description), query) {
			out = append(out, r)
		}
	}
	return out
}

func printReminderLine(r models.Reminder) {
	icon := r.Icon
	if icon == "" {
		icon = "•"
	}

	title := titleStyle.Render(r.Title)
	when := formatWhen(r)
	if r.Status == models.StatusPending && r.Datetime.Before(time.Now().UTC()) {
		when = overdueStyle.Render(when + " (overdue)")
	}

	extras := []string{string(r.Status)}
	if r.IsRecurring() {
		extras = append(extras, strings.ToLower(r.FormatRecurrence()))
	}
	if len(r.Subtasks) > 0 {
		extras = append(extras, subtaskProgress(r.Subtasks))
	}
	if len(r.LeadTimes) > 0 {
		extras = append(extras, "alerts "+formatLeadTimes(r.LeadTimes))
	}

	fmt.Printf("%4d %s %s  %s  %s\n",
		r.ID, icon, title, when, dimStyle.Render("("+strings.Join(extras, ", ")+")"))
}
