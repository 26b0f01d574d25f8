package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Leandrogm81/Compromissos/internal/apperrors"
	"github.com/Leandrogm81/Compromissos/internal/models"
)

type AddCmd struct {
	Title       string `arg:"" help:"Reminder title."`
	Date        string `short:"d" help:"Due date (YYYY-MM-DD)." required:""`
	Time        string `short:"t" help:"Due time (HH:MM)." required:""`
	Timezone    string `short:"z" help:"Timezone id (defaults to the configured timezone)."`
	Description string `short:"D" help:"Longer description."`
	LeadTimes   string `short:"l" help:"Comma-separated alert lead times in minutes (e.g. 5,30)."`
	Recurrence  string `short:"r" help:"Recurrence rule (none|daily|weekly|monthly)." default:"none"`
	Icon        string `short:"i" help:"Display icon (emoji)."`
	Subtasks    string `short:"s" help:"Comma-separated subtask texts."`
}

func (c *AddCmd) Validate() error {
	switch models.Recurrence(c.Recurrence) {
	case models.RecurrenceNone, models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly:
		return nil
	default:
		return fmt.Errorf("invalid recurrence: %s", c.Recurrence)
	}
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	datetime, zone, err := resolveDatetime(ctx, c.Date, c.Time, c.Timezone)
	if err != nil {
		return err
	}
	if !datetime.After(time.Now().UTC()) {
		return fmt.Errorf("%w: due datetime is in the past", apperrors.ErrValidation)
	}

	leads, err := parseLeadTimes(c.LeadTimes)
	if err != nil {
		return err
	}
	if leads == nil {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		leads = settings.DefaultLeadTimes
	}

	var subtasks []models.Subtask
	if strings.TrimSpace(c.Subtasks) != "" {
		for _, text := range strings.Split(c.Subtasks, ",") {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			subtasks = append(subtasks, models.Subtask{
				ID:   uuid.New().String(),
				Text: text,
			})
		}
	}

	r, err := ctx.Manager.Create(models.Reminder{
		Title:       c.Title,
		Description: c.Description,
		Datetime:    datetime,
		Timezone:    zone,
		LeadTimes:   leads,
		Subtasks:    subtasks,
		Status:      models.StatusPending,
		Recurrence:  models.Recurrence(c.Recurrence),
		Icon:        c.Icon,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added reminder %d: %s (due %s)\n", r.ID, r.Title, formatWhen(r))
	return nil
}
