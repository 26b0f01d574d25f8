package cli

import (
	"fmt"

	"github.com/Leandrogm81/Compromissos/internal/models"
	"github.com/Leandrogm81/Compromissos/internal/reminder"
)

type EditCmd struct {
	ID          int64   `arg:"" help:"Reminder id."`
	Title       *string `short:"T" help:"New title."`
	Date        string  `short:"d" help:"New due date (YYYY-MM-DD, requires --time)."`
	Time        string  `short:"t" help:"New due time (HH:MM, requires --date)."`
	Timezone    string  `short:"z" help:"Timezone id for the new date/time."`
	Description *string `short:"D" help:"New description."`
	LeadTimes   *string `short:"l" help:"New comma-separated lead times in minutes."`
	Recurrence  *string `short:"r" help:"New recurrence rule (none|daily|weekly|monthly)."`
	Icon        *string `short:"i" help:"New display icon."`
}

func (c *EditCmd) Validate() error {
	if (c.Date == "") != (c.Time == "") {
		return fmt.Errorf("--date and --time must be given together")
	}
	return nil
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var patch reminder.Patch
	patch.Title = c.Title
	patch.Description = c.Description
	patch.Icon = c.Icon

	if c.Date != "" {
		datetime, zone, err := resolveDatetime(ctx, c.Date, c.Time, c.Timezone)
		if err != nil {
			return err
		}
		patch.Datetime = &datetime
		patch.Timezone = &zone
	}

	if c.LeadTimes != nil {
		leads, err := parseLeadTimes(*c.LeadTimes)
		if err != nil {
			return err
		}
		if leads == nil {
			leads = []int{}
		}
		patch.LeadTimes = &leads
	}

	if c.Recurrence != nil {
		rec := models.Recurrence(*c.Recurrence)
		patch.Recurrence = &rec
	}

	r, err := ctx.Manager.Update(c.ID, patch)
	if err != nil {
		return err
	}

	fmt.Printf("Updated reminder %d: %s (due %s)\n", r.ID, r.Title, formatWhen(r))
	return nil
}
