package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/ai"
	"github.com/Leandrogm81/Compromissos/internal/keyring"
	"github.com/Leandrogm81/Compromissos/internal/models"
)

type SuggestCmd struct {
	Text string `arg:"" help:"Free-form text to extract reminder fields from."`
	Save bool   `help:"Create a reminder from the suggestion instead of printing it."`
}

func (c *SuggestCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	cfg := ctx.Config.AI
	if cfg.APIKey == "" {
		key, err := keyring.GetAPIKey()
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
		cfg.APIKey = key
	}

	rules, err := ctx.Store.GetAllRules()
	if err != nil {
		return err
	}

	assistant, err := ai.NewAssistant(cfg, rules)
	if err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Timeout)*time.Second)
	defer cancel()

	s, err := assistant.SuggestFields(reqCtx, c.Text)
	if err != nil {
		return err
	}

	if !c.Save {
		fmt.Printf("Title:       %s\n", s.Title)
		if s.Description != "" {
			fmt.Printf("Description: %s\n", s.Description)
		}
		if s.Date != "" {
			fmt.Printf("Due:         %s %s\n", s.Date, s.Time)
		}
		if s.Icon != "" {
			fmt.Printf("Icon:        %s\n", s.Icon)
		}
		fmt.Println("\nRe-run with --save to create the reminder.")
		return nil
	}

	if s.Date == "" || s.Time == "" {
		return fmt.Errorf("suggestion has no due date/time; add one manually with the add command")
	}

	datetime, zone, err := resolveDatetime(ctx, s.Date, s.Time, "")
	if err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	r, err := ctx.Manager.Create(models.Reminder{
		Title:       strings.TrimSpace(s.Title),
		Description: s.Description,
		Datetime:    datetime,
		Timezone:    zone,
		LeadTimes:   settings.DefaultLeadTimes,
		Status:      models.StatusPending,
		Recurrence:  models.RecurrenceNone,
		Icon:        s.Icon,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added reminder %d: %s (due %s)\n", r.ID, r.Title, formatWhen(r))
	return nil
}
