package cli

import (
	"fmt"

	"github.com/Leandrogm81/Compromissos/internal/models"
)

type ToggleCmd struct {
	ID int64 `arg:"" help:"Reminder id."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	r, err := ctx.Manager.ToggleStatus(c.ID)
	if err != nil {
		return err
	}

	switch r.Status {
	case models.StatusDone:
		fmt.Printf("Completed reminder %d: %s\n", r.ID, r.Title)
	default:
		fmt.Printf("Reopened reminder %d: %s\n", r.ID, r.Title)
	}
	return nil
}

type SubtaskCmd struct {
	Toggle SubtaskToggleCmd `cmd:"" help:"Toggle a subtask's done flag."`
}

type SubtaskToggleCmd struct {
	ID        int64  `arg:"" help:"Reminder id."`
	SubtaskID string `arg:"" help:"Subtask id."`
}

func (c *SubtaskToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	r, err := ctx.Manager.Get(c.ID)
	if err != nil {
		return err
	}

	target := false
	found := false
	for _, st := range r.Subtasks {
		if st.ID == c.SubtaskID {
			target = !st.Done
			found = true
			break
		}
	}
	if !found {
		fmt.Printf("Reminder %d has no subtask %s\n", c.ID, c.SubtaskID)
		return nil
	}

	r, err = ctx.Manager.UpdateSubtaskStatus(c.ID, c.SubtaskID, target)
	if err != nil {
		return err
	}

	fmt.Printf("Subtasks on reminder %d: %s\n", r.ID, subtaskProgress(r.Subtasks))
	return nil
}
