package cli

import (
	"fmt"
	"strings"
)

type ShowCmd struct {
	ID int64 `arg:"" help:"Reminder id."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	r, err := ctx.Manager.Get(c.ID)
	if err != nil {
		return err
	}

	header := r.Title
	if r.Icon != "" {
		header = r.Icon + " " + header
	}
	fmt.Printf("%s (id %d)\n", titleStyle.Render(header), r.ID)
	fmt.Printf("  Status:     %s\n", r.Status)
	fmt.Printf("  Due:        %s (%s)\n", formatWhen(r), r.Timezone)
	fmt.Printf("  Recurrence: %s\n", strings.ToLower(r.FormatRecurrence()))
	fmt.Printf("  Alerts:     %s\n", formatLeadTimes(r.LeadTimes))
	if r.Description != "" {
		fmt.Printf("  Notes:      %s\n", r.Description)
	}

	if len(r.Subtasks) > 0 {
		fmt.Printf("  Subtasks (%s):\n", subtaskProgress(r.Subtasks))
		for _, st := range r.Subtasks {
			mark := "[ ]"
			if st.Done {
				mark = "[x]"
			}
			fmt.Printf("    %s %s  %s\n", mark, st.Text, dimStyle.Render(st.ID))
		}
	}

	if len(r.Attachments) > 0 {
		fmt.Println("  Attachments:")
		for _, a := range r.Attachments {
			fmt.Printf("    %s (%s, %d bytes)\n", a.Name, a.Type, a.Size)
		}
	}

	return nil
}
