package cli

import "fmt"

type ResolvedCmd struct{}

func (c *ResolvedCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	reminders, err := ctx.Manager.Resolved()
	if err != nil {
		return err
	}

	if len(reminders) == 0 {
		fmt.Println("No resolved reminders")
		return nil
	}

	for _, r := range reminders {
		printReminderLine(r)
	}
	return nil
}
