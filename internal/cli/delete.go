package cli

import "fmt"

type DeleteCmd struct {
	ID int64 `arg:"" help:"Reminder id."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Manager.Delete(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted reminder %d\n", c.ID)
	return nil
}
