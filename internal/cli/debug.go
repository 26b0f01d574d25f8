package cli

import (
	"encoding/json"
	"fmt"
)

type DebugCmd struct {
	StorePath *DebugStorePathCmd `cmd:"" help:"Show store path."`
	Dump      *DebugDumpCmd      `cmd:"" help:"Dump a reminder as JSON."`
	DumpAll   *DebugDumpAllCmd   `cmd:"" help:"Dump all reminders as JSON."`
}

type DebugStorePathCmd struct{}

func (cmd *DebugStorePathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpCmd struct {
	ID int64 `arg:"" help:"Id of the reminder to dump."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	r, err := ctx.Store.GetReminder(cmd.ID)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpAllCmd struct{}

func (cmd *DebugDumpAllCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(reminders, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reminders: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
