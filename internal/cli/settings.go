package cli

import (
	"fmt"

	"github.com/Leandrogm81/Compromissos/internal/clock"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"Show stored settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change stored settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	fmt.Printf("Timezone:           %s\n", settings.Timezone)
	fmt.Printf("Notifications:      %v\n", settings.NotificationsEnabled)
	fmt.Printf("Default lead times: %s\n", formatLeadTimes(settings.DefaultLeadTimes))
	return nil
}

type SettingsSetCmd struct {
	Timezone      string `short:"z" help:"Default timezone id."`
	Notifications *bool  `short:"n" help:"Enable or disable notifications."`
	LeadTimes     string `short:"l" help:"Default comma-separated lead times in minutes."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	if c.Timezone != "" {
		if !clock.Supported(c.Timezone) {
			return fmt.Errorf("unsupported timezone: %s", c.Timezone)
		}
		settings.Timezone = c.Timezone
	}
	if c.Notifications != nil {
		settings.NotificationsEnabled = *c.Notifications
	}
	if c.LeadTimes != "" {
		leads, err := parseLeadTimes(c.LeadTimes)
		if err != nil {
			return err
		}
		settings.DefaultLeadTimes = leads
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Println("Settings saved")
	return nil
}
