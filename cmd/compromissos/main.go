package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Leandrogm81/Compromissos/internal/apperrors"
	"github.com/Leandrogm81/Compromissos/internal/cli"
	"github.com/Leandrogm81/Compromissos/internal/config"
	"github.com/Leandrogm81/Compromissos/internal/logger"
	"github.com/Leandrogm81/Compromissos/internal/notify"
	"github.com/Leandrogm81/Compromissos/internal/reminder"
	"github.com/Leandrogm81/Compromissos/internal/storage"
	"github.com/Leandrogm81/Compromissos/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Store   string `help:"Store file path (.json selects the JSON backend)." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize compromissos storage."`
	Add      cli.AddCmd      `cmd:"" help:"Add a reminder."`
	List     cli.ListCmd     `cmd:"" help:"List pending reminders." default:"1"`
	Show     cli.ShowCmd     `cmd:"" help:"Show one reminder in full."`
	Edit     cli.EditCmd     `cmd:"" help:"Edit a reminder."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a reminder."`
	Toggle   cli.ToggleCmd   `cmd:"" help:"Toggle a reminder between pending and done."`
	Subtask  cli.SubtaskCmd  `cmd:"" help:"Manage a reminder's subtasks."`
	Attach   cli.AttachCmd   `cmd:"" help:"Add or remove a file attachment."`
	Resolved cli.ResolvedCmd `cmd:"" help:"Show done and cancelled reminders."`
	Watch    cli.WatchCmd    `cmd:"" help:"Run the alert watcher."`
	Suggest  cli.SuggestCmd  `cmd:"" help:"Extract reminder fields from free text with AI."`
	Rule     cli.RuleCmd     `cmd:"" help:"Manage AI extraction rules."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change stored settings."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage store backups."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks."`
	Dbg      cli.DebugCmd    `cmd:"" name:"debug" help:"Inspection helpers."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the AI API key in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("compromissos"),
		kong.Description("Local-first reminder manager with lead-time alerts and recurrence"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if CLI.Store != "" {
		cfg.Store.Path = CLI.Store
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = config.DefaultStorePath()
	}
	if err := cfg.Validate(); err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: filepath.Dir(cfg.Store.Path),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
	}

	// Store backend follows the file extension
	var store storage.Provider
	if strings.HasSuffix(cfg.Store.Path, ".json") {
		store = storage.NewJSONStore(cfg.Store.Path)
	} else {
		store = sqlite.NewStore(cfg.Store.Path)
	}

	var notifier notify.Notifier
	if cfg.Notify.Backend == "console" {
		notifier = notify.NewConsoleNotifier()
	} else {
		notifier = notify.NewDesktopNotifier(cfg.Notify.Enabled)
	}
	sched := notify.NewScheduler(notifier)

	appCtx := &cli.Context{
		Store:     store,
		Manager:   reminder.NewManager(store, sched),
		Scheduler: sched,
		Config:    cfg,
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Error("failed to close store", "err", closeErr)
	}
	if err != nil {
		apperrors.Fatal(err)
	}
}
