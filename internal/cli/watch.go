package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/constants"
	"github.com/Leandrogm81/Compromissos/internal/logger"
	"github.com/Leandrogm81/Compromissos/internal/notify"
	"github.com/Leandrogm81/Compromissos/internal/watcher"
)

type WatchCmd struct {
	DryRun bool `help:"Print alerts to stdout instead of displaying desktop notifications."`
}

// Run keeps a scheduler process alive: it rebuilds the timer registry from
// the store, then periodically re-reconciles so edits made by other commands
// are picked up. A lockfile prevents two watchers arming duplicate alerts.
func (c *WatchCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	lock := watcher.NewLockfile(ctx.Store.GetConfigPath())
	if err := lock.Acquire(); err != nil {
		if errors.Is(err, watcher.ErrAlreadyRunning) {
			return fmt.Errorf("%w; stop it first or remove %s if stale", err, lock.Path())
		}
		return err
	}
	defer lock.Release()

	sched := ctx.Scheduler
	if c.DryRun {
		sched = notify.NewScheduler(notify.NewConsoleNotifier())
	}

	// The JSON backend serves reads from an in-memory snapshot, so each pass
	// re-loads the store first; other invocations may have written since.
	reconcile := func() error {
		if err := ctx.Store.Load(); err != nil {
			return err
		}
		pending, err := ctx.Manager.Pending()
		if err != nil {
			return err
		}
		sched.ReconcileOnStartup(pending)
		return nil
	}

	if err := reconcile(); err != nil {
		return err
	}
	fmt.Println("Watching for due reminders (Ctrl-C to stop)...")

	ticker := time.NewTicker(constants.WatcherReconcileIntervalSec * time.Second)
	defer ticker.Stop()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			if err := reconcile(); err != nil {
				logger.Error("reconcile failed", "err", err)
			}
		case sig := <-sigc:
			logger.Info("watcher stopping", "signal", sig)
			sched.Shutdown()
			return nil
		}
	}
}
