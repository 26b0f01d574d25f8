package cli

import (
	"fmt"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/clock"
	"github.com/Leandrogm81/Compromissos/internal/migration"
	"github.com/Leandrogm81/Compromissos/migrations"
	"github.com/Leandrogm81/Compromissos/internal/storage/sqlite"
	"github.com/Leandrogm81/Compromissos/internal/watcher"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	if s, ok := ctx.Store.(*sqlite.Store); ok && storeReachable {
		if err := checkMigrations(s); err != nil {
			fmt.Printf("❌ Schema migrations: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema migrations: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema migrations: SKIPPED (not a sqlite store)\n")
	}

	if storeReachable {
		if err := checkData(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}

		if err := checkTimezone(ctx); err != nil {
			fmt.Printf("❌ Timezone: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Timezone: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (store not reachable)\n")
		fmt.Printf("⊘ Timezone: SKIPPED (store not reachable)\n")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Two live watchers would deliver every alert twice
	lock := watcher.NewLockfile(ctx.Store.GetConfigPath())
	if pid, running := lock.OwnerRunning(); running {
		fmt.Printf("ℹ Watcher running: pid %d\n", pid)
	} else {
		fmt.Printf("ℹ Watcher running: no\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	return ctx.Store.Load()
}

func checkMigrations(s *sqlite.Store) error {
	runner := migration.NewRunner(s.GetDB(), migrations.FS)
	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind latest %d (run init)", current, latest)
	}
	return nil
}

func checkData(ctx *Context) error {
	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return err
	}

	for i := range reminders {
		if err := reminders[i].Validate(); err != nil {
			return fmt.Errorf("reminder %d: %w", reminders[i].ID, err)
		}
	}
	return nil
}

func checkTimezone(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if !clock.Supported(settings.Timezone) {
		return fmt.Errorf("configured timezone %q is not supported", settings.Timezone)
	}

	// Round-trip sanity on today's date
	now := time.Now().UTC()
	date, wall, err := clock.ToCivilParts(now, settings.Timezone)
	if err != nil {
		return err
	}
	if _, err := clock.ToInstant(date, wall, settings.Timezone); err != nil {
		return err
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := ctx.backupManager().ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found (run the backup command)")
	}
	return nil
}
