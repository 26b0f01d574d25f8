package storage

import "github.com/Leandrogm81/Compromissos/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Reminders. AddReminder assigns and returns the record id.
	AddReminder(models.Reminder) (int64, error)
	GetReminder(id int64) (models.Reminder, error)
	GetAllReminders() ([]models.Reminder, error)
	// GetRemindersByStatus returns reminders in the given status ordered by
	// due datetime ascending.
	GetRemindersByStatus(models.Status) ([]models.Reminder, error)
	UpdateReminder(models.Reminder) error
	DeleteReminder(id int64) error

	// Image AI rules
	AddRule(models.ImageAiRule) (int64, error)
	GetRule(id int64) (models.ImageAiRule, error)
	GetAllRules() ([]models.ImageAiRule, error)
	DeleteRule(id int64) error

	// Utils
	GetConfigPath() string
}
