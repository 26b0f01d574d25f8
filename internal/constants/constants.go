package constants

const (
	// AppName is the application identifier used for keyring entries and config paths
	AppName = "compromissos"

	// DateFormat is the standard civil date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard wall-clock time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultKeyringUser is the keyring account name under which the AI API key is stored
	DefaultKeyringUser = "deepseek-api-key"
)

const (
	// Settings keys
	SettingTimezone             = "timezone"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingDefaultLeadTimes     = "default_lead_times"

	// Default settings values
	DefaultTimezone             = "America/Sao_Paulo"
	DefaultNotificationsEnabled = true
)

// DefaultLeadTimes are the lead times (minutes before the due instant)
// applied to new reminders when none are given.
var DefaultLeadTimes = []int{5, 30}

const (
	// WatcherLockfileName marks a running watch process so a second one can warn
	// about duplicate notifications.
	WatcherLockfileName = "watch.lock"

	// WatcherReconcileInterval is how often (in seconds) the watcher re-derives
	// its timer set from the store, picking up reminders written by other
	// processes since the last pass.
	WatcherReconcileIntervalSec = 60
)
