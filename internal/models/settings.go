package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`              // IANA timezone name for civil date/time interpretation
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether local alerts are armed at all
	DefaultLeadTimes     []int  `json:"default_lead_times"`    // lead times applied to new reminders when none are given
}
