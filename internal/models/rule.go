package models

import "time"

// ImageAiRule is a named instruction template applied when extracting
// reminder fields from an image. Plain keyed record, no lifecycle coupling
// to reminders.
type ImageAiRule struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Instruction string    `json:"instruction"`
	CreatedAt   time.Time `json:"created_at"`
}
