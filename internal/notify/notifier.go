package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/Leandrogm81/Compromissos/internal/apperrors"
)

// Notifier is the display capability alerts are delivered through. It is
// treated as unreliable: permission and availability may change between
// scheduling and firing, so Granted is checked at call time, and a failed
// Notify is logged and dropped, never retried.
type Notifier interface {
	// Granted reports whether the backend is currently allowed to display
	// notifications.
	Granted() bool
	// Notify displays a notification. The tag uniquely identifies a
	// (reminder, lead time) pair so a delivery can be traced and deduplicated
	// by backends that support it.
	Notify(title, body, tag string) error
}

// DesktopNotifier delivers alerts through the OS notification facility.
type DesktopNotifier struct {
	enabled bool
}

func NewDesktopNotifier(enabled bool) *DesktopNotifier {
	return &DesktopNotifier{enabled: enabled}
}

func (n *DesktopNotifier) Granted() bool {
	return n.enabled
}

func (n *DesktopNotifier) Notify(title, body, tag string) error {
	if !n.enabled {
		return apperrors.ErrPermissionDenied
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		return fmt.Errorf("failed to display notification %s: %w", tag, err)
	}
	return nil
}

// ConsoleNotifier prints alerts to stdout. Used by `watch --dry-run` and as
// a fallback when no desktop facility is available.
type ConsoleNotifier struct{}

func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (n *ConsoleNotifier) Granted() bool {
	return true
}

func (n *ConsoleNotifier) Notify(title, body, tag string) error {
	fmt.Printf("[%s] %s: %s\n", tag, title, body)
	return nil
}
