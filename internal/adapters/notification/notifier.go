// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/smokefree-cli/internal/config"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)


// Notifier handles desktop notifications.
type Notifier struct {
	cfg    *config.NotificationConfig
	notify func(title, message string) error
	beep   func(freq float64, duration int) error
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg:    cfg,
		notify: func(title, message string) error { return beeep.Notify(title, message, "") },
		beep:   beeep.Beep,
	}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	if err := n.notify(title, message); err != nil {
		return err
	}
	if n.cfg.Sound && n.beep != nil {
		_ = n.beep(beeep.DefaultFreq, beeep.DefaultDuration)
	}
	return nil
}

// NotifyMilestone displays a notification when a recovery milestone is reached.
func (n *Notifier) NotifyMilestone(description string, days int) error {
	title := "🏆 Milestone reached!"
	message := fmt.Sprintf("%s. %s smoke-free, keep going!", description, dayWord(days))
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

func dayWord(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
