package ports

// Notifier announces events to the user outside the terminal.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// NotifyMilestone announces a milestone the user has just reached.
	NotifyMilestone(description string, days int) error
}
