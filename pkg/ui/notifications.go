package ui

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// NotificationSender delivers a desktop notification
type NotificationSender interface {
	Send(title, message string) error
}

// DesktopSender sends notifications through the platform notification service
type DesktopSender struct {
	Icon string
}

func (d *DesktopSender) Send(title, message string) error {
	return beeep.Notify(title, message, d.Icon)
}

// Notifier prints notices to the console and, when enabled, to the desktop
type Notifier struct {
	sender NotificationSender
}

// NewNotifier creates a Notifier. A disabled notifier only prints.
func NewNotifier(enabled bool) *Notifier {
	if !enabled {
		return &Notifier{}
	}
	return &Notifier{sender: &DesktopSender{}}
}

// NewNotifierWithSender creates a Notifier that delivers through sender
func NewNotifierWithSender(sender NotificationSender) *Notifier {
	return &Notifier{sender: sender}
}

// SendNotification sends a desktop notification and prints to console
func (n *Notifier) SendNotification(title, message string) error {
	if !quiet {
		fmt.Fprintf(out, "\n%s: %s\n", Cyan(title), Yellow(message))
	}
	return n.send(title, message)
}

// SendSuccess sends a success notification
func (n *Notifier) SendSuccess(title, message string) error {
	if !quiet {
		fmt.Fprintf(out, "\n%s: %s\n", Green(title), Green(message))
	}
	return n.send(title, message)
}

// NotifyComplete announces that every prompt of a project has been recorded
func (n *Notifier) NotifyComplete(project string, total int) error {
	return n.SendSuccess("Recording complete",
		fmt.Sprintf("%s: all %d prompts recorded", project, total))
}

func (n *Notifier) send(title, message string) error {
	if n.sender == nil {
		return nil
	}
	return n.sender.Send(title, message)
}
