// Package notify delivers due-card reminders.
package notify

import (
	"fmt"
	"io"
)

// Notifier is anything that can tell the learner cards are waiting
type Notifier interface {
	SendReminder(count int) error
}

// Console writes reminders to a terminal
type Console struct {
	Out io.Writer
}

var _ Notifier = (*Console)(nil)

// SendReminder implements Notifier
func (c *Console) SendReminder(count int) error {
	word := "cards"
	if count == 1 {
		word = "card"
	}
	_, err := fmt.Fprintf(c.Out, "%d %s due for review. Run `recall review` to practice.\n", count, word)
	return err
}
