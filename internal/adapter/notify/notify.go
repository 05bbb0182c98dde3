// Package notify delivers goal-crossed notifications. The shipped notifier
// writes them to the structured log instead of a carrier.
package notify

import (
	"context"
	"fmt"
	"strings"

	"weighttrack/internal/domain"
	"weighttrack/internal/logger"
)

// GoalReachedMessage is the body sent when an entry lands below the goal.
const GoalReachedMessage = "Congratulations! You've reached your weight goal!"

var _ domain.GoalNotifier = (*LogNotifier)(nil)

// LogNotifier logs the message that would be texted to the account's phone.
type LogNotifier struct {
	// Message overrides GoalReachedMessage when set.
	Message string
}

// NewLogNotifier returns a notifier using the default message.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{Message: GoalReachedMessage}
}

// GoalCrossed records the notification. Accounts without a usable phone
// number are skipped.
func (n *LogNotifier) GoalCrossed(_ context.Context, account *domain.Account, weight float64) error {
	if account == nil {
		return fmt.Errorf("%w: no account", domain.ErrInvalidInput)
	}
	if account.Phone == nil {
		logger.Debug("goal crossed, no phone on file", "account", account.ID, "weight", weight)
		return nil
	}
	digits := SanitizePhone(*account.Phone)
	if digits == "" {
		return fmt.Errorf("%w: phone %q has no digits", domain.ErrInvalidInput, *account.Phone)
	}

	msg := n.Message
	if msg == "" {
		msg = GoalReachedMessage
	}
	logger.Info("goal reached notification",
		"account", account.ID,
		"to", MaskPhone(digits),
		"weight", weight,
		"message", msg,
	)
	return nil
}

// SanitizePhone keeps only the digits of a phone number.
func SanitizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

// MaskPhone hides all but the last four digits.
func MaskPhone(digits string) string {
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
