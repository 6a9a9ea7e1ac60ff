package bus

import (
	"errors"
	"strings"
)

// Common errors.
var (
	ErrClosed         = errors.New("bus closed")
	ErrInvalidSubject = errors.New("invalid subject")
)

// Message is a lifecycle event received from the bus.
type Message struct {
	// Subject the message was published to.
	Subject string

	// Data is the event payload.
	Data []byte
}

// MessageBus publishes lifecycle events to interested consumers.
// Publication is fire-and-forget; the lifecycle never blocks on it.
type MessageBus interface {
	// Publish sends a message to all subscribers of a subject.
	Publish(subject string, data []byte) error

	// Subscribe creates a subscription to a subject. A trailing *
	// wildcard matches any suffix.
	Subscribe(subject string) (Subscription, error)

	// Close shuts down the bus connection.
	Close() error
}

// Subscription represents an active subscription.
type Subscription interface {
	// Messages returns the channel for incoming messages.
	// The channel is closed when the subscription ends.
	Messages() <-chan *Message

	// Unsubscribe cancels the subscription.
	Unsubscribe() error
}

// ValidateSubject checks if a subject is valid.
func ValidateSubject(subject string) error {
	if subject == "" || strings.ContainsAny(subject, " \t\n") {
		return ErrInvalidSubject
	}
	return nil
}

// MatchSubject reports whether subject matches pattern. Patterns are
// literal except for a single trailing *, which matches any suffix.
func MatchSubject(pattern, subject string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(subject, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == subject
}
