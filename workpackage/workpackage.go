package workpackage

import (
	"encoding/json"
	"time"

	"github.com/annokit/annokit/protocol"
)

// Resolution is the lifecycle status of a work package.
type Resolution string

const (
	// ResolutionPending indicates the task was issued but not yet
	// acknowledged by the client.
	ResolutionPending Resolution = "pending"

	// ResolutionAcknowledged indicates the client bound a content id.
	ResolutionAcknowledged Resolution = "acknowledged"

	// ResolutionRejected indicates the client reported failure. Terminal.
	ResolutionRejected Resolution = "rejected"

	// ResolutionCompleted indicates a validated interaction was recorded.
	// Terminal.
	ResolutionCompleted Resolution = "completed"
)

// String returns the string representation of the resolution.
func (r Resolution) String() string {
	return string(r)
}

// IsTerminal returns true if no transition leaves this resolution.
func (r Resolution) IsTerminal() bool {
	return r == ResolutionRejected || r == ResolutionCompleted
}

// RecordedInteraction is a validated interaction attached to a work
// package. The list is append-only.
type RecordedInteraction struct {
	Kind       protocol.InteractionKind `json:"kind"`
	Data       json.RawMessage          `json:"data"`
	ReceivedAt time.Time                `json:"received_at"`
}

// Record captures an interaction in its stored form.
func Record(in protocol.Interaction, receivedAt time.Time) (RecordedInteraction, error) {
	data, err := protocol.MarshalInteraction(in)
	if err != nil {
		return RecordedInteraction{}, err
	}
	return RecordedInteraction{
		Kind:       in.InteractionKind(),
		Data:       data,
		ReceivedAt: receivedAt,
	}, nil
}

// WorkPackage is the durable record of one issued task.
type WorkPackage struct {
	// ID is unique across all work packages ever created.
	ID string `json:"id"`

	// CreatedAt is set at creation and immutable.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is optional; nil means the package never expires.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// RequesterID identifies the human or session the task was issued
	// to. Optional; some tasks are anonymous.
	RequesterID string `json:"requester_id,omitempty"`

	// ClientID identifies the system that requested issuance. Required.
	ClientID string `json:"client_id"`

	// Payload is the issued task in its self-describing stored form.
	// Fixed at creation.
	Payload protocol.Envelope `json:"payload"`

	// ContentID is the client-visible identifier bound at ack time.
	// Transitions from unset to set at most once.
	ContentID string `json:"content_id,omitempty"`

	// Resolution only advances forward: pending -> acknowledged ->
	// completed, with rejected as the failure exit.
	Resolution Resolution `json:"resolution"`

	// FailureReason is the client-supplied reason recorded on rejection.
	FailureReason string `json:"failure_reason,omitempty"`

	// Interactions is the append-only log of validated interactions.
	Interactions []RecordedInteraction `json:"interactions,omitempty"`

	// revision is the store version the record was read at. Unexported;
	// it never travels on the wire.
	revision uint64
}

// Task opens the stored payload into its task variant.
func (wp *WorkPackage) Task() (protocol.Task, error) {
	return wp.Payload.Open()
}

// Expired reports whether the package is past its expiry at the given
// instant. Packages without an expiry never expire.
func (wp *WorkPackage) Expired(now time.Time) bool {
	return wp.ExpiresAt != nil && !now.Before(*wp.ExpiresAt)
}
