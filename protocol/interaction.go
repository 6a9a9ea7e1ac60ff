package protocol

import (
	"encoding/json"
	"fmt"
)

// InteractionKind discriminates the interaction union.
type InteractionKind string

const (
	InteractionTextReply InteractionKind = "text_reply"
	InteractionRating    InteractionKind = "rating"
	InteractionRanking   InteractionKind = "ranking"
)

// String returns the string representation of the kind.
func (k InteractionKind) String() string {
	return string(k)
}

// Interaction is a client-submitted response to a previously acknowledged
// task, addressed by the content id the client bound at ack time.
type Interaction interface {
	// InteractionKind returns the discriminant for this variant.
	InteractionKind() InteractionKind

	// ContentID returns the bound content id this interaction refers to.
	ContentID() string
}

// TextReply is free text contributed against a conversational task.
type TextReply struct {
	PostID      string `json:"post_id"`
	Text        string `json:"text"`
	RequesterID string `json:"requester_id,omitempty"`
}

// InteractionKind implements Interaction.
func (TextReply) InteractionKind() InteractionKind { return InteractionTextReply }

// ContentID implements Interaction.
func (r TextReply) ContentID() string { return r.PostID }

// Rating is a scalar judgement within the task's declared scale.
type Rating struct {
	PostID      string `json:"post_id"`
	Rating      int    `json:"rating"`
	RequesterID string `json:"requester_id,omitempty"`
}

// InteractionKind implements Interaction.
func (Rating) InteractionKind() InteractionKind { return InteractionRating }

// ContentID implements Interaction.
func (r Rating) ContentID() string { return r.PostID }

// Ranking is an ordered permutation of the candidate indices a ranking
// task offered. Ranking[0] is the index of the best candidate.
type Ranking struct {
	PostID      string `json:"post_id"`
	Ranking     []int  `json:"ranking"`
	RequesterID string `json:"requester_id,omitempty"`
}

// InteractionKind implements Interaction.
func (Ranking) InteractionKind() InteractionKind { return InteractionRanking }

// ContentID implements Interaction.
func (r Ranking) ContentID() string { return r.PostID }

var (
	_ Interaction = TextReply{}
	_ Interaction = Rating{}
	_ Interaction = Ranking{}
)

// interactionEnvelope is the wire form of an interaction: an explicit kind
// discriminant next to the variant fields.
type interactionEnvelope struct {
	Kind InteractionKind `json:"kind"`
}

// MarshalInteraction encodes an interaction with its kind discriminant.
func MarshalInteraction(in Interaction) ([]byte, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal interaction: %w", err)
	}

	// Splice the discriminant into the variant's own object.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("marshal interaction: %w", err)
	}
	kind, err := json.Marshal(in.InteractionKind())
	if err != nil {
		return nil, err
	}
	fields["kind"] = kind
	return json.Marshal(fields)
}

// UnmarshalInteraction decodes wire data into its interaction variant,
// dispatching on the declared kind rather than the payload shape.
func UnmarshalInteraction(data []byte) (Interaction, error) {
	var env interactionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal interaction: %w", err)
	}

	switch env.Kind {
	case InteractionTextReply:
		var r TextReply
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("unmarshal text reply: %w", err)
		}
		return r, nil
	case InteractionRating:
		var r Rating
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("unmarshal rating: %w", err)
		}
		return r, nil
	case InteractionRanking:
		var r Ranking
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("unmarshal ranking: %w", err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown interaction kind %q", env.Kind)
	}
}
