package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope is the self-describing stored form of a task payload.
// The kind travels next to the raw variant data, so records written by a
// newer version with kinds this code does not know still round-trip
// unchanged through storage.
type Envelope struct {
	Kind TaskKind        `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// OpaqueTask preserves a payload whose kind this version does not know.
// It re-seals byte-for-byte.
type OpaqueTask struct {
	Kind TaskKind
	Raw  json.RawMessage
}

// TaskKind implements Task.
func (t OpaqueTask) TaskKind() TaskKind { return t.Kind }

// Seal wraps a task into its stored envelope form.
func Seal(t Task) (Envelope, error) {
	if opaque, ok := t.(OpaqueTask); ok {
		return Envelope{Kind: opaque.Kind, Data: opaque.Raw}, nil
	}

	data, err := json.Marshal(t)
	if err != nil {
		return Envelope{}, fmt.Errorf("seal task payload: %w", err)
	}
	return Envelope{Kind: t.TaskKind(), Data: data}, nil
}

// Open decodes the envelope back into its task variant. Unknown kinds
// decode to OpaqueTask so read paths that do not interpret the payload
// can still carry it.
func (e Envelope) Open() (Task, error) {
	var t Task
	switch e.Kind {
	case TaskKindSummarizeStory:
		t = &SummarizeStoryTask{}
	case TaskKindRateSummary:
		t = &RateSummaryTask{}
	case TaskKindInitialPrompt:
		t = &InitialPromptTask{}
	case TaskKindUserReply:
		t = &UserReplyTask{}
	case TaskKindAssistantReply:
		t = &AssistantReplyTask{}
	case TaskKindRankInitialPrompts:
		t = &RankInitialPromptsTask{}
	case TaskKindRankUserReplies:
		t = &RankUserRepliesTask{}
	case TaskKindRankAssistantReplies:
		t = &RankAssistantRepliesTask{}
	default:
		return OpaqueTask{Kind: e.Kind, Raw: e.Data}, nil
	}

	if err := json.Unmarshal(e.Data, t); err != nil {
		return nil, fmt.Errorf("open %s payload: %w", e.Kind, err)
	}

	// Return variants by value, matching how they are constructed.
	switch v := t.(type) {
	case *SummarizeStoryTask:
		return *v, nil
	case *RateSummaryTask:
		return *v, nil
	case *InitialPromptTask:
		return *v, nil
	case *UserReplyTask:
		return *v, nil
	case *AssistantReplyTask:
		return *v, nil
	case *RankInitialPromptsTask:
		return *v, nil
	case *RankUserRepliesTask:
		return *v, nil
	case *RankAssistantRepliesTask:
		return *v, nil
	default:
		return t, nil
	}
}
