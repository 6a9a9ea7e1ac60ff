package protocol

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestConcreteKindsExcludeRandom(t *testing.T) {
	for _, k := range ConcreteKinds() {
		if k == TaskKindRandom {
			t.Fatal("random sentinel must not appear in the concrete kind set")
		}
		if !k.Concrete() {
			t.Errorf("kind %s should report Concrete", k)
		}
	}
	if TaskKindRandom.Concrete() {
		t.Error("random sentinel should not be concrete")
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	tasks := []Task{
		SummarizeStoryTask{Story: "a long story"},
		RateSummaryTask{FullText: "text", Summary: "sum", Scale: RatingScale{Min: 1, Max: 5}},
		InitialPromptTask{Hint: "ask about the weather"},
		UserReplyTask{Conversation: Conversation{Messages: []ConversationMessage{
			{Text: "hello", IsAssistant: false},
		}}},
		AssistantReplyTask{Conversation: Conversation{Messages: []ConversationMessage{
			{Text: "hi there", IsAssistant: true},
		}}},
		RankInitialPromptsTask{Prompts: []string{"p1", "p2"}},
		RankUserRepliesTask{Replies: []string{"r1", "r2"}},
		RankAssistantRepliesTask{Replies: []string{"a1", "a2", "a3"}},
	}

	for _, task := range tasks {
		env, err := Seal(task)
		if err != nil {
			t.Fatalf("%s: seal failed: %v", task.TaskKind(), err)
		}
		if env.Kind != task.TaskKind() {
			t.Errorf("%s: envelope kind mismatch: %s", task.TaskKind(), env.Kind)
		}

		got, err := env.Open()
		if err != nil {
			t.Fatalf("%s: open failed: %v", task.TaskKind(), err)
		}
		if got.TaskKind() != task.TaskKind() {
			t.Errorf("%s: round-trip changed kind to %s", task.TaskKind(), got.TaskKind())
		}
	}
}

func TestEnvelopeUnknownKindRoundTrip(t *testing.T) {
	raw := json.RawMessage(`{"future_field":"value","n":42}`)
	env := Envelope{Kind: "hold_debate", Data: raw}

	task, err := env.Open()
	if err != nil {
		t.Fatalf("open of unknown kind failed: %v", err)
	}

	opaque, ok := task.(OpaqueTask)
	if !ok {
		t.Fatalf("expected OpaqueTask, got %T", task)
	}
	if opaque.TaskKind() != "hold_debate" {
		t.Errorf("expected kind preserved, got %s", opaque.TaskKind())
	}

	resealed, err := Seal(opaque)
	if err != nil {
		t.Fatalf("reseal failed: %v", err)
	}
	if resealed.Kind != env.Kind {
		t.Errorf("reseal changed kind: %s", resealed.Kind)
	}
	if !bytes.Equal(resealed.Data, raw) {
		t.Errorf("reseal changed payload bytes: %s", resealed.Data)
	}
}

func TestRatingScale(t *testing.T) {
	scale := RatingScale{Min: 1, Max: 5}
	if !scale.Valid() {
		t.Error("1..5 should be a valid scale")
	}
	if (RatingScale{Min: 5, Max: 5}).Valid() {
		t.Error("min == max should be invalid")
	}

	for v, want := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, 7: false} {
		if scale.Contains(v) != want {
			t.Errorf("Contains(%d): expected %v", v, want)
		}
	}
}

func TestRankingCandidates(t *testing.T) {
	var rt RankingTask = RankUserRepliesTask{Replies: []string{"x", "y"}}
	if len(rt.Candidates()) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(rt.Candidates()))
	}
}

func TestInteractionWireRoundTrip(t *testing.T) {
	interactions := []Interaction{
		TextReply{PostID: "p1", Text: "a reply", RequesterID: "u1"},
		Rating{PostID: "p2", Rating: 4},
		Ranking{PostID: "p3", Ranking: []int{2, 0, 1}},
	}

	for _, in := range interactions {
		data, err := MarshalInteraction(in)
		if err != nil {
			t.Fatalf("%s: marshal failed: %v", in.InteractionKind(), err)
		}

		got, err := UnmarshalInteraction(data)
		if err != nil {
			t.Fatalf("%s: unmarshal failed: %v", in.InteractionKind(), err)
		}
		if got.InteractionKind() != in.InteractionKind() {
			t.Errorf("kind changed: %s -> %s", in.InteractionKind(), got.InteractionKind())
		}
		if got.ContentID() != in.ContentID() {
			t.Errorf("content id changed: %s -> %s", in.ContentID(), got.ContentID())
		}
	}
}

func TestInteractionKindOnWire(t *testing.T) {
	data, err := MarshalInteraction(Rating{PostID: "p1", Rating: 3})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if fields["kind"] != "rating" {
		t.Errorf("expected explicit kind discriminant on the wire, got %v", fields["kind"])
	}
}

func TestUnmarshalUnknownInteractionKind(t *testing.T) {
	_, err := UnmarshalInteraction([]byte(`{"kind":"emoji_react","post_id":"p1"}`))
	if err == nil {
		t.Fatal("expected error for unknown interaction kind")
	}
}
