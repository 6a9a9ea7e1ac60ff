package validate

import (
	"testing"

	"github.com/annokit/annokit/errors"
	"github.com/annokit/annokit/protocol"
)

func TestTextReplyAgainstConversationalTasks(t *testing.T) {
	reply := protocol.TextReply{PostID: "p1", Text: "an answer"}

	for _, task := range []protocol.Task{
		protocol.InitialPromptTask{},
		protocol.UserReplyTask{},
		protocol.AssistantReplyTask{},
	} {
		if err := Interaction(task, reply); err != nil {
			t.Errorf("%s: text reply should be valid, got %v", task.TaskKind(), err)
		}
	}
}

func TestTextReplyAgainstNonConversationalTask(t *testing.T) {
	reply := protocol.TextReply{PostID: "p1", Text: "an answer"}
	task := protocol.RankInitialPromptsTask{Prompts: []string{"a", "b"}}

	err := Interaction(task, reply)
	if !errors.Is(err, errors.ErrCodeKindMismatch) {
		t.Errorf("expected KIND_MISMATCH, got %v", err)
	}
}

func TestEmptyTextReply(t *testing.T) {
	err := Interaction(protocol.UserReplyTask{}, protocol.TextReply{PostID: "p1"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for empty text, got %v", err)
	}
}

func TestRatingWithinScale(t *testing.T) {
	task := protocol.RateSummaryTask{Scale: protocol.RatingScale{Min: 1, Max: 5}}

	for _, v := range []int{1, 3, 5} {
		if err := Interaction(task, protocol.Rating{PostID: "p1", Rating: v}); err != nil {
			t.Errorf("rating %d should be valid, got %v", v, err)
		}
	}
}

func TestRatingOutOfRange(t *testing.T) {
	task := protocol.RateSummaryTask{Scale: protocol.RatingScale{Min: 1, Max: 5}}

	for _, v := range []int{0, 6, 7, -1} {
		err := Interaction(task, protocol.Rating{PostID: "p1", Rating: v})
		if !errors.Is(err, errors.ErrCodeOutOfRange) {
			t.Errorf("rating %d: expected OUT_OF_RANGE, got %v", v, err)
		}
	}
}

func TestRatingAgainstWrongTaskKind(t *testing.T) {
	err := Interaction(protocol.SummarizeStoryTask{}, protocol.Rating{PostID: "p1", Rating: 3})
	if !errors.Is(err, errors.ErrCodeKindMismatch) {
		t.Errorf("expected KIND_MISMATCH, got %v", err)
	}
}

func TestRankingValidPermutations(t *testing.T) {
	task := protocol.RankAssistantRepliesTask{Replies: []string{"a", "b", "c"}}

	for _, ranking := range [][]int{{0, 1, 2}, {2, 0, 1}, {1, 2, 0}} {
		if err := Interaction(task, protocol.Ranking{PostID: "p1", Ranking: ranking}); err != nil {
			t.Errorf("ranking %v should be valid, got %v", ranking, err)
		}
	}
}

func TestRankingInvalidPermutations(t *testing.T) {
	task := protocol.RankUserRepliesTask{Replies: []string{"a", "b"}}

	tests := []struct {
		name    string
		ranking []int
	}{
		{"omission", []int{0}},
		{"duplicate", []int{0, 0}},
		{"out of range", []int{0, 2}},
		{"negative", []int{0, -1}},
		{"too long", []int{0, 1, 1}},
	}

	for _, tt := range tests {
		err := Interaction(task, protocol.Ranking{PostID: "p1", Ranking: tt.ranking})
		if !errors.Is(err, errors.ErrCodeInvalidPermutation) {
			t.Errorf("%s: expected INVALID_PERMUTATION, got %v", tt.name, err)
		}
	}
}

func TestRankingAgainstNonRankingTask(t *testing.T) {
	err := Interaction(protocol.UserReplyTask{}, protocol.Ranking{PostID: "p1", Ranking: []int{0}})
	if !errors.Is(err, errors.ErrCodeKindMismatch) {
		t.Errorf("expected KIND_MISMATCH, got %v", err)
	}
}

func TestInteractionAgainstOpaqueTask(t *testing.T) {
	task := protocol.OpaqueTask{Kind: "hold_debate"}
	err := Interaction(task, protocol.TextReply{PostID: "p1", Text: "hi"})
	if !errors.Is(err, errors.ErrCodeKindMismatch) {
		t.Errorf("expected KIND_MISMATCH against unknown kind, got %v", err)
	}
}
