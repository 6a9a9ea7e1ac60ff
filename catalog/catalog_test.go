package catalog

import (
	"math/rand"
	"testing"

	"github.com/annokit/annokit/errors"
	"github.com/annokit/annokit/protocol"
)

func newTestCatalog() *Catalog {
	return New(WithRand(rand.New(rand.NewSource(42))))
}

func TestGenerateEveryKind(t *testing.T) {
	c := newTestCatalog()

	for _, kind := range c.Kinds() {
		task, err := c.Generate(kind, Context{})
		if err != nil {
			t.Fatalf("%s: generate failed: %v", kind, err)
		}
		if task.TaskKind() != kind {
			t.Errorf("expected kind %s, got %s", kind, task.TaskKind())
		}
	}
}

func TestGenerateRandomNeverReturnsRandom(t *testing.T) {
	c := newTestCatalog()

	for i := 0; i < 200; i++ {
		task, err := c.Generate(protocol.TaskKindRandom, Context{})
		if err != nil {
			t.Fatalf("generate random failed: %v", err)
		}
		if task.TaskKind() == protocol.TaskKindRandom {
			t.Fatal("generated task tagged with the random sentinel")
		}
	}
}

func TestGenerateRandomCoversAllKinds(t *testing.T) {
	c := newTestCatalog()

	seen := make(map[protocol.TaskKind]bool)
	for i := 0; i < 2000; i++ {
		task, err := c.Generate(protocol.TaskKindRandom, Context{})
		if err != nil {
			t.Fatalf("generate random failed: %v", err)
		}
		seen[task.TaskKind()] = true
	}

	for _, kind := range protocol.ConcreteKinds() {
		if !seen[kind] {
			t.Errorf("kind %s never produced within bounded trials", kind)
		}
	}
}

func TestGenerateUnsupportedKind(t *testing.T) {
	c := newTestCatalog()

	_, err := c.Generate("juggle_chainsaws", Context{})
	if !errors.Is(err, errors.ErrCodeUnsupportedTaskKind) {
		t.Errorf("expected UNSUPPORTED_TASK_KIND, got %v", err)
	}
}

func TestRateSummaryScaleConsistent(t *testing.T) {
	c := newTestCatalog()

	task, err := c.Generate(protocol.TaskKindRateSummary, Context{})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	rate := task.(protocol.RateSummaryTask)
	if !rate.Scale.Valid() {
		t.Errorf("generated scale must satisfy min < max, got %+v", rate.Scale)
	}
	if rate.FullText == "" || rate.Summary == "" {
		t.Error("rate task must carry full text and summary")
	}
}

func TestGenerateUsesContextConversation(t *testing.T) {
	c := newTestCatalog()

	conv := protocol.Conversation{Messages: []protocol.ConversationMessage{
		{Text: "custom opener", IsAssistant: false},
	}}

	task, err := c.Generate(protocol.TaskKindAssistantReply, Context{Conversation: &conv})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	got := task.(protocol.AssistantReplyTask)
	if len(got.Conversation.Messages) != 1 || got.Conversation.Messages[0].Text != "custom opener" {
		t.Errorf("expected context conversation to be embedded, got %+v", got.Conversation)
	}
}

func TestRankingTasksCarryCandidates(t *testing.T) {
	c := newTestCatalog()

	for _, kind := range []protocol.TaskKind{
		protocol.TaskKindRankInitialPrompts,
		protocol.TaskKindRankUserReplies,
		protocol.TaskKindRankAssistantReplies,
	} {
		task, err := c.Generate(kind, Context{})
		if err != nil {
			t.Fatalf("%s: generate failed: %v", kind, err)
		}
		ranking, ok := task.(protocol.RankingTask)
		if !ok {
			t.Fatalf("%s: expected a RankingTask, got %T", kind, task)
		}
		if len(ranking.Candidates()) < 2 {
			t.Errorf("%s: ranking task needs at least 2 candidates, got %d", kind, len(ranking.Candidates()))
		}
	}
}
