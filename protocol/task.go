package protocol

// TaskKind discriminates the task union. The set is closed: adding a kind
// means touching the catalog and the validator, nothing else.
type TaskKind string

const (
	// TaskKindRandom is a request-only sentinel: "pick a kind for me".
	// A generated task never carries this kind.
	TaskKindRandom TaskKind = "random"

	TaskKindSummarizeStory       TaskKind = "summarize_story"
	TaskKindRateSummary          TaskKind = "rate_summary"
	TaskKindInitialPrompt        TaskKind = "initial_prompt"
	TaskKindUserReply            TaskKind = "user_reply"
	TaskKindAssistantReply       TaskKind = "assistant_reply"
	TaskKindRankInitialPrompts   TaskKind = "rank_initial_prompts"
	TaskKindRankUserReplies      TaskKind = "rank_user_replies"
	TaskKindRankAssistantReplies TaskKind = "rank_assistant_replies"
)

// String returns the string representation of the kind.
func (k TaskKind) String() string {
	return string(k)
}

// Concrete returns true for kinds a generated task may carry.
func (k TaskKind) Concrete() bool {
	switch k {
	case TaskKindSummarizeStory, TaskKindRateSummary, TaskKindInitialPrompt,
		TaskKindUserReply, TaskKindAssistantReply, TaskKindRankInitialPrompts,
		TaskKindRankUserReplies, TaskKindRankAssistantReplies:
		return true
	default:
		return false
	}
}

// ConcreteKinds returns all kinds a generated task may carry.
// The random sentinel is excluded by construction, so sampling from this
// set can never re-select it.
func ConcreteKinds() []TaskKind {
	return []TaskKind{
		TaskKindSummarizeStory,
		TaskKindRateSummary,
		TaskKindInitialPrompt,
		TaskKindUserReply,
		TaskKindAssistantReply,
		TaskKindRankInitialPrompts,
		TaskKindRankUserReplies,
		TaskKindRankAssistantReplies,
	}
}

// Task is one unit-of-work description issued to a client.
// Tasks are immutable once generated.
type Task interface {
	// TaskKind returns the discriminant for this variant.
	TaskKind() TaskKind
}

// RankingTask is implemented by task variants that offer an ordered set of
// candidates for the client to rank.
type RankingTask interface {
	Task

	// Candidates returns the ordered candidate strings offered for ranking.
	Candidates() []string
}

// ConversationMessage is a single turn in a prior conversation.
type ConversationMessage struct {
	Text        string `json:"text"`
	IsAssistant bool   `json:"is_assistant"`
}

// Conversation is an ordered exchange between a user and the assistant.
type Conversation struct {
	Messages []ConversationMessage `json:"messages"`
}

// RatingScale declares the inclusive bounds for a rating task.
type RatingScale struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Valid returns true if the scale bounds are internally consistent.
func (s RatingScale) Valid() bool {
	return s.Min < s.Max
}

// Contains returns true if v falls within the scale, bounds inclusive.
func (s RatingScale) Contains(v int) bool {
	return v >= s.Min && v <= s.Max
}

// SummarizeStoryTask asks the client to produce a summary of a story.
type SummarizeStoryTask struct {
	Story string `json:"story"`
}

// TaskKind implements Task.
func (SummarizeStoryTask) TaskKind() TaskKind { return TaskKindSummarizeStory }

// RateSummaryTask asks the client to rate a summary against its full text
// on the declared scale.
type RateSummaryTask struct {
	FullText string      `json:"full_text"`
	Summary  string      `json:"summary"`
	Scale    RatingScale `json:"scale"`
}

// TaskKind implements Task.
func (RateSummaryTask) TaskKind() TaskKind { return TaskKindRateSummary }

// InitialPromptTask asks the client to contribute a fresh opening prompt.
// Hint is optional guidance.
type InitialPromptTask struct {
	Hint string `json:"hint,omitempty"`
}

// TaskKind implements Task.
func (InitialPromptTask) TaskKind() TaskKind { return TaskKindInitialPrompt }

// UserReplyTask asks the client to reply to the conversation as the user.
type UserReplyTask struct {
	Conversation Conversation `json:"conversation"`
}

// TaskKind implements Task.
func (UserReplyTask) TaskKind() TaskKind { return TaskKindUserReply }

// AssistantReplyTask asks the client to reply as the assistant.
type AssistantReplyTask struct {
	Conversation Conversation `json:"conversation"`
}

// TaskKind implements Task.
func (AssistantReplyTask) TaskKind() TaskKind { return TaskKindAssistantReply }

// RankInitialPromptsTask asks the client to order candidate opening prompts.
type RankInitialPromptsTask struct {
	Prompts []string `json:"prompts"`
}

// TaskKind implements Task.
func (RankInitialPromptsTask) TaskKind() TaskKind { return TaskKindRankInitialPrompts }

// Candidates implements RankingTask.
func (t RankInitialPromptsTask) Candidates() []string { return t.Prompts }

// RankUserRepliesTask asks the client to order candidate user replies to
// the given conversation.
type RankUserRepliesTask struct {
	Conversation Conversation `json:"conversation"`
	Replies      []string     `json:"replies"`
}

// TaskKind implements Task.
func (RankUserRepliesTask) TaskKind() TaskKind { return TaskKindRankUserReplies }

// Candidates implements RankingTask.
func (t RankUserRepliesTask) Candidates() []string { return t.Replies }

// RankAssistantRepliesTask asks the client to order candidate assistant
// replies to the given conversation.
type RankAssistantRepliesTask struct {
	Conversation Conversation `json:"conversation"`
	Replies      []string     `json:"replies"`
}

// TaskKind implements Task.
func (RankAssistantRepliesTask) TaskKind() TaskKind { return TaskKindRankAssistantReplies }

// Candidates implements RankingTask.
func (t RankAssistantRepliesTask) Candidates() []string { return t.Replies }

// Compile-time checks that every variant satisfies the intended interfaces.
var (
	_ Task = SummarizeStoryTask{}
	_ Task = RateSummaryTask{}
	_ Task = InitialPromptTask{}
	_ Task = UserReplyTask{}
	_ Task = AssistantReplyTask{}

	_ RankingTask = RankInitialPromptsTask{}
	_ RankingTask = RankUserRepliesTask{}
	_ RankingTask = RankAssistantRepliesTask{}
)
