package catalog

import "github.com/annokit/annokit/protocol"

// Corpus is the sample content tasks are built from when the generation
// context carries no prior state. Deployments replace this with real
// sampled content; the default mirrors a minimal placeholder set.
type Corpus struct {
	// Story is the source text for summarize and rate tasks.
	Story string

	// Summary is the candidate summary rated against Story.
	Summary string

	// RatingScale bounds rate-summary tasks. Must satisfy Min < Max.
	RatingScale protocol.RatingScale

	// PromptHint is optional guidance attached to initial-prompt tasks.
	PromptHint string

	// SeedPrompts are the candidates for prompt-ranking tasks.
	SeedPrompts []string

	// UserConversation seeds user-reply and user-reply-ranking tasks.
	UserConversation protocol.Conversation

	// AssistantConversation seeds assistant-reply and
	// assistant-reply-ranking tasks.
	AssistantConversation protocol.Conversation

	// CandidateUserReplies are the candidates for user-reply ranking.
	CandidateUserReplies []string

	// CandidateAssistantReplies are the candidates for assistant-reply
	// ranking.
	CandidateAssistantReplies []string
}

// DefaultCorpus returns built-in placeholder content.
func DefaultCorpus() Corpus {
	return Corpus{
		Story:       "This is a story. A very long story. So long, it needs to be summarized.",
		Summary:     "This is a summary.",
		RatingScale: protocol.RatingScale{Min: 1, Max: 5},
		PromptHint:  "Ask the assistant about a current event.",
		SeedPrompts: []string{
			"Please write a story about a time you were happy.",
			"Please write a story about a time you were sad.",
		},
		UserConversation: protocol.Conversation{
			Messages: []protocol.ConversationMessage{
				{Text: "Hey, assistant, what's going on in the world?", IsAssistant: false},
				{Text: "I'm not sure I understood correctly, could you rephrase that?", IsAssistant: true},
			},
		},
		AssistantConversation: protocol.Conversation{
			Messages: []protocol.ConversationMessage{
				{Text: "Hey, assistant, write me an English essay about water.", IsAssistant: false},
			},
		},
		CandidateUserReplies: []string{
			"Oh come oooooon!",
			"What are the news?",
		},
		CandidateAssistantReplies: []string{
			"I'm not sure I understood correctly, could you rephrase that?",
			"The world is fine. All good.",
			"Crap is hitting the fan. Start farming.",
		},
	}
}
