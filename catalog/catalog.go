package catalog

import (
	"math/rand"
	"sync"
	"time"

	"github.com/annokit/annokit/errors"
	"github.com/annokit/annokit/protocol"
)

// Context carries the prior state a task may be built from.
type Context struct {
	// Conversation overrides the corpus conversation for reply and
	// reply-ranking tasks. Nil means use the corpus sample.
	Conversation *protocol.Conversation
}

// Builder constructs one fully-populated task variant.
type Builder func(c *Catalog, ctx Context) (protocol.Task, error)

// Catalog maps task kinds to constructors. Generation is side-effect-free:
// a pure function of kind, context, corpus and the injected randomness.
type Catalog struct {
	mu       sync.Mutex
	rng      *rand.Rand
	corpus   Corpus
	builders map[protocol.TaskKind]Builder
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRand injects the randomness source used for kind selection and
// content sampling. Tests pass a seeded source for determinism.
func WithRand(rng *rand.Rand) Option {
	return func(c *Catalog) {
		c.rng = rng
	}
}

// WithCorpus replaces the sample content tasks are built from.
func WithCorpus(corpus Corpus) Option {
	return func(c *Catalog) {
		c.corpus = corpus
	}
}

// New creates a catalog with a builder registered for every concrete kind.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		corpus: DefaultCorpus(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.builders = map[protocol.TaskKind]Builder{
		protocol.TaskKindSummarizeStory:       buildSummarizeStory,
		protocol.TaskKindRateSummary:          buildRateSummary,
		protocol.TaskKindInitialPrompt:        buildInitialPrompt,
		protocol.TaskKindUserReply:            buildUserReply,
		protocol.TaskKindAssistantReply:       buildAssistantReply,
		protocol.TaskKindRankInitialPrompts:   buildRankInitialPrompts,
		protocol.TaskKindRankUserReplies:      buildRankUserReplies,
		protocol.TaskKindRankAssistantReplies: buildRankAssistantReplies,
	}
	return c
}

// Kinds returns the kinds this catalog can generate, excluding the
// random sentinel.
func (c *Catalog) Kinds() []protocol.TaskKind {
	return protocol.ConcreteKinds()
}

// Generate produces a task of the requested kind.
//
// The random sentinel resolves to a concrete kind sampled uniformly from
// the concrete kind set; the sentinel is absent from that set, so
// re-selection cannot loop. Returns UNSUPPORTED_TASK_KIND for anything
// not in the registry.
func (c *Catalog) Generate(kind protocol.TaskKind, ctx Context) (protocol.Task, error) {
	if kind == protocol.TaskKindRandom {
		kind = c.pickKind()
	}

	builder, ok := c.builders[kind]
	if !ok {
		return nil, errors.UnsupportedTaskKind(kind.String())
	}
	return builder(c, ctx)
}

// pickKind samples a concrete kind uniformly.
func (c *Catalog) pickKind() protocol.TaskKind {
	kinds := protocol.ConcreteKinds()
	c.mu.Lock()
	defer c.mu.Unlock()
	return kinds[c.rng.Intn(len(kinds))]
}

// conversation resolves the conversation to embed: context first,
// corpus sample otherwise.
func conversation(ctx Context, fallback protocol.Conversation) protocol.Conversation {
	if ctx.Conversation != nil {
		return *ctx.Conversation
	}
	return fallback
}

func buildSummarizeStory(c *Catalog, _ Context) (protocol.Task, error) {
	return protocol.SummarizeStoryTask{Story: c.corpus.Story}, nil
}

func buildRateSummary(c *Catalog, _ Context) (protocol.Task, error) {
	if !c.corpus.RatingScale.Valid() {
		return nil, errors.Internal("corpus rating scale has min >= max")
	}
	return protocol.RateSummaryTask{
		FullText: c.corpus.Story,
		Summary:  c.corpus.Summary,
		Scale:    c.corpus.RatingScale,
	}, nil
}

func buildInitialPrompt(c *Catalog, _ Context) (protocol.Task, error) {
	return protocol.InitialPromptTask{Hint: c.corpus.PromptHint}, nil
}

func buildUserReply(c *Catalog, ctx Context) (protocol.Task, error) {
	return protocol.UserReplyTask{
		Conversation: conversation(ctx, c.corpus.UserConversation),
	}, nil
}

func buildAssistantReply(c *Catalog, ctx Context) (protocol.Task, error) {
	return protocol.AssistantReplyTask{
		Conversation: conversation(ctx, c.corpus.AssistantConversation),
	}, nil
}

func buildRankInitialPrompts(c *Catalog, _ Context) (protocol.Task, error) {
	return protocol.RankInitialPromptsTask{Prompts: c.corpus.SeedPrompts}, nil
}

func buildRankUserReplies(c *Catalog, ctx Context) (protocol.Task, error) {
	return protocol.RankUserRepliesTask{
		Conversation: conversation(ctx, c.corpus.UserConversation),
		Replies:      c.corpus.CandidateUserReplies,
	}, nil
}

func buildRankAssistantReplies(c *Catalog, ctx Context) (protocol.Task, error) {
	return protocol.RankAssistantRepliesTask{
		Conversation: conversation(ctx, c.corpus.AssistantConversation),
		Replies:      c.corpus.CandidateAssistantReplies,
	}, nil
}
