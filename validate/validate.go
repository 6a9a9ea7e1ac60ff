package validate

import (
	"fmt"

	"github.com/annokit/annokit/errors"
	"github.com/annokit/annokit/protocol"
)

// Interaction checks a client interaction against the task payload it
// resolves to. Dispatch is on the interaction's declared kind against an
// allow-list per task kind; the payload shape is never inspected to guess
// intent. A nil error means the interaction may be recorded.
func Interaction(task protocol.Task, in protocol.Interaction) error {
	switch v := in.(type) {
	case protocol.TextReply:
		return textReply(task, v)
	case protocol.Rating:
		return rating(task, v)
	case protocol.Ranking:
		return ranking(task, v)
	default:
		return errors.KindMismatch(fmt.Sprintf("unknown interaction kind %q", in.InteractionKind()))
	}
}

// textReply is valid only against conversational task kinds.
func textReply(task protocol.Task, reply protocol.TextReply) error {
	switch task.TaskKind() {
	case protocol.TaskKindInitialPrompt, protocol.TaskKindUserReply, protocol.TaskKindAssistantReply:
	default:
		return mismatch(task, reply)
	}

	if reply.Text == "" {
		return errors.InvalidInput("text reply is empty")
	}
	return nil
}

// rating is valid only against rate-summary tasks and must fall within
// the task's declared scale.
func rating(task protocol.Task, r protocol.Rating) error {
	rate, ok := task.(protocol.RateSummaryTask)
	if !ok {
		return mismatch(task, r)
	}

	if !rate.Scale.Contains(r.Rating) {
		return errors.OutOfRange(fmt.Sprintf(
			"rating %d outside scale [%d, %d]", r.Rating, rate.Scale.Min, rate.Scale.Max))
	}
	return nil
}

// ranking is valid only against ranking task kinds and must be a
// permutation of exactly the candidate indices offered.
func ranking(task protocol.Task, r protocol.Ranking) error {
	rankable, ok := task.(protocol.RankingTask)
	if !ok {
		return mismatch(task, r)
	}

	n := len(rankable.Candidates())
	if len(r.Ranking) != n {
		return errors.InvalidPermutation(fmt.Sprintf(
			"ranking has %d entries, task offered %d candidates", len(r.Ranking), n))
	}

	seen := make([]bool, n)
	for _, idx := range r.Ranking {
		if idx < 0 || idx >= n {
			return errors.InvalidPermutation(fmt.Sprintf("candidate index %d out of range [0, %d)", idx, n))
		}
		if seen[idx] {
			return errors.InvalidPermutation(fmt.Sprintf("candidate index %d ranked twice", idx))
		}
		seen[idx] = true
	}
	return nil
}

func mismatch(task protocol.Task, in protocol.Interaction) error {
	return errors.KindMismatch(fmt.Sprintf(
		"%s interaction does not apply to a %s task", in.InteractionKind(), task.TaskKind()))
}
