package domain

import "context"

// Ranker selects the chapters most relevant to a raw user question.
// Implementations return ErrNoMatch-style sentinel errors when nothing scores;
// callers distinguish that from an empty-but-matched shortlist.
type Ranker interface {
	Rank(question string) ([]ScoredChapter, error)
}

// ContextProvider renders the grounding context injected into the system
// prompt for one domain. Implementations never return an empty string.
type ContextProvider interface {
	Context(question string) string
}

// CompletionClient is the external text-completion service boundary.
type CompletionClient interface {
	Complete(ctx context.Context, messages []PromptMessage) (string, error)
}
