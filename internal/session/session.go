// Package session drives one conversation: domain selection, transcript
// bookkeeping, and the request/response cycle against the completion service.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Nikkoola22/RH-cfdt/internal/domain"
	"github.com/Nikkoola22/RH-cfdt/internal/prompt"
)

// State is the orchestrator's view state.
type State int

const (
	StateMenu State = iota
	StateChat
)

// genericErrorText is appended as a normal assistant message when the
// external call fails, so the conversation can continue.
const genericErrorText = "Désolé, une erreur est survenue. Veuillez réessayer ou contacter un représentant si le problème persiste."

// Session is the conversation state machine. Exactly one request may be in
// flight; a submit while pending is a no-op. The mutex exists because the UI
// resolves requests on a separate goroutine.
type Session struct {
	mu         sync.Mutex
	state      State
	domain     domain.Domain
	transcript []domain.Message
	pending    bool
	generation uint64

	providers map[domain.Domain]domain.ContextProvider
	client    domain.CompletionClient
	log       *zap.Logger
	timeout   time.Duration
	now       func() time.Time
}

// New creates a session in the menu state. timeout bounds each completion
// call; zero disables the deadline.
func New(providers map[domain.Domain]domain.ContextProvider, client domain.CompletionClient, log *zap.Logger, timeout time.Duration) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		state:     StateMenu,
		providers: providers,
		client:    client,
		log:       log,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Select enters the chat state for d, resetting the transcript to exactly one
// synthesized greeting for the chosen domain.
func (s *Session) Select(d domain.Domain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateChat
	s.domain = d
	s.pending = false
	s.generation++
	s.transcript = []domain.Message{{
		Role:      domain.RoleAssistant,
		Content:   d.Greeting(),
		Timestamp: s.now(),
	}}
}

// Back unconditionally discards the transcript and returns to the menu.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateMenu
	s.transcript = nil
	s.pending = false
	s.generation++
}

// Submit appends the user question and marks the request in flight. It
// reports false, without touching the transcript, when the question is
// empty, a request is already pending, or no domain is selected. A true
// return must be followed by Resolve.
func (s *Session) Submit(question string) bool {
	q := strings.TrimSpace(question)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateChat || s.pending || q == "" {
		return false
	}
	s.transcript = append(s.transcript, domain.Message{
		Role:      domain.RoleUser,
		Content:   q,
		Timestamp: s.now(),
	})
	s.pending = true
	return true
}

// Resolve performs the external call for the in-flight question and appends
// the answer, or the generic failure text, as an assistant message. The
// pending flag is always cleared. Safe to call from a separate goroutine.
func (s *Session) Resolve(ctx context.Context) (domain.Message, bool) {
	s.mu.Lock()
	if !s.pending || len(s.transcript) == 0 {
		s.mu.Unlock()
		return domain.Message{}, false
	}
	active := s.domain
	generation := s.generation
	question := s.transcript[len(s.transcript)-1].Content
	messages := s.buildRequestLocked(question)
	s.mu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	answer, err := s.client.Complete(ctx, messages)
	if err != nil {
		s.log.Warn("completion call failed", zap.Stringer("domain", active), zap.Error(err))
		answer = genericErrorText
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending || s.generation != generation {
		// The conversation was discarded or replaced while the call was in
		// flight; the late answer has nowhere to go.
		return domain.Message{}, false
	}
	msg := domain.Message{Role: domain.RoleAssistant, Content: answer, Timestamp: s.now()}
	s.transcript = append(s.transcript, msg)
	s.pending = false
	return msg, true
}

// buildRequestLocked assembles system + prior history + question. The
// transcript head is the synthesized greeting and is never replayed.
func (s *Session) buildRequestLocked(question string) []domain.PromptMessage {
	contextBlock := s.providers[s.domain].Context(question)
	messages := make([]domain.PromptMessage, 0, len(s.transcript)+1)
	messages = append(messages, domain.PromptMessage{
		Role:    string(domain.RoleSystem),
		Content: prompt.SystemPrompt(contextBlock),
	})
	for _, m := range s.transcript[1:] {
		messages = append(messages, domain.PromptMessage{Role: string(m.Role), Content: m.Content})
	}
	return messages
}

// Messages returns a snapshot of the transcript.
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Pending reports whether a request is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// State returns the current view state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Domain returns the active domain; valid only in the chat state.
func (s *Session) Domain() domain.Domain {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.domain
}

