// Package prompt turns ranked chapters or whole-domain documents into the
// grounding context block and wraps it in the fixed system instruction.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Nikkoola22/RH-cfdt/internal/domain"
	"github.com/Nikkoola22/RH-cfdt/internal/knowledge"
	"github.com/Nikkoola22/RH-cfdt/internal/retriever"
)

// blockSeparator visually segments the injected sources for the model.
const blockSeparator = "\n\n---\n\n"

const noBodyFallback = "Aucun contenu textuel trouvé pour les chapitres pertinents."

// RankedProvider assembles context for the ranking domain: the bodies of the
// top chapters, or a fallback enumerating every chapter title when nothing
// matches. The returned context is never empty.
type RankedProvider struct {
	index  *knowledge.Index
	ranker domain.Ranker
	log    *zap.Logger
}

// NewRankedProvider wires the ranker and the body store together.
func NewRankedProvider(index *knowledge.Index, ranker domain.Ranker, log *zap.Logger) *RankedProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &RankedProvider{index: index, ranker: ranker, log: log}
}

// Context implements domain.ContextProvider.
func (p *RankedProvider) Context(question string) string {
	ranked, err := p.ranker.Rank(question)
	if err != nil {
		if errors.Is(err, retriever.ErrNoMatch) {
			return p.noMatchFallback()
		}
		p.log.Warn("ranking failed", zap.Error(err))
		return p.noMatchFallback()
	}

	blocks := make([]string, 0, len(ranked))
	for _, sc := range ranked {
		body, ok := p.index.Body(sc.Chapter.ID)
		if !ok || strings.TrimSpace(body) == "" {
			// Data-integrity gap: the catalog references a chapter whose
			// body is missing from the text store. Skip it, keep answering.
			p.log.Warn("chapter body missing from text store",
				zap.Int("chapter_id", sc.Chapter.ID),
				zap.String("title", sc.Chapter.Title))
			continue
		}
		blocks = append(blocks, fmt.Sprintf("Source: %s\nContenu: %s", sc.Chapter.Title, body))
	}
	if len(blocks) == 0 {
		return noBodyFallback
	}
	return strings.Join(blocks, blockSeparator)
}

func (p *RankedProvider) noMatchFallback() string {
	return "Aucun chapitre spécifique trouvé pour cette question. Voici un aperçu général des thèmes: " +
		strings.Join(p.index.Titles(), ", ")
}

// DocumentProvider injects a whole domain document regardless of the question.
type DocumentProvider struct {
	doc string
}

// NewDocumentProvider wraps an already-serialized domain document.
func NewDocumentProvider(doc string) *DocumentProvider {
	return &DocumentProvider{doc: doc}
}

// Context implements domain.ContextProvider.
func (p *DocumentProvider) Context(string) string { return p.doc }
