// Package knowledge holds the in-memory knowledge base: the working-time
// chapter catalog with its body texts, and the whole-document sources for the
// domains that do not use ranking. The index is built once at startup and is
// read-only afterwards, so concurrent readers need no locking.
package knowledge

import (
	"fmt"

	"github.com/Nikkoola22/RH-cfdt/internal/domain"
)

// Index is the immutable catalog of grounding material.
type Index struct {
	chapters []domain.Chapter
	bodies   map[int]string
	docs     map[domain.Domain]string
}

// New builds an index from already-parsed data. Catalog order is preserved:
// it is the canonical display order and the ranking tie-break.
func New(chapters []domain.Chapter, bodies map[int]string, docs map[domain.Domain]string) (*Index, error) {
	if len(chapters) == 0 {
		return nil, fmt.Errorf("empty chapter catalog")
	}
	seen := make(map[int]struct{}, len(chapters))
	for _, c := range chapters {
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("duplicate chapter id %d (%s)", c.ID, c.Title)
		}
		seen[c.ID] = struct{}{}
	}
	if bodies == nil {
		bodies = map[int]string{}
	}
	if docs == nil {
		docs = map[domain.Domain]string{}
	}
	return &Index{chapters: chapters, bodies: bodies, docs: docs}, nil
}

// Chapters returns the catalog in canonical order.
func (ix *Index) Chapters() []domain.Chapter {
	out := make([]domain.Chapter, len(ix.chapters))
	copy(out, ix.chapters)
	return out
}

// Titles returns every chapter title in catalog order.
func (ix *Index) Titles() []string {
	out := make([]string, len(ix.chapters))
	for i, c := range ix.chapters {
		out[i] = c.Title
	}
	return out
}

// Body returns the full text of a chapter by its identifier.
func (ix *Index) Body(id int) (string, bool) {
	body, ok := ix.bodies[id]
	return body, ok
}

// Document returns the whole-document source for a non-ranking domain.
func (ix *Index) Document(d domain.Domain) (string, bool) {
	doc, ok := ix.docs[d]
	return doc, ok
}
