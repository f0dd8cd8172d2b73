// Package retriever ranks catalog chapters against a user question using
// normalized keyword matching.
package retriever

import (
	"errors"
	"sort"
	"strings"

	"github.com/Nikkoola22/RH-cfdt/internal/domain"
	"github.com/Nikkoola22/RH-cfdt/internal/knowledge"
	"github.com/Nikkoola22/RH-cfdt/internal/textnorm"
)

// ErrNoMatch reports that no chapter scored above zero. Distinct from a
// shortlist truncated by the top-N cutoff.
var ErrNoMatch = errors.New("no chapter matched the question")

const (
	exactTokenScore = 10
	substringScore  = 5
	defaultTopN     = 3
)

// KeywordRanker scores chapters by exact-token and substring keyword matches.
type KeywordRanker struct {
	index *knowledge.Index
	topN  int
}

// NewKeywordRanker builds a ranker over the catalog. topN caps the shortlist;
// values <= 0 fall back to the default of 3.
func NewKeywordRanker(index *knowledge.Index, topN int) *KeywordRanker {
	if topN <= 0 {
		topN = defaultTopN
	}
	return &KeywordRanker{index: index, topN: topN}
}

// Rank returns at most topN chapters ordered by descending score. Equal scores
// keep catalog order. Returns ErrNoMatch when nothing scores above zero.
func (r *KeywordRanker) Rank(question string) ([]domain.ScoredChapter, error) {
	normalized := textnorm.Normalize(question)
	tokens := make(map[string]struct{})
	for _, t := range strings.Fields(normalized) {
		tokens[t] = struct{}{}
	}

	var scored []domain.ScoredChapter
	for _, chapter := range r.index.Chapters() {
		score := 0
		for _, keyword := range chapter.AllKeywords() {
			kw := textnorm.Normalize(keyword)
			if kw == "" {
				continue
			}
			// An exact token match takes the higher tier; the substring
			// tier only applies when the keyword is not a whole token.
			if _, ok := tokens[kw]; ok {
				score += exactTokenScore
			} else if strings.Contains(normalized, kw) {
				score += substringScore
			}
		}
		if score > 0 {
			scored = append(scored, domain.ScoredChapter{Chapter: chapter, Score: score})
		}
	}
	if len(scored) == 0 {
		return nil, ErrNoMatch
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > r.topN {
		scored = scored[:r.topN]
	}
	return scored, nil
}
