package heuristics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

const DefaultKeywordLimit = 10

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {}, "and": {},
	"or": {}, "but": {}, "in": {}, "with": {}, "for": {}, "to": {},
	"of": {}, "a": {}, "an": {},
}

// ExtractKeywords tokenizes text and ranks surviving tokens by frequency.
// Relevance is normalized against the most frequent token of the selected
// set, so the top keyword always scores 1.0. Ties keep the order tokens
// were first seen in.
func ExtractKeywords(text string, topN int) []domain.Keyword {
	if topN <= 0 {
		topN = DefaultKeywordLimit
	}

	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), "")

	frequency := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, seen := frequency[word]; !seen {
			order = append(order, word)
		}
		frequency[word]++
	}

	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return frequency[order[i]] > frequency[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}

	maxFreq := frequency[order[0]]
	keywords := make([]domain.Keyword, 0, len(order))
	for _, word := range order {
		keywords = append(keywords, domain.Keyword{
			Text:      word,
			Relevance: float64(frequency[word]) / float64(maxFreq),
		})
	}
	return keywords
}
