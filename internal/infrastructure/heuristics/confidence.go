package heuristics

import (
	"regexp"
	"strings"
)

const maxOCRConfidence = 95

var (
	alphanumericPattern = regexp.MustCompile(`[a-zA-Z0-9]`)
	structurePattern    = regexp.MustCompile(`[.!?,;:\n]`)
)

// OCRConfidence derives an extraction-quality score in [0, 95] from shallow
// text signals. The ceiling stays below 100 to model residual uncertainty.
func OCRConfidence(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	confidence := 50
	if alphanumericPattern.MatchString(text) {
		confidence += 20
	}
	if structurePattern.MatchString(text) {
		confidence += 15
	}

	wordCount := len(strings.Fields(text))
	if wordCount > 10 {
		confidence += 10
	}
	if wordCount > 50 {
		confidence += 5
	}

	if confidence > maxOCRConfidence {
		return maxOCRConfidence
	}
	return confidence
}
