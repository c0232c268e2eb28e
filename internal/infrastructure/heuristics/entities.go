package heuristics

import (
	"regexp"
	"strings"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

var (
	personRunPattern = regexp.MustCompile(`(?:\b[A-Z][a-z]+ )+[A-Z][a-z]+\b`)
	emailPattern     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	moneyPattern     = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)
)

// ExtractEntities scans text with three independent pattern classes.
// Matches are not deduplicated across classes; output order is all PERSON
// matches, then all EMAIL, then all MONEY, each in text order.
func ExtractEntities(text string) []domain.NamedEntity {
	var entities []domain.NamedEntity

	for _, run := range personRunPattern.FindAllString(text, -1) {
		entities = append(entities, domain.NamedEntity{Text: trailingWordPair(run), Type: domain.EntityPerson, Confidence: 0.8})
	}
	for _, email := range emailPattern.FindAllString(text, -1) {
		entities = append(entities, domain.NamedEntity{Text: email, Type: domain.EntityEmail, Confidence: 0.95})
	}
	for _, amount := range moneyPattern.FindAllString(text, -1) {
		entities = append(entities, domain.NamedEntity{Text: amount, Type: domain.EntityMoney, Confidence: 0.9})
	}

	return entities
}

// trailingWordPair reduces a run of capitalized words to its last two words,
// so a leading sentence word stuck to a name ("Contact John Smith") does not
// bleed into the person entity.
func trailingWordPair(run string) string {
	words := strings.Fields(run)
	return strings.Join(words[len(words)-2:], " ")
}
