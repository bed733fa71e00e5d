package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/deckforge/deckforge/internal/domain"
)

// MaxEntities caps the number of unique entities extracted per document.
const MaxEntities = 20

// capitalizedRunRe matches maximal runs of capitalized words: an
// uppercase letter followed by lowercase letters, optionally chained by
// single spaces to further such words.
var capitalizedRunRe = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*\b`)

// entitySkipwords is the closed determiner/pronoun set excluded from
// entity candidates.
var entitySkipwords = map[string]struct{}{
	"the": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"a": {}, "an": {},
}

// ExtractEntities scans sentences for capitalized-word runs and returns
// up to MaxEntities unique entities in first-occurrence order,
// deduplicated by exact surface form.
//
// Leading determiners are stripped from each run (so "The Quick Brown
// Fox" yields "Quick Brown Fox"); candidates that are nothing but
// determiners are discarded. When the sentence contains the pattern
// "<entity> is a|an <description>", the entity is typed TERM with the
// description as context; otherwise it is typed UNKNOWN with the full
// sentence as context.
func ExtractEntities(sentences []string) []domain.Entity {
	var entities []domain.Entity
	seen := make(map[string]struct{})

	for _, sentence := range sentences {
		for _, match := range capitalizedRunRe.FindAllString(sentence, -1) {
			surface := stripLeadingDeterminers(match)
			if surface == "" {
				continue
			}
			if _, dup := seen[surface]; dup {
				continue
			}

			entity := domain.Entity{
				SurfaceForm: surface,
				Type:        domain.EntityTypeUnknown,
				Context:     sentence,
			}
			if description, ok := findDefinition(sentence, surface); ok {
				entity.Type = domain.EntityTypeTerm
				entity.Context = description
			}

			seen[surface] = struct{}{}
			entities = append(entities, entity)
			if len(entities) >= MaxEntities {
				return entities
			}
		}
	}
	return entities
}

// stripLeadingDeterminers drops determiner/pronoun words from the front
// of a capitalized run. Returns "" when nothing else remains.
func stripLeadingDeterminers(match string) string {
	words := strings.Split(match, " ")
	for len(words) > 0 {
		if _, skip := entitySkipwords[strings.ToLower(words[0])]; !skip {
			break
		}
		words = words[1:]
	}
	return strings.Join(words, " ")
}

// findDefinition looks for "<entity> is a|an <description>" anywhere in
// the sentence, case-insensitively. The description runs until the next
// clause punctuation and is returned trimmed.
func findDefinition(sentence, entity string) (string, bool) {
	pattern := fmt.Sprintf(`(?i)%s\s+is\s+(?:a|an)\s+([^,.;]+)`, regexp.QuoteMeta(entity))
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(sentence)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
