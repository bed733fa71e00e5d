package pipeline

import (
	"fmt"

	"github.com/deckforge/deckforge/internal/domain"
)

// Card counts for the keyword/entity deck profile.
const (
	maxKeywordCards = 8
	maxEntityCards  = 5
)

// AssembleKeywordEntityDeck builds the richer deck profile: an optional
// summary card, up to 8 keyword cards, and up to 5 entity cards, in that
// order. Keyword cards fall back to a filename-referencing placeholder
// when the term has no context sentence.
func AssembleKeywordEntityDeck(
	summary string,
	keywords []domain.Keyword,
	entities []domain.Entity,
	filename string,
) domain.Deck {
	var deck domain.Deck

	if summary != "" {
		deck = append(deck, domain.Card{
			Front: fmt.Sprintf("Summarize the key points from %s", filename),
			Back:  summary,
		})
	}

	for i, keyword := range keywords {
		if i >= maxKeywordCards {
			break
		}
		back := keyword.Context
		if back == "" {
			back = fmt.Sprintf("A key term from %s", filename)
		}
		deck = append(deck, domain.Card{
			Front: fmt.Sprintf("What is %s?", keyword.Term),
			Back:  back,
		})
	}

	for i, entity := range entities {
		if i >= maxEntityCards {
			break
		}
		deck = append(deck, domain.Card{
			Front: fmt.Sprintf("Define or describe: %s", entity.SurfaceForm),
			Back:  entity.Context,
		})
	}

	return deck
}

// AssembleComplexWordDeck builds the production profile: one card per
// complex word, front is the word itself and back a placeholder inviting
// the user to supply a definition.
func AssembleComplexWordDeck(words []domain.ComplexWord) domain.Deck {
	deck := make(domain.Deck, 0, len(words))
	for _, word := range words {
		deck = append(deck, domain.Card{
			Front: word.Word,
			Back:  fmt.Sprintf("Write your own definition for %q", word.Word),
		})
	}
	return deck
}
