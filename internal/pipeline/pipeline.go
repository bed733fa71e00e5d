package pipeline

import (
	"errors"
	"fmt"

	"github.com/deckforge/deckforge/internal/domain"
)

// Profile selects the deck-assembly strategy. It is fixed at pipeline
// construction time; there is no runtime switching.
type Profile string

// Supported deck profiles.
const (
	// ProfileKeywordEntity is the richer deck: summary card plus keyword
	// and entity cards.
	ProfileKeywordEntity Profile = "keyword_entity"

	// ProfileComplexWords is the production deck: one card per complex
	// word from the readability analysis.
	ProfileComplexWords Profile = "complex_words"
)

// ErrUnknownProfile indicates a profile value outside the supported set.
var ErrUnknownProfile = errors.New("unknown deck profile")

// DefaultSummarySentences is the extractive summary length used when
// none is configured.
const DefaultSummarySentences = 3

// Config holds the tunable parameters of a pipeline.
type Config struct {
	// Profile selects the deck-assembly strategy.
	Profile Profile

	// TopKeywords bounds the TF-IDF keyword list. Zero means
	// DefaultTopKeywords.
	TopKeywords int

	// TopComplexWords bounds the readability complex-word ranking. Zero
	// means DefaultTopComplexWords.
	TopComplexWords int

	// SummarySentences is the extractive summary length. Zero means
	// DefaultSummarySentences.
	SummarySentences int
}

// DefaultConfig returns a Config matching the production worker: the
// complex-words profile with default stage parameters.
func DefaultConfig() Config {
	return Config{
		Profile:          ProfileComplexWords,
		TopKeywords:      DefaultTopKeywords,
		TopComplexWords:  DefaultTopComplexWords,
		SummarySentences: DefaultSummarySentences,
	}
}

// Result carries the outputs of every stage for one document.
type Result struct {
	Normalized  NormalizedText
	Summary     string
	Keywords    []domain.Keyword
	Entities    []domain.Entity
	Readability *domain.ReadabilityReport
	Deck        domain.Deck
}

// Pipeline composes the analysis stages under a fixed deck profile. It
// holds no mutable state and is safe for concurrent use across jobs.
type Pipeline struct {
	cfg Config
}

// New creates a Pipeline for the given configuration. Returns
// ErrUnknownProfile for an unsupported profile.
func New(cfg Config) (*Pipeline, error) {
	switch cfg.Profile {
	case ProfileKeywordEntity, ProfileComplexWords:
	case "":
		cfg.Profile = ProfileComplexWords
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, cfg.Profile)
	}

	if cfg.TopKeywords <= 0 {
		cfg.TopKeywords = DefaultTopKeywords
	}
	if cfg.TopComplexWords <= 0 {
		cfg.TopComplexWords = DefaultTopComplexWords
	}
	if cfg.SummarySentences <= 0 {
		cfg.SummarySentences = DefaultSummarySentences
	}

	return &Pipeline{cfg: cfg}, nil
}

// Run executes the stages in order over the document text and assembles
// the deck for the configured profile. It never mutates its inputs; an
// empty document yields an empty (but valid) result rather than an
// error.
func (p *Pipeline) Run(text, filename string) (*Result, error) {
	normalized := Normalize(text)

	result := &Result{
		Normalized:  normalized,
		Keywords:    ExtractKeywords(normalized.Sentences, p.cfg.TopKeywords),
		Entities:    ExtractEntities(normalized.Sentences),
		Readability: AnalyzeReadability(text, p.cfg.TopComplexWords),
	}

	switch p.cfg.Profile {
	case ProfileKeywordEntity:
		result.Summary = Summarize(normalized.Sentences, p.cfg.SummarySentences)
		result.Deck = AssembleKeywordEntityDeck(result.Summary, result.Keywords, result.Entities, filename)
	case ProfileComplexWords:
		result.Deck = AssembleComplexWordDeck(result.Readability.ComplexWords)
	}

	if err := result.Deck.Validate(); err != nil {
		return nil, fmt.Errorf("assembled deck is invalid: %w", err)
	}
	return result, nil
}

// Profile returns the deck profile the pipeline was constructed with.
func (p *Pipeline) Profile() Profile {
	return p.cfg.Profile
}
