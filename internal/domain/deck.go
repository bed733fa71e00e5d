package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Card is one flashcard: a prompt on the front and an answer on the back.
// Front must be non-empty; Back may carry a placeholder when no definition
// is known.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Deck is an ordered sequence of cards produced for one document.
type Deck []Card

// Keyword is a term ranked by TF-IDF, with the first sentence that
// contains it as context (empty when none does).
type Keyword struct {
	Term    string  `json:"term"`
	Score   float64 `json:"score"`
	Context string  `json:"context"`
}

// Entity type tags. The set is open; these are the values the heuristic
// extractor produces today.
const (
	EntityTypeTerm    = "TERM"
	EntityTypeUnknown = "UNKNOWN"
)

// Entity is a surface form picked out of the document by the heuristic
// extractor, with a type tag and supporting context.
type Entity struct {
	SurfaceForm string `json:"surface_form"`
	Type        string `json:"type"`
	Context     string `json:"context"`
}

// ComplexWord is one entry in the readability report's complex word
// ranking. ComplexityScore is syllables times character length.
type ComplexWord struct {
	Word            string `json:"word"`
	Syllables       int    `json:"syllables"`
	Length          int    `json:"length"`
	ComplexityScore int    `json:"complexity_score"`
}

// ReadabilityReport holds the Flesch-Kincaid analysis for a document.
// Grade level and the averages are rounded to 2 decimal places.
type ReadabilityReport struct {
	GradeLevel          float64       `json:"grade_level"`
	TotalSentences      int           `json:"total_sentences"`
	TotalWords          int           `json:"total_words"`
	TotalSyllables      int           `json:"total_syllables"`
	AvgWordsPerSentence float64       `json:"avg_words_per_sentence"`
	AvgSyllablesPerWord float64       `json:"avg_syllables_per_word"`
	ComplexWords        []ComplexWord `json:"complex_words"`
}

// ErrEmptyCardFront indicates a card that violates the non-empty front
// invariant.
var ErrEmptyCardFront = errors.New("card front cannot be empty")

// csvHeader is the fixed header row of the deck artifact.
var csvHeader = []string{"Front", "Back"}

// Validate checks the deck invariants: every card has a non-empty front.
func (d Deck) Validate() error {
	for i, card := range d {
		if card.Front == "" {
			return fmt.Errorf("card %d: %w", i, ErrEmptyCardFront)
		}
	}
	return nil
}

// WriteCSV encodes the deck as the Anki-importable tabular artifact: a
// header row "Front,Back" followed by one row per card, quoting handled
// by encoding/csv. This is the one bit-exact external artifact of the
// system and must round-trip through ReadCSV.
func (d Deck) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write deck header: %w", err)
	}
	for _, card := range d {
		if err := cw.Write([]string{card.Front, card.Back}); err != nil {
			return fmt.Errorf("failed to write card row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV decodes a deck previously written by WriteCSV. Returns an error
// if the header row is missing or malformed.
func ReadCSV(r io.Reader) (Deck, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read deck header: %w", err)
	}
	if len(header) != 2 || header[0] != csvHeader[0] || header[1] != csvHeader[1] {
		return nil, fmt.Errorf("unexpected deck header %v", header)
	}

	var deck Deck
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read card row: %w", err)
		}
		deck = append(deck, Card{Front: row[0], Back: row[1]})
	}
	return deck, nil
}
