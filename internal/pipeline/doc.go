// Package pipeline implements the deterministic text-analysis stages
// that turn a raw document into a flashcard deck: normalization,
// extractive summarization, TF-IDF keyword extraction, heuristic entity
// extraction, Flesch-Kincaid readability scoring, and deck assembly.
//
// Every stage is a pure function over immutable inputs: identical input
// always yields identical output, and no state is shared across stages
// or across jobs. The Pipeline type composes the stages under one of two
// deck profiles selected at construction time.
package pipeline
