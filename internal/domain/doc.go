// Package domain contains the core data types of the deck generation
// service: the Job record with its status state machine, and the Deck,
// Card, Keyword and Entity value types produced by the text pipeline.
//
// Domain types validate themselves and enforce their own invariants so
// that storage and transport layers can stay thin.
package domain
