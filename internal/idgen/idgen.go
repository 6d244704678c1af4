// Package idgen produces the short public identifiers for boards and cards.
package idgen

import gonanoid "github.com/matoous/go-nanoid/v2"

// Identifier lengths.
const (
	BoardIDLen = 8
	CardIDLen  = 10
)

// Generator mints opaque unique ids.
type Generator interface {
	BoardID() (string, error)
	CardID() (string, error)
}

// Nanoid generates url-safe random ids with the nanoid alphabet.
type Nanoid struct{}

// New returns the default generator.
func New() Nanoid { return Nanoid{} }

// BoardID returns an 8-character id.
func (Nanoid) BoardID() (string, error) { return gonanoid.New(BoardIDLen) }

// CardID returns a 10-character id.
func (Nanoid) CardID() (string, error) { return gonanoid.New(CardIDLen) }
