package glossgen

import (
	"fmt"
	"slices"
	"unicode"

	"github.com/alnah/go-glossgen/internal/pipeline"
)

// Alphabet lists the letters a glossary can hold, in page order.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Entry is one term and its definition, as raw source text.
type Entry = pipeline.Entry

// Glossary maps letters to their sorted entries. It is immutable once built;
// accessors return copies.
type Glossary struct {
	sections map[rune][]Entry
	letters  []rune
	count    int
}

// NewGlossary builds a Glossary from entries grouped by letter.
// Keys may be upper or lower case; letters with no entries are dropped and
// each bucket is sorted by term. Keys outside A-Z, or the same letter given
// twice in different cases, return ErrInvalidLetter.
func NewGlossary(sections map[rune][]Entry) (*Glossary, error) {
	g := &Glossary{sections: make(map[rune][]Entry, len(sections))}

	for key, entries := range sections {
		letter := unicode.ToUpper(key)
		if letter < 'A' || letter > 'Z' {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLetter, key)
		}
		if _, dup := g.sections[letter]; dup {
			return nil, fmt.Errorf("%w: %q given twice", ErrInvalidLetter, letter)
		}
		if len(entries) == 0 {
			continue
		}

		bucket := slices.Clone(entries)
		pipeline.SortEntries(bucket)
		g.sections[letter] = bucket
		g.count += len(bucket)
	}

	for _, letter := range Alphabet {
		if _, ok := g.sections[letter]; ok {
			g.letters = append(g.letters, letter)
		}
	}
	return g, nil
}

// Letters returns the populated letters in alphabetical order.
func (g *Glossary) Letters() []rune {
	return slices.Clone(g.letters)
}

// Entries returns the sorted entries for letter (either case), or nil.
func (g *Glossary) Entries(letter rune) []Entry {
	return slices.Clone(g.sections[unicode.ToUpper(letter)])
}

// Has reports whether letter (either case) has at least one entry.
func (g *Glossary) Has(letter rune) bool {
	_, ok := g.sections[unicode.ToUpper(letter)]
	return ok
}

// Count returns the total number of entries.
func (g *Glossary) Count() int {
	return g.count
}

// Len returns the number of populated letters.
func (g *Glossary) Len() int {
	return len(g.letters)
}
