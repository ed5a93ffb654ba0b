package pipeline

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// GlossaryMark follows every tagged occurrence of a glossary term in a
// LaTeX document: a superscript G.
const GlossaryMark = "$^G$"

// commandGroup matches an innermost \cmd{...} group.
var commandGroup = regexp.MustCompile(`\\[A-Za-z]+\{[^{}]*\}`)

// PlainTerm returns term with every \cmd{...} group removed together with its
// content, innermost first, then trimmed. It is the text a TermTagger looks
// for: \term{API \textsuperscript{2}} is matched as "API".
func PlainTerm(term string) string {
	for {
		stripped := commandGroup.ReplaceAllString(term, "")
		if stripped == term {
			return strings.TrimSpace(stripped)
		}
		term = stripped
	}
}

// TermTagger appends GlossaryMark after glossary terms found in free text.
type TermTagger struct {
	terms []string // longest first
}

// NewTermTagger builds a tagger for terms. Terms are reduced with PlainTerm,
// empty results are dropped and case-insensitive duplicates collapse.
func NewTermTagger(terms []string) *TermTagger {
	fold := cases.Fold()
	seen := make(map[string]bool, len(terms))
	kept := make([]string, 0, len(terms))
	for _, t := range terms {
		plain := PlainTerm(t)
		key := fold.String(plain)
		if plain == "" || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, plain)
	}

	slices.SortFunc(kept, func(a, b string) int {
		if n := utf8.RuneCountInString(b) - utf8.RuneCountInString(a); n != 0 {
			return n
		}
		return strings.Compare(a, b)
	})
	return &TermTagger{terms: kept}
}

// Len returns the number of distinct terms the tagger looks for.
func (t *TermTagger) Len() int {
	return len(t.terms)
}

// Tag returns text with GlossaryMark appended after each occurrence of a
// term, and the number of marks added. An occurrence is tagged when it
//   - matches case-insensitively on whole words,
//   - is not preceded by a backslash (command names stay intact),
//   - is followed by a space or the end of text,
//   - is not already followed by GlossaryMark.
//
// Longer terms win over shorter ones starting at the same position, and
// tagged spans never overlap. Tagging already tagged text adds nothing.
func (t *TermTagger) Tag(text string) (string, int) {
	if len(t.terms) == 0 {
		return text, 0
	}

	var b strings.Builder
	count, copied := 0, 0
	prev := rune(-1)
	for i := 0; i < len(text); {
		if prev != '\\' && !isWordRune(prev) {
			if end, ok := t.matchAt(text, i); ok {
				b.WriteString(text[copied:end])
				b.WriteString(GlossaryMark)
				copied = end
				count++
				prev, _ = utf8.DecodeLastRuneInString(text[i:end])
				i = end
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		prev = r
		i += size
	}

	if count == 0 {
		return text, 0
	}
	b.WriteString(text[copied:])
	return b.String(), count
}

// matchAt returns the end of the longest acceptable term starting at i.
func (t *TermTagger) matchAt(text string, i int) (int, bool) {
	for _, term := range t.terms {
		end, ok := foldPrefix(text[i:], term)
		if !ok {
			continue
		}
		end += i
		if end < len(text) && text[end] != ' ' {
			continue
		}
		return end, true
	}
	return 0, false
}

// foldPrefix reports whether s starts with prefix under simple case folding
// and returns the byte length of the matched part of s.
func foldPrefix(s, prefix string) (int, bool) {
	n := 0
	for _, pr := range prefix {
		if n >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[n:])
		if sr != pr && !equalFoldRune(sr, pr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

func equalFoldRune(a, b rune) bool {
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// isWordRune reports whether r is a Unicode letter, digit or underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
