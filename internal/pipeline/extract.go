package pipeline

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// termMacro opens a glossary entry. The leading backslash is optional and
// the macro name must start at a word boundary.
const termMacro = "term{"

// Entry is one term and its definition as raw source text.
type Entry struct {
	Term       string
	Definition string
}

// ExtractTerms returns every term/definition pair in content, trimmed,
// without empty sides, sorted case-insensitively by term. Entries with equal
// terms keep their source order.
//
// TERM is the brace-balanced group after term{ and may nest to any depth
// (\term{\textbf{\textit{x}}}). The rest of the line is the definition, so
// a second term{} on the same line belongs to it. Neither side spans lines.
func ExtractTerms(content string) []Entry {
	content = NormalizeLineEndings(content)

	entries := make([]Entry, 0)
	for pos := 0; pos < len(content); {
		idx := strings.Index(content[pos:], termMacro)
		if idx < 0 {
			break
		}
		start := pos + idx
		body := start + len(termMacro)
		if start > 0 && isWordByte(content[start-1]) {
			pos = body
			continue
		}

		closing, ok := closingBrace(content, body)
		if !ok {
			pos = body
			continue
		}

		def := content[closing+1:]
		if nl := strings.IndexByte(def, '\n'); nl >= 0 {
			def = def[:nl]
		}
		pos = closing + 1 + len(def)

		term := strings.TrimSpace(content[body:closing])
		def = strings.TrimSpace(def)
		if term == "" || def == "" {
			continue
		}
		entries = append(entries, Entry{Term: term, Definition: def})
	}

	SortEntries(entries)
	return entries
}

// closingBrace returns the index of the '}' that closes the group whose
// content starts at i. Groups never cross a newline.
func closingBrace(s string, i int) (int, bool) {
	depth := 1
	for ; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		case '\n':
			return 0, false
		}
	}
	return 0, false
}

// isWordByte reports whether b is an ASCII word character.
func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// SortEntries orders entries by case-folded term, stable for equal keys.
func SortEntries(entries []Entry) {
	if len(entries) < 2 {
		return
	}

	// A Caser is stateful; each call gets its own.
	fold := cases.Fold()

	type keyed struct {
		key   string
		entry Entry
	}
	items := make([]keyed, len(entries))
	for i, e := range entries {
		items[i] = keyed{key: fold.String(e.Term), entry: e}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return strings.Compare(a.key, b.key)
	})

	for i := range items {
		entries[i] = items[i].entry
	}
}
