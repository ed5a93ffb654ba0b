package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultEmphasisMacro is the LaTeX macro rendered as italics.
const DefaultEmphasisMacro = "textit"

// ErrInvalidMacroName indicates a macro name that is not plain ASCII letters.
var ErrInvalidMacroName = errors.New("invalid emphasis macro name")

// Private-use code points stand in for <i> and </i> between expansion and
// escaping. They are stripped from raw input so text cannot forge a tag.
const (
	markerOpen  = '\uE000'
	markerClose = '\uE001'
)

var (
	macroName = regexp.MustCompile(`^[A-Za-z]+$`)

	markerStripper = strings.NewReplacer(string(markerOpen), "", string(markerClose), "")

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	markerToTag = strings.NewReplacer(string(markerOpen), "<i>", string(markerClose), "</i>")
)

// EmphasisExpander turns emphasis macros into italic markup.
// It holds no mutable state and is safe for concurrent use.
type EmphasisExpander struct {
	pattern *regexp.Regexp
}

// NewEmphasisExpander builds an expander for the given macro names.
// No names means DefaultEmphasisMacro.
func NewEmphasisExpander(macros ...string) (*EmphasisExpander, error) {
	if len(macros) == 0 {
		macros = []string{DefaultEmphasisMacro}
	}

	alternatives := make([]string, 0, len(macros))
	for _, m := range macros {
		if !macroName.MatchString(m) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMacroName, m)
		}
		alternatives = append(alternatives, m)
	}

	// The backslash is optional; \b stops "mytextit{" from matching.
	// Content ends at the first '}', so an unclosed macro never matches.
	pattern := regexp.MustCompile(`\\?\b(?:` + strings.Join(alternatives, "|") + `)\{([^}]*)\}`)
	return &EmphasisExpander{pattern: pattern}, nil
}

var defaultExpander, _ = NewEmphasisExpander()

// Expand replaces every emphasis macro with its content wrapped in markers.
// Content is copied verbatim; nested macros are not expanded.
func (e *EmphasisExpander) Expand(text string) string {
	text = markerStripper.Replace(text)
	return e.pattern.ReplaceAllString(text, string(markerOpen)+"${1}"+string(markerClose))
}

// Inline expands emphasis and escapes the result for HTML embedding.
func (e *EmphasisExpander) Inline(text string) string {
	return EscapeExceptMarkers(e.Expand(text))
}

// ExpandEmphasis expands DefaultEmphasisMacro in text.
func ExpandEmphasis(text string) string {
	return defaultExpander.Expand(text)
}

// EscapeExceptMarkers escapes &, <, >, " and ' and then turns emphasis
// markers into <i> and </i>. Any literal tag in text comes out escaped.
func EscapeExceptMarkers(text string) string {
	return markerToTag.Replace(htmlEscaper.Replace(text))
}
