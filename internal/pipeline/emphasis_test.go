package pipeline

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEscapeExceptMarkers - HTML escaping of the five reserved characters
// ---------------------------------------------------------------------------

func TestEscapeExceptMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text unchanged", input: "plain words 123", want: "plain words 123"},
		{name: "ampersand", input: "a & b", want: "a &amp; b"},
		{name: "angle brackets", input: "1 < 2 > 0", want: "1 &lt; 2 &gt; 0"},
		{name: "quotes", input: `"double" 'single'`, want: "&quot;double&quot; &#39;single&#39;"},
		{name: "existing entity re-escaped", input: "&amp;", want: "&amp;amp;"},
		{name: "literal italic tag escaped", input: "<i>x</i>", want: "&lt;i&gt;x&lt;/i&gt;"},
		{name: "markers become tags", input: "\uE000x\uE001", want: "<i>x</i>"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := EscapeExceptMarkers(tt.input); got != tt.want {
				t.Errorf("EscapeExceptMarkers(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExpandEmphasis - Macro to marker conversion
// ---------------------------------------------------------------------------

func TestExpandEmphasis(t *testing.T) {
	t.Parallel()

	em := func(s string) string { return "\uE000" + s + "\uE001" }

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "backslash form", input: `\textit{hi}`, want: em("hi")},
		{name: "bare form", input: "textit{hi}", want: em("hi")},
		{name: "two macros", input: `\textit{a} and \textit{b}`, want: em("a") + " and " + em("b")},
		{name: "empty content", input: `\textit{}`, want: em("")},
		{name: "missing closing brace left alone", input: `\textit{open`, want: `\textit{open`},
		{name: "no recursive expansion", input: `\textit{\textit{x}}`, want: em(`\textit{x`) + "}"},
		{name: "prefix word does not match", input: "mytextit{x}", want: "mytextit{x}"},
		{name: "other macro untouched", input: `\textbf{x}`, want: `\textbf{x}`},
		{name: "forged markers stripped", input: "\uE000x\uE001", want: "x"},
		{name: "dollar in content kept", input: `\textit{$1}`, want: em("$1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExpandEmphasis(tt.input); got != tt.want {
				t.Errorf("ExpandEmphasis(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmphasisExpander_Inline - Expansion followed by escaping
// ---------------------------------------------------------------------------

func TestEmphasisExpander_Inline(t *testing.T) {
	t.Parallel()

	e, err := NewEmphasisExpander()
	if err != nil {
		t.Fatalf("NewEmphasisExpander() error = %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "macro with reserved characters",
			input: `textit{hi} < 3 > "q"`,
			want:  `<i>hi</i> &lt; 3 &gt; &quot;q&quot;`,
		},
		{
			name:  "reserved characters inside macro",
			input: `\textit{a & b}`,
			want:  `<i>a &amp; b</i>`,
		},
		{
			name:  "literal tag next to macro",
			input: `<i>raw</i> \textit{ok}`,
			want:  `&lt;i&gt;raw&lt;/i&gt; <i>ok</i>`,
		},
		{
			name:  "unclosed macro keeps braces",
			input: `\textit{a < b`,
			want:  `\textit{a &lt; b`,
		},
		{
			name:  "forged marker cannot open a tag",
			input: "\uE000<script>",
			want:  "&lt;script&gt;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := e.Inline(tt.input); got != tt.want {
				t.Errorf("Inline(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEmphasisExpander_Inline_IdentityOnPlainText(t *testing.T) {
	t.Parallel()

	e, _ := NewEmphasisExpander()
	for _, s := range []string{"", "word", "Two words, with punctuation; and: more!", "accented café naïve", "{braces} stay"} {
		once := e.Inline(s)
		if once != s {
			t.Errorf("Inline(%q) = %q, want unchanged", s, once)
		}
		if twice := e.Inline(once); twice != once {
			t.Errorf("Inline(Inline(%q)) = %q, want %q", s, twice, once)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNewEmphasisExpander - Macro name configuration
// ---------------------------------------------------------------------------

func TestNewEmphasisExpander(t *testing.T) {
	t.Parallel()

	t.Run("custom macros", func(t *testing.T) {
		t.Parallel()

		e, err := NewEmphasisExpander("emph", "textit")
		if err != nil {
			t.Fatalf("NewEmphasisExpander() error = %v", err)
		}
		got := e.Inline(`\emph{a} \textit{b} \textbf{c}`)
		want := `<i>a</i> <i>b</i> \textbf{c}`
		if got != want {
			t.Errorf("Inline() = %q, want %q", got, want)
		}
	})

	t.Run("invalid names rejected", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"", "text it", "a|b", `\textit`, "tex1"} {
			_, err := NewEmphasisExpander(name)
			if !errors.Is(err, ErrInvalidMacroName) {
				t.Errorf("NewEmphasisExpander(%q) error = %v, want ErrInvalidMacroName", name, err)
			}
		}
	})

	t.Run("default when no names", func(t *testing.T) {
		t.Parallel()

		e, err := NewEmphasisExpander()
		if err != nil {
			t.Fatalf("NewEmphasisExpander() error = %v", err)
		}
		if !strings.Contains(e.Inline(`\textit{x}`), "<i>x</i>") {
			t.Error("default expander should handle textit")
		}
	})
}
