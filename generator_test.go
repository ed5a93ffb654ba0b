package glossgen

// Notes:
// - PDF export is exercised with fakeRenderer; the real browser path lives
//   in pdf_integration_test.go behind the integration tag.
// - "previous page survives a failed write" is covered at the fileutil level;
//   forcing a rename failure here needs a read-only directory, which root ignores.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeLetters writes one source file per key into a fresh temp directory.
func writeLetters(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()

	g, err := NewGenerator(opts...)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	t.Cleanup(func() { _ = g.Close() })
	return g
}

// ---------------------------------------------------------------------------
// TestNewGenerator - options and construction errors
// ---------------------------------------------------------------------------

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		g := newTestGenerator(t)
		if g.Workers() < MinWorkers || g.Workers() > MaxWorkers {
			t.Errorf("Workers() = %d, want within [%d, %d]", g.Workers(), MinWorkers, MaxWorkers)
		}
		if g.cfg.timeout != defaultTimeout {
			t.Errorf("timeout = %v, want %v", g.cfg.timeout, defaultTimeout)
		}
		if g.cfg.extension != "tex" {
			t.Errorf("extension = %q, want tex", g.cfg.extension)
		}
	})

	t.Run("workers option", func(t *testing.T) {
		t.Parallel()

		if got := newTestGenerator(t, WithWorkers(2)).Workers(); got != 2 {
			t.Errorf("Workers() = %d, want 2", got)
		}
	})

	t.Run("invalid extension", func(t *testing.T) {
		t.Parallel()

		_, err := NewGenerator(WithExtension("../tex"))
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("empty extension", func(t *testing.T) {
		t.Parallel()

		_, err := NewGenerator(WithExtension(""))
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("invalid macro", func(t *testing.T) {
		t.Parallel()

		_, err := NewGenerator(WithEmphasisMacros("text it"))
		if !errors.Is(err, ErrInvalidMacroName) {
			t.Errorf("error = %v, want ErrInvalidMacroName", err)
		}
	})

	t.Run("missing asset path", func(t *testing.T) {
		t.Parallel()

		_, err := NewGenerator(WithAssetPath(filepath.Join(t.TempDir(), "nope")))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("error = %v, want ErrInvalidAssetPath", err)
		}
	})

	t.Run("broken custom template", func(t *testing.T) {
		t.Parallel()

		_, err := NewGenerator(WithAssetLoader(&stubLoader{template: "{{.Nope"}))
		if !errors.Is(err, ErrTemplateRender) {
			t.Errorf("error = %v, want ErrTemplateRender", err)
		}
	})

	t.Run("loader without template", func(t *testing.T) {
		t.Parallel()

		_, err := NewGenerator(WithAssetLoader(&stubLoader{}))
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("error = %v, want ErrTemplateNotFound", err)
		}
	})
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Second} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("WithTimeout(%v) did not panic", d)
				}
			}()
			WithTimeout(d)
		}()
	}
}

func TestGenerator_AssetSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"embedded", nil, "embedded"},
		{"asset directory", []Option{WithAssetPath(dir)}, dir + " (embedded fallback)"},
		{"custom loader", []Option{WithAssetLoader(&stubLoader{template: "<p></p>"})}, "custom loader"},
		{"loader beats directory", []Option{WithAssetPath(dir), WithAssetLoader(&stubLoader{template: "<p></p>"})}, "custom loader"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := newTestGenerator(t, tt.opts...).AssetSource(); got != tt.want {
				t.Errorf("AssetSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

// stubLoader serves fixed assets for tests.
type stubLoader struct {
	template string
	style    string
}

func (s *stubLoader) LoadTemplate(name string) (string, error) {
	if s.template == "" {
		return "", ErrTemplateNotFound
	}
	return s.template, nil
}

func (s *stubLoader) LoadStyle(name string) (string, error) {
	if s.style == "" {
		return "", ErrStyleNotFound
	}
	return s.style, nil
}

// ---------------------------------------------------------------------------
// TestGenerator_Build - reading letter files
// ---------------------------------------------------------------------------

func TestGenerator_Build(t *testing.T) {
	t.Parallel()

	t.Run("collects populated letters", func(t *testing.T) {
		t.Parallel()

		dir := writeLetters(t, map[string]string{
			"a.tex": "\\term{Zeta} last\n\\term{alpha} first\n",
			"c.tex": "\\term{Cat} a pet\n",
			"q.tex": "% nothing here\n",
		})

		gl, err := newTestGenerator(t).Build(context.Background(), dir)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}

		if got := string(gl.Letters()); got != "AC" {
			t.Errorf("Letters() = %q, want AC", got)
		}
		if gl.Count() != 3 {
			t.Errorf("Count() = %d, want 3", gl.Count())
		}
		a := gl.Entries('A')
		if len(a) != 2 || a[0].Term != "alpha" || a[1].Term != "Zeta" {
			t.Errorf("Entries('A') = %v, want alpha then Zeta", a)
		}
	})

	t.Run("missing directory yields empty glossary", func(t *testing.T) {
		t.Parallel()

		gl, err := newTestGenerator(t).Build(context.Background(), filepath.Join(t.TempDir(), "absent"))
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if gl.Count() != 0 || gl.Len() != 0 {
			t.Errorf("glossary = %d terms in %d letters, want empty", gl.Count(), gl.Len())
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		dir := writeLetters(t, map[string]string{"a.tex": "\\term{A} b"})

		_, err := newTestGenerator(t).Build(context.Background(), filepath.Join(dir, "a.tex"))
		if !errors.Is(err, ErrInvalidSourceDir) {
			t.Errorf("error = %v, want ErrInvalidSourceDir", err)
		}
	})

	t.Run("empty source dir", func(t *testing.T) {
		t.Parallel()

		_, err := newTestGenerator(t).Build(context.Background(), "")
		if !errors.Is(err, ErrInvalidSourceDir) {
			t.Errorf("error = %v, want ErrInvalidSourceDir", err)
		}
	})

	t.Run("unreadable letter file", func(t *testing.T) {
		t.Parallel()

		dir := writeLetters(t, map[string]string{"b.tex": "\\term{Bee} insect\n"})
		if err := os.Mkdir(filepath.Join(dir, "a.tex"), 0o755); err != nil {
			t.Fatal(err)
		}

		_, err := newTestGenerator(t).Build(context.Background(), dir)
		if !errors.Is(err, ErrReadSource) {
			t.Fatalf("error = %v, want ErrReadSource", err)
		}
		if !strings.Contains(err.Error(), "a.tex") {
			t.Errorf("error %q should name the file", err)
		}
	})

	t.Run("custom extension", func(t *testing.T) {
		t.Parallel()

		dir := writeLetters(t, map[string]string{
			"d.ltx": "\\term{Dog} a pet\n",
			"e.tex": "\\term{Eel} a fish\n",
		})

		gl, err := newTestGenerator(t, WithExtension("ltx")).Build(context.Background(), dir)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got := string(gl.Letters()); got != "D" {
			t.Errorf("Letters() = %q, want D", got)
		}
	})

	t.Run("CRLF same as LF", func(t *testing.T) {
		t.Parallel()

		lf := writeLetters(t, map[string]string{"f.tex": "\\term{Fox} an animal\n\\term{fig} a fruit\n"})
		crlf := writeLetters(t, map[string]string{"f.tex": "\\term{Fox} an animal\r\n\\term{fig} a fruit\r\n"})

		g := newTestGenerator(t)
		a, err := g.Build(context.Background(), lf)
		if err != nil {
			t.Fatal(err)
		}
		b, err := g.Build(context.Background(), crlf)
		if err != nil {
			t.Fatal(err)
		}

		ea, eb := a.Entries('F'), b.Entries('F')
		if len(ea) != 2 || len(eb) != 2 || ea[0] != eb[0] || ea[1] != eb[1] {
			t.Errorf("LF %v != CRLF %v", ea, eb)
		}
	})

	t.Run("single worker sees every letter", func(t *testing.T) {
		t.Parallel()

		files := make(map[string]string, len(Alphabet))
		for _, l := range strings.ToLower(Alphabet) {
			files[string(l)+".tex"] = "\\term{" + string(l) + "x} def\n"
		}
		dir := writeLetters(t, files)

		gl, err := newTestGenerator(t, WithWorkers(1)).Build(context.Background(), dir)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if gl.Len() != 26 || gl.Count() != 26 {
			t.Errorf("glossary = %d terms in %d letters, want 26/26", gl.Count(), gl.Len())
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		dir := writeLetters(t, map[string]string{"a.tex": "\\term{A} b\n"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestGenerator(t).Build(ctx, dir)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestGenerator_Render - page structure
// ---------------------------------------------------------------------------

func mustGlossary(t *testing.T, sections map[rune][]Entry) *Glossary {
	t.Helper()

	gl, err := NewGlossary(sections)
	if err != nil {
		t.Fatalf("NewGlossary() error = %v", err)
	}
	return gl
}

func TestGenerator_Render(t *testing.T) {
	t.Parallel()

	gl := mustGlossary(t, map[rune][]Entry{
		'A': {{Term: "Zeta", Definition: "last"}, {Term: "alpha", Definition: "first"}},
	})
	g := newTestGenerator(t)

	html, err := g.Render(context.Background(), gl, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	t.Run("one nav entry", func(t *testing.T) {
		if n := strings.Count(html, "<li>"); n != 1 {
			t.Errorf("nav has %d entries, want 1", n)
		}
		if !strings.Contains(html, `<li><a href="#a">A</a></li>`) {
			t.Error("missing nav link A -> #a")
		}
	})

	t.Run("sorted entries", func(t *testing.T) {
		alpha := strings.Index(html, "<dt>alpha</dt>")
		zeta := strings.Index(html, "<dt>Zeta</dt>")
		if alpha < 0 || zeta < 0 || alpha > zeta {
			t.Errorf("alpha at %d, Zeta at %d; want alpha first", alpha, zeta)
		}
	})

	t.Run("every letter has a section", func(t *testing.T) {
		for _, l := range strings.ToLower(Alphabet) {
			id := `<section id="` + string(l) + `">`
			if !strings.Contains(html, id) {
				t.Errorf("missing %s", id)
			}
		}
		if n := strings.Count(html, "<dl>"); n != 1 {
			t.Errorf("found %d <dl>, want 1 (empty letters have none)", n)
		}
		if !strings.Contains(html, "<section id=\"b\">\n<h2>B</h2>\n</section>") {
			t.Error("empty section b should hold only its heading")
		}
	})

	t.Run("page defaults", func(t *testing.T) {
		for _, want := range []string{
			`<html lang="en">`,
			`<link rel="stylesheet" href="css/main.css">`,
			`<link rel="stylesheet" href="css/glossary.css">`,
			`<script src="js/main.js" defer></script>`,
			`<a id="header-logo" href="index.html">Home</a>`,
			`<nav id="nav-navigation">`,
			`<title>Glossary</title>`,
		} {
			if !strings.Contains(html, want) {
				t.Errorf("page missing %q", want)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		again, err := g.Render(context.Background(), gl, nil)
		if err != nil {
			t.Fatal(err)
		}
		if again != html {
			t.Error("two renders of the same glossary differ")
		}
	})
}

func TestGenerator_Render_Escaping(t *testing.T) {
	t.Parallel()

	gl := mustGlossary(t, map[rune][]Entry{
		'T': {
			{Term: "Tom & Jerry", Definition: `textit{hi} < 3 > "q"`},
			{Term: `\textit{Tag}`, Definition: "a literal <i>tag</i>"},
		},
	})

	html, err := newTestGenerator(t).Render(context.Background(), gl, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"<dt>Tom &amp; Jerry</dt>",
		`<dd><i>hi</i> &lt; 3 &gt; &quot;q&quot;</dd>`,
		"<dt><i>Tag</i></dt>",
		"<dd>a literal &lt;i&gt;tag&lt;/i&gt;</dd>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestGenerator_Render_CustomMacrosAndPage(t *testing.T) {
	t.Parallel()

	gl := mustGlossary(t, map[rune][]Entry{
		'E': {{Term: "Emph", Definition: `\emph{one} and \textit{two}`}},
	})
	page := &Page{
		Title:       "Lexique <fr>",
		Lang:        "fr",
		Stylesheets: []string{"style.css"},
		HomeHref:    "/",
		HomeLabel:   "Accueil",
	}

	html, err := newTestGenerator(t, WithEmphasisMacros("emph")).Render(context.Background(), gl, page)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		`<html lang="fr">`,
		"<title>Lexique &lt;fr&gt;</title>",
		`<a id="header-logo" href="/">Accueil</a>`,
		`<dd><i>one</i> and \textit{two}</dd>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, "<script") {
		t.Error("empty Script should omit the script element")
	}
}

func TestGenerator_Render_Errors(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t)

	if _, err := g.Render(context.Background(), nil, nil); !errors.Is(err, ErrNilGlossary) {
		t.Errorf("nil glossary: error = %v, want ErrNilGlossary", err)
	}

	gl := mustGlossary(t, nil)
	if _, err := g.Render(context.Background(), gl, &Page{}); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("empty page: error = %v, want ErrInvalidPage", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Render(ctx, gl, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestGenerator_Generate - end to end without a browser
// ---------------------------------------------------------------------------

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("writes page", func(t *testing.T) {
		t.Parallel()

		src := writeLetters(t, map[string]string{"a.tex": "\\term{Zeta} last\n\\term{alpha} first\n"})
		out := filepath.Join(t.TempDir(), "glossary.html")

		res, err := newTestGenerator(t).Generate(context.Background(), Input{SourceDir: src, OutputPath: out})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if !res.Written || res.Terms != 2 || res.Letters != 1 {
			t.Errorf("Result = %+v, want written 2 terms in 1 letter", res)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if string(data) != res.HTML {
			t.Error("written file differs from Result.HTML")
		}
		if res.PDFPath != "" {
			t.Errorf("PDFPath = %q, want empty", res.PDFPath)
		}
	})

	t.Run("no terms writes nothing", func(t *testing.T) {
		t.Parallel()

		src := writeLetters(t, map[string]string{"a.tex": "no macros here\n\\term{} empty\n"})
		out := filepath.Join(t.TempDir(), "glossary.html")

		res, err := newTestGenerator(t).Generate(context.Background(), Input{SourceDir: src, OutputPath: out})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if res.Written || res.Terms != 0 || res.HTML != "" {
			t.Errorf("Result = %+v, want nothing written", res)
		}
		if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("output exists after empty run: %v", err)
		}
	})

	t.Run("overwrites previous page", func(t *testing.T) {
		t.Parallel()

		src := writeLetters(t, map[string]string{"n.tex": "\\term{New} fresh\n"})
		out := filepath.Join(t.TempDir(), "glossary.html")
		if err := os.WriteFile(out, []byte("stale"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := newTestGenerator(t).Generate(context.Background(), Input{SourceDir: src, OutputPath: out}); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		data, _ := os.ReadFile(out)
		if !strings.Contains(string(data), "<dt>New</dt>") {
			t.Error("output was not replaced")
		}
		assertNoScratchFiles(t, filepath.Dir(out))
	})

	t.Run("missing output directory", func(t *testing.T) {
		t.Parallel()

		src := writeLetters(t, map[string]string{"a.tex": "\\term{A} b\n"})
		out := filepath.Join(t.TempDir(), "missing", "glossary.html")

		_, err := newTestGenerator(t).Generate(context.Background(), Input{SourceDir: src, OutputPath: out})
		if !errors.Is(err, ErrWriteOutput) {
			t.Errorf("error = %v, want ErrWriteOutput", err)
		}
	})

	t.Run("input validation", func(t *testing.T) {
		t.Parallel()

		g := newTestGenerator(t)
		tests := []struct {
			name    string
			input   Input
			wantErr error
		}{
			{"no source", Input{OutputPath: "x.html"}, ErrInvalidSourceDir},
			{"no output", Input{SourceDir: "tex"}, ErrEmptyOutputPath},
			{"pdf over page", Input{SourceDir: "tex", OutputPath: "x.html", PDFPath: "./x.html"}, ErrOutputConflict},
			{"bad page", Input{SourceDir: "tex", OutputPath: "x.html", Page: &Page{}}, ErrInvalidPage},
			{"bad pdf size", Input{SourceDir: "tex", OutputPath: "x.html", PDF: &PDFSettings{Size: "a0"}}, ErrInvalidPageSize},
		}
		for _, tt := range tests {
			if _, err := g.Generate(context.Background(), tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: error = %v, want %v", tt.name, err, tt.wantErr)
			}
		}
	})

	t.Run("duration from clock", func(t *testing.T) {
		t.Parallel()

		src := writeLetters(t, map[string]string{"a.tex": "\\term{A} b\n"})
		g := newTestGenerator(t)
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		calls := 0
		g.cfg.now = func() time.Time {
			calls++
			return base.Add(time.Duration(calls-1) * time.Second)
		}

		res, err := g.Generate(context.Background(), Input{SourceDir: src, OutputPath: filepath.Join(t.TempDir(), "g.html")})
		if err != nil {
			t.Fatal(err)
		}
		if res.Duration != time.Second {
			t.Errorf("Duration = %v, want 1s", res.Duration)
		}
	})
}

func assertNoScratchFiles(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			t.Errorf("scratch file left behind: %s", e.Name())
		}
	}
}
