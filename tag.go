package glossgen

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/alnah/go-glossgen/internal/fileutil"
	"github.com/alnah/go-glossgen/internal/pipeline"
)

// GlossaryMark is appended after every tagged term occurrence.
const GlossaryMark = pipeline.GlossaryMark

// TagInput selects the LaTeX documents whose glossary terms get marked.
type TagInput struct {
	Root    string   // directory scanned recursively (required)
	Exclude []string // directory or file base names skipped anywhere under Root
	Skip    []string // paths skipped entirely, e.g. the glossary source directory
	DryRun  bool     // count tags without rewriting files
}

// TagResult describes a tagging run.
type TagResult struct {
	Files    int      // documents scanned
	Tags     int      // marks added
	Modified []string // documents rewritten (or that would be, in a dry run)
}

// Tag appends GlossaryMark after the glossary terms found in every
// *.<extension> document under input.Root. Terms are matched on whole words,
// case-insensitively, and only when followed by a space or the end of the
// file; see pipeline.TermTagger. Documents are rewritten atomically with
// their original permissions, and documents without new marks are not
// touched. Running Tag twice adds nothing the second time.
func (g *Generator) Tag(ctx context.Context, glossary *Glossary, input TagInput) (*TagResult, error) {
	if glossary == nil {
		return nil, ErrNilGlossary
	}
	if !fileutil.DirExists(input.Root) {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrInvalidTagRoot, input.Root)
	}

	tagger := pipeline.NewTermTagger(glossaryTerms(glossary))
	skip := make(map[string]bool, len(input.Skip))
	for _, p := range input.Skip {
		if abs, err := filepath.Abs(p); err == nil {
			skip[abs] = true
		}
	}

	res := &TagResult{Modified: []string{}}
	if tagger.Len() == 0 {
		return res, nil
	}

	ext := "." + g.cfg.extension
	err := filepath.WalkDir(input.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrReadSource, path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path != input.Root && slices.Contains(input.Exclude, d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if abs, err := filepath.Abs(path); err == nil && skip[abs] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || filepath.Ext(path) != ext {
			return nil
		}

		n, err := g.tagFile(path, tagger, input.DryRun)
		if err != nil {
			return err
		}
		res.Files++
		if n > 0 {
			res.Tags += n
			res.Modified = append(res.Modified, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// tagFile marks one document and returns the number of marks added.
func (g *Generator) tagFile(path string, tagger *pipeline.TermTagger, dryRun bool) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w %s: %w", ErrReadSource, path, err)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from walking the tag root
	if err != nil {
		return 0, fmt.Errorf("%w %s: %w", ErrReadSource, path, err)
	}

	tagged, n := tagger.Tag(string(data))
	if n == 0 || dryRun {
		return n, nil
	}
	if err := fileutil.WriteFileAtomic(path, []byte(tagged), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("%w %s: %w", ErrWriteOutput, path, err)
	}
	return n, nil
}

// glossaryTerms lists every term of glossary in letter order.
func glossaryTerms(glossary *Glossary) []string {
	terms := make([]string, 0, glossary.Count())
	for _, letter := range glossary.letters {
		for _, e := range glossary.sections[letter] {
			terms = append(terms, e.Term)
		}
	}
	return terms
}
