package glossgen

import (
	"time"

	"github.com/alnah/go-glossgen/internal/config"
)

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	workers   int
	timeout   time.Duration
	assetPath string
	macros    []string
	extension string
	now       func() time.Time
}

// defaultTimeout bounds PDF page loading when no timeout is given.
const defaultTimeout = config.DefaultPDFTimeout

func defaultGeneratorConfig() generatorConfig {
	return generatorConfig{
		workers:   ResolveWorkers(0),
		timeout:   defaultTimeout,
		extension: config.DefaultExtension,
		now:       time.Now,
	}
}

// WithWorkers sets how many letter files are read concurrently.
// Zero derives the count from GOMAXPROCS; values are clamped to 1-26.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.cfg.workers = ResolveWorkers(n)
	}
}

// WithTimeout sets the PDF export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("glossgen: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithAssetPath loads the template and print style from path, falling back
// to the embedded assets. Ignored when WithAssetLoader is also given.
func WithAssetPath(path string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader.
func WithAssetLoader(loader AssetLoader) Option {
	return func(g *Generator) {
		g.publicAssetLoader = loader
	}
}

// WithEmphasisMacros sets the macro names rendered as italics
// (default "textit"). Names must be ASCII letters only.
func WithEmphasisMacros(names ...string) Option {
	return func(g *Generator) {
		g.cfg.macros = append([]string(nil), names...)
	}
}

// WithExtension sets the source file extension, without the dot (default "tex").
func WithExtension(ext string) Option {
	return func(g *Generator) {
		g.cfg.extension = ext
	}
}
