package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-glossgen"
	"github.com/alnah/go-glossgen/internal/config"
	"github.com/alnah/go-glossgen/internal/fileutil"
	"github.com/alnah/go-glossgen/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrTooManyArgs    = errors.New("expected at most one source directory")
)

// execute runs one invocation and returns its exit code.
func execute(ctx context.Context, flags *cliFlags, positional []string, env *Environment) int {
	switch {
	case flags.help:
		printUsage(env.Stdout)
		return ExitSuccess
	case flags.version:
		fmt.Fprintf(env.Stdout, "glossgen %s\n", Version)
		return ExitSuccess
	}

	if err := runGenerate(ctx, flags, positional, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runGenerate resolves the configuration and generates the page.
func runGenerate(ctx context.Context, flags *cliFlags, positional []string, env *Environment) error {
	if len(positional) > 1 {
		return fmt.Errorf("%w, got %d", ErrTooManyArgs, len(positional))
	}

	warnUnknownEnvVars(env.Stderr)

	cfg, err := resolveConfig(flags, positional, loadEnvConfig())
	if err != nil {
		return err
	}

	if flags.printConfig {
		out, err := cfg.Encode()
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	gen, err := glossgen.NewGenerator(generatorOptions(cfg, env)...)
	if err != nil {
		return err
	}
	defer gen.Close()

	verbose := flags.common.verbose && !flags.common.quiet
	if verbose {
		fmt.Fprintf(env.Stderr, "workers: %d\n", gen.Workers())
		fmt.Fprintf(env.Stderr, "assets: %s\n", gen.AssetSource())
	}

	start := env.Now()
	res, err := gen.Generate(ctx, buildInput(cfg))
	if err != nil {
		return err
	}

	printResult(env, cfg, res, flags.common.quiet, verbose, env.Now().Sub(start))
	return nil
}

// resolveConfig layers defaults, config file, environment and flags.
func resolveConfig(flags *cliFlags, positional []string, envCfg *envConfig) (*config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)

	if err := mergeFlags(flags, positional, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, positional []string, cfg *config.Config) error {
	if len(positional) == 1 {
		cfg.Input.Dir = positional[0]
	}

	setIfNotEmpty(&cfg.Input.Extension, flags.ext)
	setIfNotEmpty(&cfg.Output.Path, flags.output)
	setIfNotEmpty(&cfg.Output.PDF, flags.pdf.output)
	setIfNotEmpty(&cfg.Assets.BasePath, flags.assetPath)

	setIfNotEmpty(&cfg.Page.Title, flags.page.title)
	setIfNotEmpty(&cfg.Page.Lang, flags.page.lang)
	setIfNotEmpty(&cfg.Page.HomeHref, flags.page.home)
	setIfNotEmpty(&cfg.Page.HomeLabel, flags.page.homeLabel)
	if flags.changed["script"] {
		cfg.Page.Script = flags.page.script
	}
	if len(flags.page.stylesheets) > 0 {
		cfg.Page.Stylesheets = flags.page.stylesheets
	}
	if len(flags.page.macros) > 0 {
		cfg.Emphasis.Macros = flags.page.macros
	}

	setIfNotEmpty(&cfg.Tag.Dir, flags.tag.dir)
	if len(flags.tag.exclude) > 0 {
		cfg.Tag.Exclude = flags.tag.exclude
	}
	if flags.changed["tag-dry-run"] {
		cfg.Tag.DryRun = flags.tag.dryRun
	}

	setIfNotEmpty(&cfg.PDF.Size, flags.pdf.size)
	if flags.changed["margin"] {
		cfg.PDF.Margin = flags.pdf.margin
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q (use a positive duration such as 30s or 2m)", ErrInvalidTimeout, flags.timeout)
		}
		cfg.PDF.Timeout = d
	}
	if flags.changed["workers"] {
		cfg.Workers = flags.workers
	}
	return nil
}

// generatorOptions translates the resolved config into generator options.
func generatorOptions(cfg *config.Config, env *Environment) []glossgen.Option {
	opts := []glossgen.Option{
		glossgen.WithWorkers(cfg.Workers),
		glossgen.WithExtension(cfg.Input.Extension),
		glossgen.WithEmphasisMacros(cfg.Emphasis.Macros...),
	}
	if cfg.PDF.Timeout > 0 {
		opts = append(opts, glossgen.WithTimeout(cfg.PDF.Timeout))
	}
	switch {
	case cfg.Assets.BasePath != "":
		opts = append(opts, glossgen.WithAssetPath(cfg.Assets.BasePath))
	case env.AssetLoader != nil:
		opts = append(opts, glossgen.WithAssetLoader(env.AssetLoader))
	}
	return opts
}

// buildInput converts the resolved config into generator input.
func buildInput(cfg *config.Config) glossgen.Input {
	var tag *glossgen.TagInput
	if cfg.Tag.Dir != "" {
		tag = &glossgen.TagInput{Root: cfg.Tag.Dir, Exclude: cfg.Tag.Exclude, DryRun: cfg.Tag.DryRun}
	}

	return glossgen.Input{
		SourceDir:  cfg.Input.Dir,
		OutputPath: cfg.Output.Path,
		PDFPath:    cfg.Output.PDF,
		Page: &glossgen.Page{
			Title:       cfg.Page.Title,
			Lang:        cfg.Page.Lang,
			Stylesheets: cfg.Page.Stylesheets,
			Script:      cfg.Page.Script,
			HomeHref:    cfg.Page.HomeHref,
			HomeLabel:   cfg.Page.HomeLabel,
		},
		PDF: &glossgen.PDFSettings{
			Size:   cfg.PDF.Size,
			Margin: cfg.PDF.Margin,
		},
		Tag: tag,
	}
}

// printResult reports the outcome. "no terms found" is printed even in
// quiet mode since it is the only trace of an empty run.
func printResult(env *Environment, cfg *config.Config, res *glossgen.Result, quiet, verbose bool, elapsed time.Duration) {
	if !res.Written {
		fmt.Fprintln(env.Stdout, "no terms found")
		if verbose {
			if !fileutil.DirExists(cfg.Input.Dir) {
				fmt.Fprintf(env.Stderr, "source directory %s does not exist%s\n", cfg.Input.Dir, hints.ForNoSourceDir(cfg.Input.Dir, cfg.Input.Extension))
			} else {
				fmt.Fprintf(env.Stderr, "nothing matched in %s%s\n", cfg.Input.Dir, hints.ForNoTerms(cfg.Input.Extension))
			}
		}
		return
	}

	if quiet {
		return
	}

	if verbose {
		for _, letter := range res.Glossary.Letters() {
			fmt.Fprintf(env.Stderr, "  %c: %d\n", letter, len(res.Glossary.Entries(letter)))
		}
	}

	fmt.Fprintf(env.Stdout, "parsing complete: %d terms in %d letters -> %s\n", res.Terms, res.Letters, res.OutputPath)
	if t := res.Tagged; t != nil {
		verb := "tagging complete"
		if cfg.Tag.DryRun {
			verb = "tagging dry run"
		}
		fmt.Fprintf(env.Stdout, "%s: %d marks in %d of %d files\n", verb, t.Tags, len(t.Modified), t.Files)
		if verbose {
			for _, path := range t.Modified {
				fmt.Fprintf(env.Stderr, "  tagged %s\n", path)
			}
		}
	}
	if res.PDFPath != "" {
		fmt.Fprintf(env.Stdout, "pdf complete -> %s\n", res.PDFPath)
	}

	if verbose {
		fmt.Fprintf(env.Stderr, "done in %v\n", elapsed.Round(time.Millisecond))
	}
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, glossgen.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, glossgen.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, glossgen.ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
