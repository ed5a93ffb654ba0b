package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-glossgen/internal/fileutil"
	"github.com/alnah/go-glossgen/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxURLLength       = 2048
	MaxTitleLength     = 200
	MaxLabelLength     = 100
	MaxLangLength      = 35 // BCP 47 tags rarely exceed this
	MaxExtensionLength = 16
	MaxMacroLength     = 32
	MaxMacros          = 8
	MaxStylesheets     = 8
	MaxTagExcludes     = 32
	MaxNameLength      = 255
	MaxWorkers         = 26 // one per letter
)

// Defaults for the published page.
const (
	DefaultInputDir   = "tex"
	DefaultExtension  = "tex"
	DefaultOutputPath = "glossary.html"
	DefaultTitle      = "Glossary"
	DefaultLang       = "en"
	DefaultScript     = "js/main.js"
	DefaultHomeHref   = "index.html"
	DefaultHomeLabel  = "Home"
	DefaultPDFSize    = "a4"
	DefaultPDFMargin  = 0.5
	DefaultPDFTimeout = 30 * time.Second
)

// DefaultStylesheets are linked from the page head.
var DefaultStylesheets = []string{"css/main.css", "css/glossary.css"}

// DefaultMacros are the emphasis macros rendered as italics.
var DefaultMacros = []string{"textit"}

var macroName = regexp.MustCompile(`^[A-Za-z]+$`)

// Config holds all configuration for glossary generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Page     PageConfig     `yaml:"page"`
	Emphasis EmphasisConfig `yaml:"emphasis"`
	PDF      PDFConfig      `yaml:"pdf"`
	Assets   AssetsConfig   `yaml:"assets"`
	Tag      TagConfig      `yaml:"tag"`
	Workers  int            `yaml:"workers"` // 0 = derive from GOMAXPROCS
}

// InputConfig locates the per-letter sources.
type InputConfig struct {
	Dir       string `yaml:"dir"`       // directory holding a.tex ... z.tex
	Extension string `yaml:"extension"` // without the dot
}

// OutputConfig locates the generated files.
type OutputConfig struct {
	Path string `yaml:"path"` // HTML page
	PDF  string `yaml:"pdf"`  // empty = no PDF export
}

// PageConfig defines the fixed parts of the page.
type PageConfig struct {
	Title       string   `yaml:"title"`
	Lang        string   `yaml:"lang"`
	Stylesheets []string `yaml:"stylesheets"`
	Script      string   `yaml:"script"`
	HomeHref    string   `yaml:"homeHref"`
	HomeLabel   string   `yaml:"homeLabel"`
}

// EmphasisConfig lists the macros rendered as <i>.
type EmphasisConfig struct {
	Macros []string `yaml:"macros"`
}

// PDFConfig defines PDF export settings.
type PDFConfig struct {
	Size    string        `yaml:"size"`    // "letter", "a4", "legal"
	Margin  float64       `yaml:"margin"`  // inches
	Timeout time.Duration `yaml:"timeout"` // e.g. 30s
}

// TagConfig selects the documents whose glossary terms get a $^G$ mark.
type TagConfig struct {
	Dir     string   `yaml:"dir"`     // empty = no tagging
	Exclude []string `yaml:"exclude"` // directory or file names skipped
	DryRun  bool     `yaml:"dryRun"`  // report without rewriting
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Dir: DefaultInputDir, Extension: DefaultExtension},
		Output: OutputConfig{Path: DefaultOutputPath},
		Page: PageConfig{
			Title:       DefaultTitle,
			Lang:        DefaultLang,
			Stylesheets: append([]string(nil), DefaultStylesheets...),
			Script:      DefaultScript,
			HomeHref:    DefaultHomeHref,
			HomeLabel:   DefaultHomeLabel,
		},
		Emphasis: EmphasisConfig{Macros: append([]string(nil), DefaultMacros...)},
		PDF:      PDFConfig{Size: DefaultPDFSize, Margin: DefaultPDFMargin, Timeout: DefaultPDFTimeout},
	}
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.dir", c.Input.Dir, MaxPathLength},
		{"input.extension", c.Input.Extension, MaxExtensionLength},
		{"output.path", c.Output.Path, MaxPathLength},
		{"output.pdf", c.Output.PDF, MaxPathLength},
		{"page.title", c.Page.Title, MaxTitleLength},
		{"page.lang", c.Page.Lang, MaxLangLength},
		{"page.script", c.Page.Script, MaxURLLength},
		{"page.homeHref", c.Page.HomeHref, MaxURLLength},
		{"page.homeLabel", c.Page.HomeLabel, MaxLabelLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"tag.dir", c.Tag.Dir, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Input.Extension != "" {
		if err := fileutil.ValidateExtension(c.Input.Extension); err != nil {
			return fmt.Errorf("%w: input.extension: %v", ErrInvalidValue, err)
		}
	}

	if len(c.Page.Stylesheets) > MaxStylesheets {
		return fmt.Errorf("%w: page.stylesheets: %d entries (max %d)", ErrInvalidValue, len(c.Page.Stylesheets), MaxStylesheets)
	}
	for i, href := range c.Page.Stylesheets {
		if err := validateFieldLength(fmt.Sprintf("page.stylesheets[%d]", i), href, MaxURLLength); err != nil {
			return err
		}
	}

	if len(c.Emphasis.Macros) > MaxMacros {
		return fmt.Errorf("%w: emphasis.macros: %d entries (max %d)", ErrInvalidValue, len(c.Emphasis.Macros), MaxMacros)
	}
	for i, m := range c.Emphasis.Macros {
		if err := validateFieldLength(fmt.Sprintf("emphasis.macros[%d]", i), m, MaxMacroLength); err != nil {
			return err
		}
		if !macroName.MatchString(m) {
			return fmt.Errorf("%w: emphasis.macros[%d]: %q must be ASCII letters", ErrInvalidValue, i, m)
		}
	}

	if len(c.Tag.Exclude) > MaxTagExcludes {
		return fmt.Errorf("%w: tag.exclude: %d entries (max %d)", ErrInvalidValue, len(c.Tag.Exclude), MaxTagExcludes)
	}
	for i, name := range c.Tag.Exclude {
		if err := validateFieldLength(fmt.Sprintf("tag.exclude[%d]", i), name, MaxNameLength); err != nil {
			return err
		}
		if name == "" || fileutil.IsFilePath(name) {
			return fmt.Errorf("%w: tag.exclude[%d]: %q must be a plain file or directory name", ErrInvalidValue, i, name)
		}
	}

	if c.PDF.Size != "" {
		switch strings.ToLower(c.PDF.Size) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: pdf.size: %q (must be letter, a4, or legal)", ErrInvalidValue, c.PDF.Size)
		}
	}
	if c.PDF.Margin < 0 || c.PDF.Margin > 3 {
		return fmt.Errorf("%w: pdf.margin: must be between 0 and 3 inches, got %.2f", ErrInvalidValue, c.PDF.Margin)
	}
	if c.PDF.Timeout < 0 {
		return fmt.Errorf("%w: pdf.timeout: must not be negative", ErrInvalidValue)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in standard locations.
// Keys missing from the file take their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.DecodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	var raw map[string]any
	if err := yamlutil.DecodeStrict(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.fillDefaults(explicitKeys(raw))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FillDefaults sets every empty field to its DefaultConfig value.
func (c *Config) FillDefaults() {
	c.fillDefaults(nil)
}

// fillDefaults is FillDefaults for a decoded file. Zero values whose key
// appears in explicit ("page.script", "pdf.margin") were written on purpose
// and are kept: script: "" drops the script, margin: 0 prints borderless.
func (c *Config) fillDefaults(explicit map[string]bool) {
	d := DefaultConfig()
	setIfEmpty(&c.Input.Dir, d.Input.Dir)
	setIfEmpty(&c.Input.Extension, d.Input.Extension)
	setIfEmpty(&c.Output.Path, d.Output.Path)
	setIfEmpty(&c.Page.Title, d.Page.Title)
	setIfEmpty(&c.Page.Lang, d.Page.Lang)
	if !explicit["page.script"] {
		setIfEmpty(&c.Page.Script, d.Page.Script)
	}
	setIfEmpty(&c.Page.HomeHref, d.Page.HomeHref)
	setIfEmpty(&c.Page.HomeLabel, d.Page.HomeLabel)
	setIfEmpty(&c.PDF.Size, d.PDF.Size)
	if len(c.Page.Stylesheets) == 0 {
		c.Page.Stylesheets = d.Page.Stylesheets
	}
	if len(c.Emphasis.Macros) == 0 {
		c.Emphasis.Macros = d.Emphasis.Macros
	}
	if c.PDF.Margin == 0 && !explicit["pdf.margin"] {
		c.PDF.Margin = d.PDF.Margin
	}
	if c.PDF.Timeout == 0 {
		c.PDF.Timeout = d.PDF.Timeout
	}
}

// explicitKeys lists the "section.key" paths present in a decoded document.
func explicitKeys(raw map[string]any) map[string]bool {
	keys := make(map[string]bool)
	for section, v := range raw {
		fields, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for key := range fields {
			keys[section+"."+key] = true
		}
	}
	return keys
}

func setIfEmpty(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// Encode renders the configuration as YAML.
func (c *Config) Encode() ([]byte, error) {
	return yamlutil.Encode(c)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-glossgen/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-glossgen", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Name: name, Tried: triedPaths}
}

// NotFoundError lists every path tried while resolving a config name.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q (tried %s)", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

// Unwrap lets errors.Is match ErrConfigNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}
