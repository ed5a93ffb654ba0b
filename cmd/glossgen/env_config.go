package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-glossgen/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // GLOSSGEN_CONFIG: config file name or path
	InputDir   string        // GLOSSGEN_INPUT_DIR: source directory
	Output     string        // GLOSSGEN_OUTPUT: HTML output file
	PDF        string        // GLOSSGEN_PDF: PDF output file
	Extension  string        // GLOSSGEN_EXTENSION: source extension
	Title      string        // GLOSSGEN_TITLE: page title
	Lang       string        // GLOSSGEN_LANG: page language
	AssetPath  string        // GLOSSGEN_ASSET_PATH: custom asset directory
	PageSize   string        // GLOSSGEN_PAGE_SIZE: a4, letter, legal
	Timeout    time.Duration // GLOSSGEN_TIMEOUT: PDF export timeout
	Workers    int           // GLOSSGEN_WORKERS: parallel letter reads
	TagDir     string        // GLOSSGEN_TAG_DIR: documents to tag
}

// knownEnvVars lists valid GLOSSGEN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"GLOSSGEN_CONFIG":     true,
	"GLOSSGEN_INPUT_DIR":  true,
	"GLOSSGEN_OUTPUT":     true,
	"GLOSSGEN_PDF":        true,
	"GLOSSGEN_EXTENSION":  true,
	"GLOSSGEN_TITLE":      true,
	"GLOSSGEN_LANG":       true,
	"GLOSSGEN_ASSET_PATH": true,
	"GLOSSGEN_PAGE_SIZE":  true,
	"GLOSSGEN_TIMEOUT":    true,
	"GLOSSGEN_WORKERS":    true,
	"GLOSSGEN_TAG_DIR":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable or non-positive timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("GLOSSGEN_CONFIG"),
		InputDir:   os.Getenv("GLOSSGEN_INPUT_DIR"),
		Output:     os.Getenv("GLOSSGEN_OUTPUT"),
		PDF:        os.Getenv("GLOSSGEN_PDF"),
		Extension:  os.Getenv("GLOSSGEN_EXTENSION"),
		Title:      os.Getenv("GLOSSGEN_TITLE"),
		Lang:       os.Getenv("GLOSSGEN_LANG"),
		AssetPath:  os.Getenv("GLOSSGEN_ASSET_PATH"),
		PageSize:   os.Getenv("GLOSSGEN_PAGE_SIZE"),
		TagDir:     os.Getenv("GLOSSGEN_TAG_DIR"),
	}

	if timeout := os.Getenv("GLOSSGEN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("GLOSSGEN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized GLOSSGEN_* variables.
// Helps catch typos like GLOSSGEN_OUPUT.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "GLOSSGEN_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config values with every variable that is set.
// Resulting priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfNotEmpty(&cfg.Input.Dir, env.InputDir)
	setIfNotEmpty(&cfg.Input.Extension, env.Extension)
	setIfNotEmpty(&cfg.Output.Path, env.Output)
	setIfNotEmpty(&cfg.Output.PDF, env.PDF)
	setIfNotEmpty(&cfg.Page.Title, env.Title)
	setIfNotEmpty(&cfg.Page.Lang, env.Lang)
	setIfNotEmpty(&cfg.Assets.BasePath, env.AssetPath)
	setIfNotEmpty(&cfg.PDF.Size, env.PageSize)
	setIfNotEmpty(&cfg.Tag.Dir, env.TagDir)

	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}

func setIfNotEmpty(field *string, value string) {
	if value != "" {
		*field = value
	}
}
