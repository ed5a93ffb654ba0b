package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestReportUsageError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	reportUsageError(&buf, errors.New("unknown flag: --bogus"))

	want := "error: unknown flag: --bogus\nRun 'glossgen --help' for usage.\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestConfigureMaxProcs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	configureMaxProcs(false, &buf)

	if buf.Len() != 0 {
		t.Errorf("quiet mode wrote %q", buf.String())
	}
	if runtime.GOMAXPROCS(0) < 1 {
		t.Error("GOMAXPROCS must stay positive")
	}
}

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Stdout != os.Stdout || env.Stderr != os.Stderr {
		t.Error("DefaultEnv should write to the process streams")
	}
	if env.Now == nil || env.AssetLoader != nil {
		t.Error("DefaultEnv should use time.Now and the embedded assets")
	}
}

// stubAssets serves a fixed template through Environment.AssetLoader.
type stubAssets struct{}

func (stubAssets) LoadStyle(string) (string, error) { return "", nil }

func (stubAssets) LoadTemplate(string) (string, error) {
	return `<p>{{.Title}}:{{range .Nav}}{{.Label}}{{end}}</p>`, nil
}

func TestExecute_EnvAssetLoader(t *testing.T) {
	t.Parallel()

	src := setupSourceDir(t, map[string]string{"k.tex": "\\term{Kiwi} fruit\n"})
	out := filepath.Join(t.TempDir(), "g.html")
	flags, positional, err := parseFlags([]string{src, "-o", out, "-q"})
	if err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	env := &Environment{
		Now:         time.Now,
		Stdout:      &bytes.Buffer{},
		Stderr:      &stderr,
		AssetLoader: stubAssets{},
	}
	if code := execute(context.Background(), flags, positional, env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %q", code, stderr.String())
	}

	if got := strings.TrimSpace(readFile(t, out)); got != "<p>Glossary:K</p>" {
		t.Errorf("page = %q, want stub template output", got)
	}
}
