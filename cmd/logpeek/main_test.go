package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/logpeek/internal/app"
	"github.com/five82/logpeek/internal/config"
	"github.com/five82/logpeek/internal/logtail"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "debug.log")
	content := "2024-01-01 10:00:00 PHP Notice: one\n" +
		"2024-01-01 10:00:01 PHP Warning: two\n" +
		"2024-01-01 10:00:02 PHP Fatal error: three\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("log_path = \""+filepath.ToSlash(logPath)+"\"\nlog_level = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOGPEEK_LOG_PATH", "")
	t.Setenv("LOGPEEK_LINE_COUNT", "")
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTailCommand(t *testing.T) {
	cfgPath := writeFixture(t)

	out, err := execute(t, "--config", cfgPath, "tail", "-n", "2", "--no-color")
	if err != nil {
		t.Fatal(err)
	}
	want := "2024-01-01 10:00:01 PHP Warning: two\n2024-01-01 10:00:02 PHP Fatal error: three\n"
	if out != want {
		t.Fatalf("tail output = %q, want %q", out, want)
	}
}

func TestTailCommandColorized(t *testing.T) {
	cfgPath := writeFixture(t)

	out, err := execute(t, "--config", cfgPath, "tail", "-n", "1", "--fixed")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "PHP") || !strings.Contains(out, "three") {
		t.Fatalf("tail output = %q, want highlighted last line", out)
	}
}

func TestTailCommandMissingLog(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("log_path = \""+filepath.ToSlash(filepath.Join(dir, "nope.log"))+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "--config", cfgPath, "tail")
	if err == nil || !strings.Contains(err.Error(), "Debug.log file not found at") {
		t.Fatalf("err = %v, want not-found message", err)
	}
}

func TestTailCommandRejectsNegativeLines(t *testing.T) {
	cfgPath := writeFixture(t)
	if _, err := execute(t, "--config", cfgPath, "tail", "-n", "-3"); err == nil {
		t.Fatal("expected error for negative --lines")
	}
}

func TestHTMLCommand(t *testing.T) {
	cfgPath := writeFixture(t)

	out, err := execute(t, "--config", cfgPath, "html", "-n", "3")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<h2>View Debug.log</h2>",
		"Reading last <strong>3</strong> lines",
		`<strong class="Notice">Notice</strong>`,
		`<strong class="Fatal error">Fatal error</strong>  three`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html output missing %q", want)
		}
	}
	if strings.Contains(out, "<!DOCTYPE html>") {
		t.Errorf("fragment should not include a doctype")
	}
}

func TestTailCommandPartialReadPrintsThenFails(t *testing.T) {
	cfgPath := writeFixture(t)
	orig := loadView
	t.Cleanup(func() { loadView = orig })
	loadView = func(cfg config.Config) app.View {
		return app.View{
			Path:  cfg.LogPath,
			Found: true,
			Raw:   "2024-01-01 10:00:02 PHP Fatal error: three",
			Err:   fmt.Errorf("%s: %w at offset 0: input/output error", cfg.LogPath, logtail.ErrRead),
		}
	}

	out, err := execute(t, "--config", cfgPath, "tail", "--no-color")
	if !errors.Is(err, logtail.ErrRead) {
		t.Fatalf("err = %v, want ErrRead", err)
	}
	if out != "2024-01-01 10:00:02 PHP Fatal error: three\n" {
		t.Fatalf("tail output = %q, want partial text printed before the error", out)
	}
}

func TestRootCommandRejectsNegativeLines(t *testing.T) {
	cfgPath := writeFixture(t)
	_, err := execute(t, "--config", cfgPath, "-n", "-3")
	if err == nil || !strings.Contains(err.Error(), "--lines must be >= 0") {
		t.Fatalf("err = %v, want --lines validation error", err)
	}
}
