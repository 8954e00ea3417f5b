package app

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"github.com/five82/logpeek/internal/config"
	"github.com/five82/logpeek/internal/logtail"
	"github.com/five82/logpeek/internal/prefs"
	"github.com/five82/logpeek/internal/ui"
)

// View is one rendering of the log tail, ready for any front end.
type View struct {
	Path    string
	Lines   int
	Found   bool
	Raw     string // tail text, or the not-found message
	Body    string // Raw with HTML severity markup
	Records []logtail.Record
	Err     error // set when Raw is a partial read
}

// NotFoundMessage is shown in place of the tail when the log cannot be opened.
func NotFoundMessage(path string) string {
	return fmt.Sprintf(`Debug.log file not found at "%s"`, path)
}

var tailFile = logtail.Tail

// Load tails cfg.LogPath and formats the result.
func Load(cfg config.Config) View {
	v := View{Path: cfg.LogPath, Lines: cfg.LineCount}

	text, err := tailFile(cfg.LogPath, cfg.LineCount, logtail.WithAdaptive(cfg.Adaptive))
	if errors.Is(err, logtail.ErrNotFound) {
		slog.Warn("log file not found", "path", cfg.LogPath)
		v.Raw = NotFoundMessage(cfg.LogPath)
		v.Body = html.EscapeString(v.Raw)
		return v
	}
	if err != nil {
		slog.Warn("partial log read", "path", cfg.LogPath, "error", err)
		v.Err = err
	}

	v.Found = true
	v.Raw = text
	v.Body = logtail.Format(text)
	v.Records = logtail.Parse(text)
	slog.Debug("tail read", "path", cfg.LogPath, "lines", cfg.LineCount, "bytes", len(text), "records", len(v.Records))
	return v
}

// Options configure the terminal viewer.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/logpeek/prefs.toml

	// LineCount replaces the configured line count when LineCountSet is true.
	LineCount    int
	LineCountSet bool
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.LineCountSet {
		if opts.LineCount < 0 {
			return config.Config{}, fmt.Errorf("--lines must be >= 0, got %d", opts.LineCount)
		}
		cfg.LineCount = opts.LineCount
	}
	return cfg, nil
}

// Run loads configuration and blocks in the terminal viewer until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	return ui.Run(ui.Options{
		Context:   ctx,
		Config:    cfg,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Load: func(c config.Config) ui.Snapshot {
			v := Load(c)
			return ui.Snapshot{Path: v.Path, Lines: v.Lines, Found: v.Found, Raw: v.Raw, Records: v.Records, Err: v.Err}
		},
	})
}
