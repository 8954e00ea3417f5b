package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/logpeek/internal/app"
	"github.com/five82/logpeek/internal/config"
	"github.com/five82/logpeek/internal/logging"
	"github.com/five82/logpeek/internal/logtail"
	"github.com/five82/logpeek/internal/page"
	"github.com/five82/logpeek/internal/server"
)

var (
	configPath string
	logLevel   string

	loadView = app.Load
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "logpeek: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var lines int
	root := &cobra.Command{
		Use:           "logpeek",
		Short:         "Peek at the tail of a PHP debug.log",
		Long:          "logpeek shows the last lines of a PHP/WordPress debug.log with fatal errors, warnings and notices highlighted.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The viewer owns the terminal; keep log records off it.
			logging.Init(io.Discard, logging.ParseLevel(logLevel))
			return app.Run(cmd.Context(), app.Options{
				ConfigPath:   configPath,
				LineCount:    lines,
				LineCountSet: cmd.Flags().Changed("lines"),
			})
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/logpeek/config.toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	root.Flags().IntVarP(&lines, "lines", "n", 0, "number of lines to show (overrides config)")

	root.AddCommand(newTailCmd(), newHTMLCmd(), newServeCmd())
	return root
}

// loadConfig reads the config and sets up stderr logging for non-TUI commands.
func loadConfig(lines int, linesSet bool) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	level := cfg.LogLevel
	if strings.TrimSpace(logLevel) != "" {
		level = logLevel
	}
	logging.Init(os.Stderr, logging.ParseLevel(level))

	if linesSet {
		if lines < 0 {
			return config.Config{}, fmt.Errorf("--lines must be >= 0, got %d", lines)
		}
		cfg.LineCount = lines
	}
	return cfg, nil
}

func newTailCmd() *cobra.Command {
	var (
		lines   int
		noColor bool
		fixed   bool
	)
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print the highlighted tail of the log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(lines, cmd.Flags().Changed("lines"))
			if err != nil {
				return err
			}
			if fixed {
				cfg.Adaptive = false
			}

			v := loadView(cfg)
			if !v.Found {
				return fmt.Errorf("%s", v.Raw)
			}
			out := cmd.OutOrStdout()
			if v.Raw == "" {
				return nil
			}
			text := v.Raw
			if !noColor {
				text = strings.Join(logtail.DefaultPalette().ColorizeLines(strings.Split(v.Raw, "\n")), "\n")
			}
			if _, err := fmt.Fprintln(out, text); err != nil {
				return err
			}
			return v.Err
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "number of lines to show (overrides config)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "print the raw tail without highlighting")
	cmd.Flags().BoolVar(&fixed, "fixed", false, "use a fixed 4096 byte read buffer")
	return cmd
}

func newHTMLCmd() *cobra.Command {
	var (
		lines    int
		document bool
	)
	cmd := &cobra.Command{
		Use:   "html",
		Short: "Write the admin page markup to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(lines, cmd.Flags().Changed("lines"))
			if err != nil {
				return err
			}
			v := loadView(cfg)
			data := page.Data{Path: v.Path, Lines: v.Lines, Body: v.Body}
			if document {
				return page.Document(cmd.OutOrStdout(), data)
			}
			return page.Render(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "number of lines to show (overrides config)")
	cmd.Flags().BoolVar(&document, "document", false, "wrap the fragment in a full HTML document")
	return cmd
}

func newServeCmd() *cobra.Command {
	var (
		listen  string
		network bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin page over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(0, false)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			router := server.NewRouter(server.Options{Config: cfg, NetworkAdmin: network})
			return server.ListenAndServe(cmd.Context(), cfg.Listen, router)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&network, "network", false, "place the page under the network admin menu")
	return cmd
}
