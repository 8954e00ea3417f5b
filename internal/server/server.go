// Package server hosts the admin page over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/five82/logpeek/internal/app"
	"github.com/five82/logpeek/internal/config"
	"github.com/five82/logpeek/internal/page"
)

// Slug is the page identifier under its parent menu.
const Slug = "view-debugger"

// Menus are the admin menus a page can hang under.
var Menus = []string{"index.php", "tools.php", "settings.php", "options-general.php"}

// Options configure the router.
type Options struct {
	Config       config.Config
	NetworkAdmin bool
	Logger       *slog.Logger
}

// PagePath returns the URL path the log page is mounted at.
func PagePath(cfg config.Config, networkAdmin bool) string {
	return "/" + cfg.ResolveMenuParent(networkAdmin, isMenu) + "/" + Slug
}

func isMenu(slug string) bool {
	for _, m := range Menus {
		if m == slug {
			return true
		}
	}
	return false
}

// NewRouter builds the chi router serving the log page.
func NewRouter(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	// middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	path := PagePath(opts.Config, opts.NetworkAdmin)
	r.Get(path, logPageHandler(opts.Config, logger))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, path, http.StatusFound)
	})

	logger.Info("admin page registered", "path", path, "title", page.Title)
	return r
}

func logPageHandler(cfg config.Config, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := cfg
		if raw := r.URL.Query().Get("lines"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "lines must be a non-negative integer", http.StatusBadRequest)
				return
			}
			c.LineCount = n
		}

		v := app.Load(c)

		var buf bytes.Buffer
		if err := page.Document(&buf, page.Data{Path: v.Path, Lines: v.Lines, Body: v.Body}); err != nil {
			logger.Error("render log page", "path", v.Path, "error", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		logger.Debug("log page rendered", "path", v.Path, "lines", v.Lines, "found", v.Found, "partial", v.Err != nil)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(buf.Bytes())
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// ListenAndServe serves handler on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
