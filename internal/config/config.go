package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds everything the host side needs to show the debug log.
type Config struct {
	LogPath           string
	LineCount         int
	Adaptive          bool
	MenuParent        string
	NetworkMenuParent string
	Listen            string
	LogLevel          string
}

const (
	defaultConfigPath        = "~/.config/logpeek/config.toml"
	defaultLogPath           = "wp-content/debug.log"
	defaultLineCount         = 100
	defaultMenuParent        = "tools.php"
	defaultNetworkMenuParent = "settings.php"
	defaultListen            = "127.0.0.1:7488"
	defaultLogLevel          = "info"

	envLogPath   = "LOGPEEK_LOG_PATH"
	envLineCount = "LOGPEEK_LINE_COUNT"
)

// raw mirrors the file layout. Pointers distinguish "unset" from zero values.
type raw struct {
	LogPath           string `toml:"log_path" yaml:"log_path"`
	LineCount         *int   `toml:"line_count" yaml:"line_count"`
	Adaptive          *bool  `toml:"adaptive" yaml:"adaptive"`
	MenuParent        string `toml:"menu_parent" yaml:"menu_parent"`
	NetworkMenuParent string `toml:"network_menu_parent" yaml:"network_menu_parent"`
	Listen            string `toml:"listen" yaml:"listen"`
	LogLevel          string `toml:"log_level" yaml:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogPath:           mustExpand(defaultLogPath),
		LineCount:         defaultLineCount,
		Adaptive:          true,
		MenuParent:        defaultMenuParent,
		NetworkMenuParent: defaultNetworkMenuParent,
		Listen:            defaultListen,
		LogLevel:          defaultLogLevel,
	}
}

// Load locates and parses the logpeek config, falling back to defaults when
// missing. Files ending in .yaml or .yml are read as YAML, anything else as TOML.
// LOGPEEK_LOG_PATH and LOGPEEK_LINE_COUNT override the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg)
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var r raw
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &r)
	default:
		err = toml.Unmarshal(bytes, &r)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(r.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if r.LineCount != nil {
		cfg.LineCount = max(*r.LineCount, 0)
	}
	if r.Adaptive != nil {
		cfg.Adaptive = *r.Adaptive
	}
	if v := strings.TrimSpace(r.MenuParent); v != "" {
		cfg.MenuParent = v
	}
	if v := strings.TrimSpace(r.NetworkMenuParent); v != "" {
		cfg.NetworkMenuParent = v
	}
	if v := strings.TrimSpace(r.Listen); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(r.LogLevel); v != "" {
		cfg.LogLevel = v
	}

	return applyEnv(cfg)
}

func applyEnv(cfg Config) (Config, error) {
	if v := strings.TrimSpace(os.Getenv(envLogPath)); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(envLineCount)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", envLineCount, err)
		}
		cfg.LineCount = max(n, 0)
	}
	return cfg, nil
}

// ResolveMenuParent picks the admin menu the log page hangs under. On the
// network admin the untouched default moves to NetworkMenuParent. A parent
// that registered reports as missing falls back to tools.php.
func (c Config) ResolveMenuParent(networkAdmin bool, registered func(string) bool) string {
	parent := strings.TrimSpace(c.MenuParent)
	if parent == "" {
		parent = defaultMenuParent
	}
	if networkAdmin && parent == defaultMenuParent {
		if alt := strings.TrimSpace(c.NetworkMenuParent); alt != "" {
			parent = alt
		}
	}
	if registered != nil && !registered(parent) {
		return defaultMenuParent
	}
	return parent
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
