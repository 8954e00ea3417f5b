// Package config loads logpeek settings.
//
// # Overview
//
// The host side of logpeek needs a handful of values: which log file to read,
// how many lines to show, and where the admin page lives. Everything has a
// default so logpeek works with no configuration file at all.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/logpeek/config.toml
//  3. If the file doesn't exist, use defaults
//  4. LOGPEEK_LOG_PATH and LOGPEEK_LINE_COUNT override whatever was loaded
//
// # File Format
//
// TOML by default; a .yaml or .yml extension switches to YAML:
//
//	log_path = "/var/www/html/wp-content/debug.log"
//	line_count = 100
//	adaptive = true
//	menu_parent = "tools.php"
//	network_menu_parent = "settings.php"
//	listen = "127.0.0.1:7488"
//	log_level = "info"
//
// Empty strings fall back to defaults. A negative line_count is clamped to 0.
//
// # Menu Placement
//
// ResolveMenuParent is the override point for where the admin page is
// registered. On a network admin the tools.php default becomes
// network_menu_parent; any parent the host does not know falls back to
// tools.php.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, parse
// errors and a malformed LOGPEEK_LINE_COUNT. A missing file is not an error.
package config
