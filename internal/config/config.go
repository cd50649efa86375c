// Package config parses runtime configuration from CLI flags and
// environment variables. Flags win over environment values.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/scrapeworks/scrape-console/internal/progress"
	"github.com/scrapeworks/scrape-console/internal/theme"
)

// Config captures runtime configuration for the console.
type Config struct {
	UI      UI
	Logging Logging
	Args    []string
}

type UI struct {
	Width           int
	Height          int
	ShowFooter      bool
	Theme           string
	ProgressStyle   string
	MonitorInterval time.Duration
	LineMode        bool
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envWidth           = "SCRAPE_CONSOLE_WIDTH"
	envHeight          = "SCRAPE_CONSOLE_HEIGHT"
	envShowFooter      = "SCRAPE_CONSOLE_FOOTER"
	envTheme           = "SCRAPE_CONSOLE_THEME"
	envProgressStyle   = "SCRAPE_CONSOLE_PROGRESS_STYLE"
	envMonitorInterval = "SCRAPE_CONSOLE_MONITOR_INTERVAL"
	envLineMode        = "SCRAPE_CONSOLE_LINE_MODE"
	envTrace           = "SCRAPE_CONSOLE_TRACE"
	envLogFile         = "SCRAPE_CONSOLE_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("scrape-console", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the footer hint row")
	themeName := fs.String("theme", envOrDefault(env, envTheme, "default"), "colour theme name")
	progressStyle := fs.String("progress-style", envOrDefault(env, envProgressStyle, "detailed"), "progress bar style")
	monitorInterval := fs.Duration("monitor-interval", envOrDuration(env, envMonitorInterval, 2*time.Second), "system monitor poll interval")
	lineMode := fs.Bool("line-mode", envOrBool(env, envLineMode, false), "force plain line-oriented mode (no full-screen UI)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		UI: UI{
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
			Theme:           *themeName,
			ProgressStyle:   *progressStyle,
			MonitorInterval: *monitorInterval,
			LineMode:        *lineMode,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Args: append([]string(nil), args...),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures the configuration names real resources.
func Validate(cfg Config) error {
	if cfg.UI.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.UI.Width)
	}
	if cfg.UI.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.UI.Height)
	}
	if cfg.UI.MonitorInterval <= 0 {
		return fmt.Errorf("monitor-interval must be positive (got %s)", cfg.UI.MonitorInterval)
	}
	if _, err := theme.ByName(cfg.UI.Theme); err != nil {
		return err
	}
	if _, err := progress.ParseStyle(cfg.UI.ProgressStyle); err != nil {
		return err
	}
	return nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
