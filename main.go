package main

import (
	"fmt"
	"os"

	"github.com/scrapeworks/scrape-console/internal/config"
	"github.com/scrapeworks/scrape-console/internal/host"
	"github.com/scrapeworks/scrape-console/internal/logging"
	"github.com/scrapeworks/scrape-console/internal/logging/events"
	"github.com/scrapeworks/scrape-console/internal/session"
)

func main() {
	cfg := config.MustLoad()
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	traceStartup(cfg)

	s, err := session.New(session.Options{
		App:             host.NewDemo(),
		Width:           cfg.UI.Width,
		Height:          cfg.UI.Height,
		ShowFooter:      cfg.UI.ShowFooter,
		Theme:           cfg.UI.Theme,
		ProgressStyle:   cfg.UI.ProgressStyle,
		MonitorInterval: cfg.UI.MonitorInterval,
		ForceLineMode:   cfg.UI.LineMode,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	result := s.Run()
	if result.Err != nil {
		logging.Error(result.Err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", result.Err)
		os.Exit(1)
	}
	if result.Interrupted {
		os.Exit(130)
	}
}

func traceStartup(cfg config.Config) {
	payload := startupTracePayload(cfg)
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	events.App.Start(payload)
}

func startupTracePayload(cfg config.Config) map[string]interface{} {
	return map[string]interface{}{
		"argv":            cfg.Args,
		"theme":           cfg.UI.Theme,
		"progressStyle":   cfg.UI.ProgressStyle,
		"monitorInterval": cfg.UI.MonitorInterval.String(),
		"lineMode":        cfg.UI.LineMode,
		"trace":           cfg.Logging.Trace,
		"logFile":         cfg.Logging.FilePath,
	}
}
