package main

import (
	"testing"
	"time"

	"github.com/scrapeworks/scrape-console/internal/config"
)

func TestStartupTracePayloadIncludesSettings(t *testing.T) {
	cfg := config.Config{
		UI: config.UI{
			Width:           120,
			Height:          40,
			ShowFooter:      true,
			Theme:           "dark",
			ProgressStyle:   "animated",
			MonitorInterval: 5 * time.Second,
			LineMode:        true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Args: []string{"--theme", "dark"},
	}

	payload := startupTracePayload(cfg)

	if payload["theme"] != "dark" {
		t.Fatalf("expected theme dark, got %v", payload["theme"])
	}
	if payload["progressStyle"] != "animated" {
		t.Fatalf("expected progress style animated, got %v", payload["progressStyle"])
	}
	if payload["monitorInterval"] != "5s" {
		t.Fatalf("expected monitor interval 5s, got %v", payload["monitorInterval"])
	}
	if payload["lineMode"] != true {
		t.Fatalf("expected line mode true, got %v", payload["lineMode"])
	}
	if payload["trace"] != true {
		t.Fatalf("expected trace true, got %v", payload["trace"])
	}
	if payload["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", payload["logFile"])
	}
	argv, ok := payload["argv"].([]string)
	if !ok || len(argv) != 2 || argv[0] != "--theme" {
		t.Fatalf("expected argv recorded, got %v", payload["argv"])
	}
}
