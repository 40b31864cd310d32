package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/atomicstack/cli-music/internal/app"
	"github.com/atomicstack/cli-music/internal/artwork"
	"github.com/atomicstack/cli-music/internal/config"
	"github.com/atomicstack/cli-music/internal/logging"
	"github.com/atomicstack/cli-music/internal/logging/events"
)

const defaultOsascript = "osascript"

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, runtimeCfg.App); err != nil {
		stop()
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	if !logging.TraceEnabled() {
		return
	}
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload records what the player, artwork and cache layers were
// started with.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	payload := map[string]interface{}{
		"argv":       cfg.Args,
		"flags":      flags,
		"configFile": cfg.File,
		"logFile":    logging.Path(),
		"osascript":  probeOsascript(cfg.App.Osascript),
		"artwork":    artworkDetails(cfg.App),
		"cache":      cacheMode(cfg.App.CacheLimit),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}

type osascriptProbe struct {
	Binary   string `json:"binary"`
	Resolved string `json:"resolved,omitempty"`
	Found    bool   `json:"found"`
	Error    string `json:"error,omitempty"`
}

// probeOsascript reports whether the automation binary can be executed.
// Without it every query degrades to empty results.
func probeOsascript(binary string) osascriptProbe {
	if strings.TrimSpace(binary) == "" {
		binary = defaultOsascript
	}
	probe := osascriptProbe{Binary: binary}
	path, err := exec.LookPath(binary)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Resolved = path
	probe.Found = true
	return probe
}

type artworkInfo struct {
	Enabled  bool   `json:"enabled"`
	Endpoint string `json:"endpoint,omitempty"`
	Throttle string `json:"throttle,omitempty"`
}

func artworkDetails(cfg app.Config) artworkInfo {
	if !cfg.Artwork {
		return artworkInfo{}
	}
	return artworkInfo{
		Enabled:  true,
		Endpoint: artwork.DefaultSearchURL,
		Throttle: cfg.ArtworkThrottle.String(),
	}
}

func cacheMode(limit int) string {
	if limit > 0 {
		return fmt.Sprintf("lru:%d", limit)
	}
	return "unbounded"
}
