package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/cli-music/internal/app"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	keyPollInterval    = "poll_interval"
	keyInputTimeout    = "input_timeout"
	keyArtwork         = "artwork"
	keyArtworkThrottle = "artwork_throttle"
	keyCacheLimit      = "cache_limit"
	keyLogFile         = "log_file"
	keyTrace           = "trace"
	keyOsascript       = "osascript"
	keyFooter          = "footer"

	envPrefix = "CLI_MUSIC_"
	envConfig = envPrefix + "CONFIG"

	defaultPollInterval    = 500 * time.Millisecond
	defaultInputTimeout    = 200 * time.Millisecond
	defaultArtworkThrottle = time.Second
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"poll-interval":    keyPollInterval,
	"input-timeout":    keyInputTimeout,
	"artwork":          keyArtwork,
	"artwork-throttle": keyArtworkThrottle,
	"cache-limit":      keyCacheLimit,
	"log-file":         keyLogFile,
	"trace":            keyTrace,
	"osascript":        keyOsascript,
	"footer":           keyFooter,
}

// Load parses configuration from CLI arguments, environment variables and the
// optional config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flag, then CLI_MUSIC_* environment, then the TOML file, then defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("cli-music", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configFile := fs.String("config", "", "path to a TOML config file")
	fs.Duration("poll-interval", defaultPollInterval, "player status poll interval")
	fs.Duration("input-timeout", defaultInputTimeout, "idle time before a tick is emitted")
	fs.Bool("artwork", true, "fetch and display cover art")
	fs.Duration("artwork-throttle", defaultArtworkThrottle, "minimum spacing between artwork lookups")
	fs.Int("cache-limit", 0, "maximum cached playlists (0 keeps every playlist)")
	fs.String("log-file", "", "path to the log file")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
	fs.String("osascript", "", "path to the osascript binary")
	fs.Bool("footer", false, "enable footer hint row")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault(keyPollInterval, defaultPollInterval)
	v.SetDefault(keyInputTimeout, defaultInputTimeout)
	v.SetDefault(keyArtwork, true)
	v.SetDefault(keyArtworkThrottle, defaultArtworkThrottle)
	v.SetDefault(keyCacheLimit, 0)
	v.SetDefault(keyLogFile, "")
	v.SetDefault(keyTrace, false)
	v.SetDefault(keyOsascript, "")
	v.SetDefault(keyFooter, false)

	path, explicit := resolveConfigFile(*configFile, env)
	if path != "" && !explicit {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	if path != "" {
		v.SetConfigType("toml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	for _, key := range flagKeys {
		name := envPrefix + strings.ToUpper(key)
		raw, ok := env[name]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		value, err := parseEnvValue(key, strings.TrimSpace(raw))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", name, err)
		}
		v.Set(key, value)
	}
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})

	cfg := Config{
		App: app.Config{
			PollInterval:    v.GetDuration(keyPollInterval),
			InputTimeout:    v.GetDuration(keyInputTimeout),
			Artwork:         v.GetBool(keyArtwork),
			ArtworkThrottle: v.GetDuration(keyArtworkThrottle),
			CacheLimit:      v.GetInt(keyCacheLimit),
			Osascript:       v.GetString(keyOsascript),
			ShowFooter:      v.GetBool(keyFooter),
		},
		Logging: Logging{
			FilePath: v.GetString(keyLogFile),
			Trace:    v.GetBool(keyTrace),
		},
		File: path,
		Args: append([]string(nil), args...),
	}
	cfg.Flags = map[string]string{
		"config":          path,
		"pollInterval":    cfg.App.PollInterval.String(),
		"inputTimeout":    cfg.App.InputTimeout.String(),
		"artwork":         strconv.FormatBool(cfg.App.Artwork),
		"artworkThrottle": cfg.App.ArtworkThrottle.String(),
		"cacheLimit":      strconv.Itoa(cfg.App.CacheLimit),
		"osascript":       cfg.App.Osascript,
		"footer":          strconv.FormatBool(cfg.App.ShowFooter),
		"trace":           strconv.FormatBool(cfg.Logging.Trace),
		"logFile":         cfg.Logging.FilePath,
	}
	return cfg, nil
}

// resolveConfigFile picks the config file path and reports whether the user
// asked for it explicitly.
func resolveConfigFile(flagValue string, env map[string]string) (string, bool) {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue, true
	}
	if v := strings.TrimSpace(env[envConfig]); v != "" {
		return v, true
	}
	base := strings.TrimSpace(env["XDG_CONFIG_HOME"])
	if base == "" {
		home := strings.TrimSpace(env["HOME"])
		if home == "" {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "cli-music", "config.toml"), false
}

// parseEnvValue converts an environment value to the type of key.
func parseEnvValue(key, raw string) (interface{}, error) {
	switch key {
	case keyPollInterval, keyInputTimeout, keyArtworkThrottle:
		return time.ParseDuration(raw)
	case keyArtwork, keyTrace, keyFooter:
		return strconv.ParseBool(raw)
	case keyCacheLimit:
		return strconv.Atoi(raw)
	default:
		return raw, nil
	}
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

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects settings the runtime cannot honour.
func Validate(cfg Config) error {
	if cfg.App.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be > 0 (got %s)", cfg.App.PollInterval)
	}
	if cfg.App.InputTimeout <= 0 {
		return fmt.Errorf("input timeout must be > 0 (got %s)", cfg.App.InputTimeout)
	}
	if cfg.App.ArtworkThrottle < 0 {
		return fmt.Errorf("artwork throttle must be >= 0 (got %s)", cfg.App.ArtworkThrottle)
	}
	if cfg.App.CacheLimit < 0 {
		return fmt.Errorf("cache limit must be >= 0 (got %d)", cfg.App.CacheLimit)
	}
	return nil
}
